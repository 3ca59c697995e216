// Package repositories holds the MongoDB data access layer. Repositories
// are thin: they translate between models and driver calls and carry no
// business rules. Predicates and sort documents come from app/query.
package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vyshnav-v/food-delivery/app/models"
	"github.com/vyshnav-v/food-delivery/app/query"
	"github.com/vyshnav-v/food-delivery/pkg/database"
)

// hidePassword excludes the bcrypt hash from read projections.
var hidePassword = bson.M{"password": 0}

// UserRepository handles database operations for users.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository() *UserRepository {
	return &UserRepository{col: database.Collection(database.ColUsers)}
}

// FindByEmail looks up a user by email, including the password hash.
// Only the login path should call this; everything else reads through
// FindByID, which strips the hash.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	return u, err
}

// FindByID looks up a user by ID with the password hash projected out.
func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var u models.User
	err := r.col.FindOne(ctx, bson.M{"_id": id},
		options.FindOne().SetProjection(hidePassword)).Decode(&u)
	return u, err
}

// EmailTaken reports whether another user already owns the email.
// exclude skips the given user, for profile updates.
func (r *UserRepository) EmailTaken(ctx context.Context, email string, exclude primitive.ObjectID) (bool, error) {
	filter := bson.M{"email": email}
	if !exclude.IsZero() {
		filter["_id"] = bson.M{"$ne": exclude}
	}
	n, err := r.col.CountDocuments(ctx, filter)
	return n > 0, err
}

// Create inserts a new user and fills in its ID and timestamps.
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	res, err := r.col.InsertOne(ctx, u)
	if err != nil {
		return err
	}
	u.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// Update applies the given fields and returns the updated user without
// the password hash. Returns mongo.ErrNoDocuments when the user is gone.
func (r *UserRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (models.User, error) {
	fields["updatedAt"] = time.Now().UTC()
	var u models.User
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().
			SetReturnDocument(options.After).
			SetProjection(hidePassword),
	).Decode(&u)
	return u, err
}

// Delete removes a user. Returns mongo.ErrNoDocuments when nothing matched.
func (r *UserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// List returns one page of users matching filter, plus the total match count.
func (r *UserRepository) List(ctx context.Context, filter bson.M, sort query.Sort, p query.Params) ([]models.User, int64, error) {
	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetProjection(hidePassword).
		SetSort(sort.Doc()).
		SetSkip(p.Skip()).
		SetLimit(int64(p.Limit))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// RoleCounts groups the filtered view by role for the list summary.
func (r *UserRepository) RoleCounts(ctx context.Context, filter bson.M) ([]query.RoleGroup, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$role",
			"count": bson.M{"$sum": 1},
		}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var groups []query.RoleGroup
	if err := cur.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// SearchIDs resolves a free-text term to the IDs of users whose name,
// email, or mobile contains it. The order list uses this to translate a
// customer search into a user-reference predicate.
func (r *UserRepository) SearchIDs(ctx context.Context, term string) ([]primitive.ObjectID, error) {
	cur, err := r.col.Find(ctx, query.UserSearchPredicate(term),
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	return ids, nil
}

// RefsByIDs batch-loads user summaries for order population.
func (r *UserRepository) RefsByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.UserRef, error) {
	refs := map[primitive.ObjectID]models.UserRef{}
	if len(ids) == 0 {
		return refs, nil
	}
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"name": 1, "email": 1, "mobile": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []models.UserRef
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	for _, row := range rows {
		refs[row.ID] = row
	}
	return refs, nil
}

// Count returns the total number of users.
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

// IsNotFound reports whether err means the document did not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// IsDuplicate reports whether err is a unique index violation.
func IsDuplicate(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
