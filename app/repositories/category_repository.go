package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vyshnav-v/food-delivery/app/models"
	"github.com/vyshnav-v/food-delivery/app/query"
	"github.com/vyshnav-v/food-delivery/pkg/database"
)

// CategoryRepository handles database operations for categories.
type CategoryRepository struct {
	col *mongo.Collection
}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{col: database.Collection(database.ColCategories)}
}

func (r *CategoryRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Category, error) {
	var c models.Category
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	return c, err
}

// NameTaken reports whether another category already uses the name.
// The unique index is the backstop; this gives the friendlier error.
func (r *CategoryRepository) NameTaken(ctx context.Context, name string, exclude primitive.ObjectID) (bool, error) {
	filter := bson.M{"name": name}
	if !exclude.IsZero() {
		filter["_id"] = bson.M{"$ne": exclude}
	}
	n, err := r.col.CountDocuments(ctx, filter)
	return n > 0, err
}

func (r *CategoryRepository) Create(ctx context.Context, c *models.Category) error {
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	res, err := r.col.InsertOne(ctx, c)
	if err != nil {
		return err
	}
	c.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *CategoryRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (models.Category, error) {
	fields["updatedAt"] = time.Now().UTC()
	var c models.Category
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&c)
	return c, err
}

func (r *CategoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// List returns one page of categories matching filter, plus the total count.
func (r *CategoryRepository) List(ctx context.Context, filter bson.M, sort query.Sort, p query.Params) ([]models.Category, int64, error) {
	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(sort.Doc()).
		SetSkip(p.Skip()).
		SetLimit(int64(p.Limit))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	categories := []models.Category{}
	if err := cur.All(ctx, &categories); err != nil {
		return nil, 0, err
	}
	return categories, total, nil
}

// Count returns the total number of categories.
func (r *CategoryRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}
