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

// ProductRepository handles database operations for products, including
// the conditional stock mutations the order workflow depends on.
type ProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{col: database.Collection(database.ColProducts)}
}

func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	var p models.Product
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	return p, err
}

func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return err
	}
	p.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// Update applies the given fields and returns the updated product.
func (r *ProductRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (models.Product, error) {
	fields["updatedAt"] = time.Now().UTC()
	var p models.Product
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	return p, err
}

func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// List returns one page of products matching filter, plus the total count.
func (r *ProductRepository) List(ctx context.Context, filter bson.M, sort query.Sort, p query.Params) ([]models.Product, int64, error) {
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

	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// Search runs term against the name/description text index and returns a
// trimmed projection of the best matches.
func (r *ProductRepository) Search(ctx context.Context, term string, limit int64) ([]models.Product, error) {
	opts := options.Find().
		SetProjection(bson.M{"name": 1, "price": 1, "category": 1}).
		SetLimit(limit)
	cur, err := r.col.Find(ctx, bson.M{"$text": bson.M{"$search": term}}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ─── Stock ────────────────────────────────────────────────────────────────────

// DecrementStock atomically takes qty units off a product's stock, but only
// when at least qty units remain. Returns the updated product, or
// mongo.ErrNoDocuments when the product is missing or the stock is short.
// The filter and the $inc run as one document operation, so two concurrent
// orders can never both win the last unit.
func (r *ProductRepository) DecrementStock(ctx context.Context, id primitive.ObjectID, qty int) (models.Product, error) {
	var p models.Product
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "stock": bson.M{"$gte": qty}},
		bson.M{
			"$inc": bson.M{"stock": -qty},
			"$set": bson.M{"updatedAt": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	return p, err
}

// IncrementStock returns qty units to a product's stock. Used to compensate
// a decrement when a later step of order placement fails.
func (r *ProductRepository) IncrementStock(ctx context.Context, id primitive.ObjectID, qty int) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$inc": bson.M{"stock": qty},
			"$set": bson.M{"updatedAt": time.Now().UTC()},
		})
	return err
}

// SetStatus updates only the product status.
func (r *ProductRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}})
	return err
}

// ─── Aggregation ─────────────────────────────────────────────────────────────

// CountsByCategory groups products by category reference. With a nil ids
// slice it covers every category; otherwise only the given ones.
func (r *ProductRepository) CountsByCategory(ctx context.Context, ids []primitive.ObjectID) ([]query.IDCountGroup, error) {
	match := bson.M{}
	if ids != nil {
		match["category"] = bson.M{"$in": ids}
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$category",
			"count": bson.M{"$sum": 1},
		}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var groups []query.IDCountGroup
	if err := cur.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// CountByCategory returns how many products reference the category. The
// category delete path uses this as its guard.
func (r *ProductRepository) CountByCategory(ctx context.Context, categoryID primitive.ObjectID) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"category": categoryID})
}

// RefsByIDs batch-loads product summaries for order population.
func (r *ProductRepository) RefsByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.ProductRef, error) {
	refs := map[primitive.ObjectID]models.ProductRef{}
	if len(ids) == 0 {
		return refs, nil
	}
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"name": 1, "price": 1, "imageUrl": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []models.ProductRef
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	for _, row := range rows {
		refs[row.ID] = row
	}
	return refs, nil
}

// Count returns the total number of products.
func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}
