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

// OrderRepository handles database operations for orders. Population of
// user and product references happens in the service layer via the batch
// loaders on the other repositories.
type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{col: database.Collection(database.ColOrders)}
}

func (r *OrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Order, error) {
	var o models.Order
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	return o, err
}

// Create inserts a new order and fills in its ID and timestamps.
func (r *OrderRepository) Create(ctx context.Context, o *models.Order) error {
	now := time.Now().UTC()
	o.CreatedAt = now
	o.UpdatedAt = now
	if o.OrderDate.IsZero() {
		o.OrderDate = now
	}
	res, err := r.col.InsertOne(ctx, o)
	if err != nil {
		return err
	}
	o.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// UpdateStatus sets the order status and returns the updated order.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (models.Order, error) {
	var o models.Order
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&o)
	return o, err
}

func (r *OrderRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// List returns one page of orders matching filter, plus the total count.
func (r *OrderRepository) List(ctx context.Context, filter bson.M, sort query.Sort, p query.Params) ([]models.Order, int64, error) {
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

	orders := []models.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// Recent returns the n most recently placed orders.
func (r *OrderRepository) Recent(ctx context.Context, n int) ([]models.Order, error) {
	cur, err := r.col.Find(ctx, bson.M{},
		options.Find().
			SetSort(bson.D{{Key: "orderDate", Value: -1}}).
			SetLimit(int64(n)))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	orders := []models.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// StatusStats groups the filtered view by status. Cancelled orders
// contribute zero revenue via the $cond inside the $sum.
func (r *OrderRepository) StatusStats(ctx context.Context, filter bson.M) ([]query.OrderStatusGroup, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
			"revenue": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{"$status", models.OrderCancelled}},
				0,
				"$totalAmount",
			}}},
		}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var groups []query.OrderStatusGroup
	if err := cur.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// Count returns the total number of orders.
func (r *OrderRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}
