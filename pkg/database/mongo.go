// Package database manages the MongoDB connection and the collections the
// admin API works with.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vyshnav-v/food-delivery/config"
)

// Collection names.
const (
	ColUsers      = "users"
	ColProducts   = "products"
	ColCategories = "categories"
	ColOrders     = "orders"
	ColLogs       = "request_logs"
)

var (
	client *mongo.Client
	db     *mongo.Database
)

// Connect opens the MongoDB connection and verifies it with a ping.
// Returns an error instead of exiting so the caller can shut down gracefully.
func Connect(ctx context.Context) error {
	opts := options.Client().
		ApplyURI(config.MongoURI()).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(25)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	c, err := mongo.Connect(ctx, opts)
	if err != nil {
		return fmt.Errorf("database: connect: %w", err)
	}

	if err := c.Ping(ctx, nil); err != nil {
		_ = c.Disconnect(context.Background())
		return fmt.Errorf("database: ping: %w", err)
	}

	client = c
	db = c.Database(config.MongoDatabase())
	return nil
}

// Disconnect closes the connection. Safe to call when never connected.
func Disconnect(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}

// DB returns the active database handle.
func DB() *mongo.Database { return db }

// Collection returns a collection by name.
func Collection(name string) *mongo.Collection { return db.Collection(name) }

// EnsureIndexes creates the indexes the query layer depends on:
// uniqueness for user emails and category names, the order list's
// status/user sort paths, and the product search fields.
func EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	unique := options.Index().SetUnique(true)

	specs := map[string][]mongo.IndexModel{
		ColUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "role", Value: 1}}},
		},
		ColCategories: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: unique},
		},
		ColProducts: {
			{Keys: bson.D{{Key: "category", Value: 1}, {Key: "price", Value: 1}}},
			{Keys: bson.D{{Key: "featured", Value: 1}}},
			{Keys: bson.D{{Key: "name", Value: "text"}, {Key: "description", Value: "text"}}},
		},
		ColOrders: {
			{Keys: bson.D{{Key: "user", Value: 1}, {Key: "orderDate", Value: -1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
		},
		ColLogs: {
			{Keys: bson.D{{Key: "time", Value: -1}}},
		},
	}

	for col, models := range specs {
		if _, err := db.Collection(col).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("database: ensure indexes on %s: %w", col, err)
		}
	}
	return nil
}
