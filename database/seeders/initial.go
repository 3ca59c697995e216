package seeders

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vyshnav-v/food-delivery/app/models"
	"github.com/vyshnav-v/food-delivery/config"
	"github.com/vyshnav-v/food-delivery/pkg/auth"
	"github.com/vyshnav-v/food-delivery/pkg/database"
)

func init() {
	Register("admin", seedAdmin)
	Register("categories", seedCategories)
}

// seedAdmin creates the initial admin account if no admin exists yet.
// Credentials come from ADMIN_EMAIL / ADMIN_PASSWORD.
func seedAdmin(ctx context.Context, db *mongo.Database) error {
	col := db.Collection(database.ColUsers)

	n, err := col.CountDocuments(ctx, bson.M{"role": models.RoleAdmin})
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	hash, err := auth.HashPassword(config.Get("ADMIN_PASSWORD", "admin123"))
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = col.InsertOne(ctx, models.User{
		Name:      "Administrator",
		Email:     config.Get("ADMIN_EMAIL", "admin@example.com"),
		Password:  hash,
		Role:      models.RoleAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	})
	return err
}

// seedCategories inserts a starter set of menu categories, skipping any
// that already exist.
func seedCategories(ctx context.Context, db *mongo.Database) error {
	col := db.Collection(database.ColCategories)
	now := time.Now().UTC()

	starters := []models.Category{
		{Name: "Starters", Description: "Appetisers and small plates"},
		{Name: "Mains", Description: "Main course dishes"},
		{Name: "Desserts", Description: "Sweets and desserts"},
		{Name: "Beverages", Description: "Hot and cold drinks"},
	}

	for _, c := range starters {
		n, err := col.CountDocuments(ctx, bson.M{"name": c.Name})
		if err != nil {
			return err
		}
		if n > 0 {
			continue
		}
		c.CreatedAt = now
		c.UpdatedAt = now
		if _, err := col.InsertOne(ctx, c); err != nil {
			return err
		}
	}
	return nil
}
