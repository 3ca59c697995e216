package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product statuses.
const (
	ProductAvailable   = "available"
	ProductUnavailable = "unavailable"
	ProductOutOfStock  = "out-of-stock"
)

// Product is a menu item. Price and stock are never negative; stock is
// mutated only through the conditional decrement in the order placement
// path and through admin updates.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Category    primitive.ObjectID `bson:"category" json:"category"`
	ImageURL    string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Stock       int                `bson:"stock" json:"stock"`
	Status      string             `bson:"status" json:"status"`
	Featured    bool               `bson:"featured" json:"featured"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ProductRef is the populated product shape embedded in order items.
type ProductRef struct {
	ID       primitive.ObjectID `bson:"_id" json:"_id"`
	Name     string             `bson:"name" json:"name"`
	Price    float64            `bson:"price" json:"price"`
	ImageURL string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
}

// ValidProductStatus reports whether status is a known product status.
func ValidProductStatus(status string) bool {
	switch status {
	case ProductAvailable, ProductUnavailable, ProductOutOfStock:
		return true
	}
	return false
}
