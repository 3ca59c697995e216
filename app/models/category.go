package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category name/description length caps, enforced at write time alongside
// the unique index on name.
const (
	CategoryNameMax        = 50
	CategoryDescriptionMax = 200
)

type Category struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CategoryWithCount is a category row joined with its product count,
// returned when a list request asks for includeProductCount.
type CategoryWithCount struct {
	Category     `bson:",inline"`
	ProductCount int64 `bson:"productCount" json:"productCount"`
}
