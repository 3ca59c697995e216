package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses. Transitions are deliberately unconstrained: an admin may
// move an order between any two states.
const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

// OrderItem is one line of an order. Price is a snapshot of the product
// price at placement time, immune to later price changes.
type OrderItem struct {
	Product  primitive.ObjectID `bson:"product" json:"product"`
	Quantity int                `bson:"quantity" json:"quantity"`
	Price    float64            `bson:"price" json:"price"`
}

// Order is the stored order document. Items and TotalAmount are immutable
// after creation; only Status changes afterwards.
type Order struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	User        primitive.ObjectID `bson:"user" json:"user"`
	Items       []OrderItem        `bson:"items" json:"items"`
	TotalAmount float64            `bson:"totalAmount" json:"totalAmount"`
	Status      string             `bson:"status" json:"status"`
	OrderDate   time.Time          `bson:"orderDate" json:"orderDate"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PopulatedOrderItem carries the resolved product reference.
type PopulatedOrderItem struct {
	Product  ProductRef `bson:"product" json:"product"`
	Quantity int        `bson:"quantity" json:"quantity"`
	Price    float64    `bson:"price" json:"price"`
}

// PopulatedOrder is the order shape returned by the API: user and product
// references resolved to their summary documents.
type PopulatedOrder struct {
	ID          primitive.ObjectID   `bson:"_id" json:"_id"`
	User        UserRef              `bson:"user" json:"user"`
	Items       []PopulatedOrderItem `bson:"items" json:"items"`
	TotalAmount float64              `bson:"totalAmount" json:"totalAmount"`
	Status      string               `bson:"status" json:"status"`
	OrderDate   time.Time            `bson:"orderDate" json:"orderDate"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// OrderStatuses lists every valid order status.
var OrderStatuses = []string{OrderPending, OrderConfirmed, OrderDelivered, OrderCancelled}

// ValidOrderStatus reports whether status is a known order status.
func ValidOrderStatus(status string) bool {
	switch status {
	case OrderPending, OrderConfirmed, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}
