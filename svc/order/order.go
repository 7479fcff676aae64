// Package order exposes the tenant-scoped order list and read API consumed
// by the storefront admin panel.
package order

import "time"

// Customer is the order's embedded customer snapshot, denormalized at
// checkout so order lists don't join the customers collection.
type Customer struct {
	FullName string `bson:"fullName" json:"fullName"`
	Email    string `bson:"email" json:"email"`
	Phone    string `bson:"phone" json:"phone"`
}

// Item is a single order line.
type Item struct {
	ProductID string  `bson:"productId" json:"productId"`
	Name      string  `bson:"name" json:"name"`
	Quantity  int64   `bson:"quantity" json:"quantity"`
	UnitPrice float64 `bson:"unitPrice" json:"unitPrice"`
}

// Order is a storefront order. Stored in the shared orders collection keyed
// by tenantId; every read goes through a tenant-scoped query.
type Order struct {
	ID          string    `bson:"_id" json:"id"`
	TenantID    string    `bson:"tenantId" json:"-"`
	OrderNumber string    `bson:"orderNumber" json:"orderNumber"`
	Customer    Customer  `bson:"customer" json:"customer"`
	Items       []Item    `bson:"items" json:"items"`
	Status      string    `bson:"status" json:"status"`
	Total       float64   `bson:"total" json:"total"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Order lifecycle statuses.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)
