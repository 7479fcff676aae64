// Package customer exposes the tenant-scoped customer directory consumed by
// the storefront admin panel.
package customer

import "time"

// Customer is a storefront customer record in the shared customers
// collection, keyed by tenantId.
type Customer struct {
	ID          string    `bson:"_id" json:"id"`
	TenantID    string    `bson:"tenantId" json:"-"`
	FullName    string    `bson:"fullName" json:"fullName"`
	Email       string    `bson:"email" json:"email"`
	Phone       string    `bson:"phone" json:"phone"`
	OrdersCount int64     `bson:"ordersCount" json:"ordersCount"`
	TotalSpent  float64   `bson:"totalSpent" json:"totalSpent"`
	Blocked     bool      `bson:"blocked" json:"blocked"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}
