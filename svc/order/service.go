package order

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/srana86/frameX-sub009/pkg/query"
)

var ErrOrderNotFound = errors.New("order not found")

// searchFields are the order fields the free-text search term matches
// against. They must be named explicitly; a term with no searchable fields
// is a validation error in the query engine.
var searchFields = []string{"orderNumber", "customer.fullName"}

// pgColumns maps API field names to order table columns for deployments
// running the list API on PostgreSQL.
var pgColumns = map[string]string{
	"_id":               "id",
	"tenantId":          "tenant_id",
	"orderNumber":       "order_number",
	"customer.fullName": "customer_full_name",
	"customer.email":    "customer_email",
	"status":            "status",
	"total":             "total",
	"createdAt":         "created_at",
	"updatedAt":         "updated_at",
}

// Service serves tenant-scoped order reads.
type Service struct {
	orders query.Source[Order]
}

// NewService creates a Service over the shared mongo orders collection.
func NewService(col *mongo.Collection) *Service {
	if col == nil {
		panic("order: mongo collection is required")
	}
	return &Service{orders: query.NewMongoSource[Order](col)}
}

// NewPgService creates a Service over a PostgreSQL orders table.
func NewPgService(pool *pgxpool.Pool) *Service {
	if pool == nil {
		panic("order: pgx pool is required")
	}
	return &Service{orders: query.NewPgSource[Order](pool, "orders", pgColumns)}
}

// NewServiceWithSource creates a Service over any query source.
// Intended for tests.
func NewServiceWithSource(src query.Source[Order]) *Service {
	if src == nil {
		panic("order: query source is required")
	}
	return &Service{orders: src}
}

// List runs the full composition chain over request parameters: search on
// order number and customer name, user filters, sort, pagination. The
// tenant predicate is fixed before any request parameter is consulted.
func (s *Service) List(ctx context.Context, tenantID uuid.UUID, params query.Params) (*query.Result[Order], error) {
	b := query.NewTenantScoped("tenantId", tenantID.String(), params).
		Search(searchFields...).
		Filter().
		Sort().
		Paginate()
	return query.Execute(ctx, b, s.orders)
}

// Get fetches one order by ID within the tenant's scope.
func (s *Service) Get(ctx context.Context, tenantID uuid.UUID, orderID string) (*Order, error) {
	args := query.Args{
		Where: query.Where{Conds: map[string]any{
			"tenantId": tenantID.String(),
			"_id":      orderID,
		}},
		Take: 1,
	}
	found, err := s.orders.FindMany(ctx, args)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, ErrOrderNotFound
	}
	return &found[0], nil
}
