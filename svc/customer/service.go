package customer

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/srana86/frameX-sub009/pkg/query"
)

var ErrCustomerNotFound = errors.New("customer not found")

var searchFields = []string{"fullName", "email", "phone"}

var pgColumns = map[string]string{
	"_id":         "id",
	"tenantId":    "tenant_id",
	"fullName":    "full_name",
	"email":       "email",
	"phone":       "phone",
	"ordersCount": "orders_count",
	"totalSpent":  "total_spent",
	"blocked":     "blocked",
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
}

// Service serves tenant-scoped customer reads.
type Service struct {
	customers query.Source[Customer]
}

// NewService creates a Service over the shared mongo customers collection.
func NewService(col *mongo.Collection) *Service {
	if col == nil {
		panic("customer: mongo collection is required")
	}
	return &Service{customers: query.NewMongoSource[Customer](col)}
}

// NewPgService creates a Service over a PostgreSQL customers table.
func NewPgService(pool *pgxpool.Pool) *Service {
	if pool == nil {
		panic("customer: pgx pool is required")
	}
	return &Service{customers: query.NewPgSource[Customer](pool, "customers", pgColumns)}
}

// NewServiceWithSource creates a Service over any query source.
// Intended for tests.
func NewServiceWithSource(src query.Source[Customer]) *Service {
	if src == nil {
		panic("customer: query source is required")
	}
	return &Service{customers: src}
}

// List composes search over name, email and phone with user filters, sort
// and pagination, all under the fixed tenant predicate.
func (s *Service) List(ctx context.Context, tenantID uuid.UUID, params query.Params) (*query.Result[Customer], error) {
	b := query.NewTenantScoped("tenantId", tenantID.String(), params).
		Search(searchFields...).
		Filter().
		Sort().
		Paginate()
	return query.Execute(ctx, b, s.customers)
}

// Get fetches one customer by ID within the tenant's scope.
func (s *Service) Get(ctx context.Context, tenantID uuid.UUID, customerID string) (*Customer, error) {
	args := query.Args{
		Where: query.Where{Conds: map[string]any{
			"tenantId": tenantID.String(),
			"_id":      customerID,
		}},
		Take: 1,
	}
	found, err := s.customers.FindMany(ctx, args)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, ErrCustomerNotFound
	}
	return &found[0], nil
}
