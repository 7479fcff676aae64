package order_test

import (
	"context"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srana86/frameX-sub009/pkg/query"
	"github.com/srana86/frameX-sub009/svc/order"
)

// fakeSource records the last plan it was asked to run and replies with
// canned rows.
type fakeSource struct {
	rows      []order.Order
	total     int64
	lastArgs  query.Args
	lastWhere query.Where
}

func (f *fakeSource) FindMany(_ context.Context, args query.Args) ([]order.Order, error) {
	f.lastArgs = args
	return f.rows, nil
}

func (f *fakeSource) Count(_ context.Context, where query.Where) (int64, error) {
	f.lastWhere = where
	return f.total, nil
}

func params(values url.Values) query.Params {
	return query.ParamsFromValues(values)
}

func TestService_List(t *testing.T) {
	t.Parallel()

	tenantID := uuid.New()

	t.Run("composes tenant scope, search and filters", func(t *testing.T) {
		t.Parallel()
		src := &fakeSource{
			rows:  []order.Order{{ID: "o1", OrderNumber: "SO-1001"}},
			total: 1,
		}
		svc := order.NewServiceWithSource(src)

		result, err := svc.List(context.Background(), tenantID, params(url.Values{
			"searchTerm": {"rahim"},
			"status":     {"pending"},
			"total":      {">=100"},
			"page":       {"2"},
			"limit":      {"20"},
		}))
		require.NoError(t, err)

		assert.Equal(t, tenantID.String(), src.lastArgs.Where.Conds["tenantId"])
		assert.Equal(t, "pending", src.lastArgs.Where.Conds["status"])
		assert.Equal(t, query.Cond{Op: query.OpGte, Value: int64(100)}, src.lastArgs.Where.Conds["total"])
		require.Len(t, src.lastArgs.Where.Or, 2)

		assert.Equal(t, 20, src.lastArgs.Take)
		assert.Equal(t, 20, src.lastArgs.Skip)
		assert.Equal(t, 2, result.Meta.Page)
		assert.Equal(t, int64(1), result.Meta.Total)

		// Count runs against the identical conditions.
		assert.Equal(t, src.lastArgs.Where.Conds["tenantId"], src.lastWhere.Conds["tenantId"])
	})

	t.Run("tenant field cannot be overridden by request", func(t *testing.T) {
		t.Parallel()
		svc := order.NewServiceWithSource(&fakeSource{})

		_, err := svc.List(context.Background(), tenantID, params(url.Values{
			"tenantId": {"someone-else"},
		}))
		assert.ErrorIs(t, err, query.ErrProtectedField)
	})

	t.Run("default sort and pagination applied", func(t *testing.T) {
		t.Parallel()
		src := &fakeSource{}
		svc := order.NewServiceWithSource(src)

		result, err := svc.List(context.Background(), tenantID, params(url.Values{}))
		require.NoError(t, err)

		require.Len(t, src.lastArgs.Sort, 1)
		assert.Equal(t, "createdAt", src.lastArgs.Sort[0].Field)
		assert.True(t, src.lastArgs.Sort[0].Desc)
		assert.Equal(t, query.DefaultLimit, src.lastArgs.Take)
		assert.NotNil(t, result.Data)
	})
}

func TestService_Get(t *testing.T) {
	t.Parallel()

	tenantID := uuid.New()

	t.Run("found", func(t *testing.T) {
		t.Parallel()
		src := &fakeSource{rows: []order.Order{{ID: "o1", OrderNumber: "SO-1001"}}}
		svc := order.NewServiceWithSource(src)

		got, err := svc.Get(context.Background(), tenantID, "o1")
		require.NoError(t, err)
		assert.Equal(t, "SO-1001", got.OrderNumber)

		assert.Equal(t, tenantID.String(), src.lastArgs.Where.Conds["tenantId"])
		assert.Equal(t, "o1", src.lastArgs.Where.Conds["_id"])
		assert.Equal(t, 1, src.lastArgs.Take)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		svc := order.NewServiceWithSource(&fakeSource{})

		_, err := svc.Get(context.Background(), tenantID, "missing")
		assert.ErrorIs(t, err, order.ErrOrderNotFound)
	})
}
