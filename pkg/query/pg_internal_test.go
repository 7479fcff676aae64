package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

var orderColumns = map[string]string{
	"tenantId":  "tenant_id",
	"status":    "status",
	"total":     "total",
	"name":      "name",
	"createdAt": "created_at",
}

func TestBuildSelect(t *testing.T) {
	t.Parallel()

	t.Run("full plan", func(t *testing.T) {
		t.Parallel()
		args := Args{
			Where: Where{
				Conds: map[string]any{
					"tenantId": "t-1",
					"total":    Cond{Op: OpGte, Value: int64(100)},
				},
				Or: []map[string]any{
					{"name": Contains{Value: "milk"}},
				},
			},
			Sort: []SortField{{Field: "createdAt", Desc: true}, {Field: "name"}},
			Skip: 20,
			Take: 10,
		}

		sql, params, err := buildSelect("orders", orderColumns, args)
		require.NoError(t, err)
		assert.Equal(t,
			`SELECT * FROM orders WHERE tenant_id = $1 AND total >= $2 AND (name ILIKE '%' || $3 || '%' ESCAPE '\') ORDER BY created_at DESC, name ASC LIMIT $4 OFFSET $5`,
			sql)
		assert.Equal(t, []any{"t-1", int64(100), "milk", 10, 20}, params)
	})

	t.Run("search term with LIKE metacharacters is matched literally", func(t *testing.T) {
		t.Parallel()
		args := Args{
			Where: Where{
				Or: []map[string]any{
					{"name": Contains{Value: `50%_off\sale`}},
				},
			},
		}

		sql, params, err := buildSelect("orders", orderColumns, args)
		require.NoError(t, err)
		assert.Equal(t,
			`SELECT * FROM orders WHERE (name ILIKE '%' || $1 || '%' ESCAPE '\')`,
			sql)
		assert.Equal(t, []any{`50\%\_off\\sale`}, params)
	})

	t.Run("projection uses mapped columns", func(t *testing.T) {
		t.Parallel()
		args := Args{Select: []string{"name", "total"}, Take: 10}

		sql, _, err := buildSelect("orders", orderColumns, args)
		require.NoError(t, err)
		assert.Equal(t, "SELECT name, total FROM orders LIMIT $1", sql)
	})

	t.Run("unknown filter field fails before the database", func(t *testing.T) {
		t.Parallel()
		args := Args{Where: Where{Conds: map[string]any{"nope": 1}}}

		_, _, err := buildSelect("orders", orderColumns, args)
		assert.ErrorIs(t, err, ErrUnknownColumn)
	})

	t.Run("unknown sort field fails", func(t *testing.T) {
		t.Parallel()
		args := Args{Sort: []SortField{{Field: "nope"}}}

		_, _, err := buildSelect("orders", orderColumns, args)
		assert.ErrorIs(t, err, ErrUnknownColumn)
	})
}

func TestBuildCount(t *testing.T) {
	t.Parallel()

	where := Where{Conds: map[string]any{"status": "paid", "tenantId": "t-1"}}
	sql, params, err := buildCount("orders", orderColumns, where)
	require.NoError(t, err)
	assert.Equal(t, "SELECT count(*) FROM orders WHERE status = $1 AND tenant_id = $2", sql)
	assert.Equal(t, []any{"paid", "t-1"}, params)
}

func TestMongoFilter(t *testing.T) {
	t.Parallel()

	where := Where{
		Conds: map[string]any{
			"tenantId": "t-1",
			"total":    Cond{Op: OpLte, Value: 500.0},
		},
		Or: []map[string]any{
			{"customer.fullName": Contains{Value: "ra(him"}},
		},
	}

	filter := mongoFilter(where)
	assert.Equal(t, "t-1", filter["tenantId"])
	assert.Equal(t, bson.M{"$lte": 500.0}, filter["total"])

	branches, ok := filter["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, branches, 1)
	// Regex metacharacters in the term must be matched literally.
	assert.Equal(t,
		bson.M{"$regex": `ra\(him`, "$options": "i"},
		branches[0]["customer.fullName"])
}
