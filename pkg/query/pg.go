package query

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgSource adapts a PostgreSQL table to the Source interface for tenants on
// the dedicated relational tier. Field paths are mapped to column names
// through a trusted mapping supplied at construction; a field without a
// mapping fails the query with ErrUnknownColumn before any SQL reaches the
// server. Rows are scanned by column name into T via pgx.
type PgSource[T any] struct {
	pool    *pgxpool.Pool
	table   string
	columns map[string]string
}

// NewPgSource wraps a table. The column mapping translates request-facing
// field names ("createdAt") to column names ("created_at"); only mapped
// fields are filterable or sortable. Panics on nil pool to fail fast during
// service wiring.
func NewPgSource[T any](pool *pgxpool.Pool, table string, columns map[string]string) *PgSource[T] {
	if pool == nil {
		panic("query: pgx pool is required")
	}
	return &PgSource[T]{pool: pool, table: table, columns: columns}
}

func (s *PgSource[T]) FindMany(ctx context.Context, args Args) ([]T, error) {
	sql, params, err := buildSelect(s.table, s.columns, args)
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, sql, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[T])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToDecodeModel, err)
	}
	return out, nil
}

func (s *PgSource[T]) Count(ctx context.Context, where Where) (int64, error) {
	sql, params, err := buildCount(s.table, s.columns, where)
	if err != nil {
		return 0, err
	}

	var total int64
	if err := s.pool.QueryRow(ctx, sql, params...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

var pgOps = map[Op]string{
	OpGte: ">=",
	OpLte: "<=",
	OpGt:  ">",
	OpLt:  "<",
}

// buildSelect renders the plan as a parameterized SELECT. Split out from
// FindMany so the generated SQL is testable without a database.
func buildSelect(table string, columns map[string]string, args Args) (string, []any, error) {
	var sb strings.Builder
	var params []any

	sb.WriteString("SELECT ")
	if len(args.Select) == 0 {
		sb.WriteString("*")
	} else {
		cols := make([]string, 0, len(args.Select))
		for _, field := range args.Select {
			col, ok := columns[field]
			if !ok {
				return "", nil, fmt.Errorf("%w: %q", ErrUnknownColumn, field)
			}
			cols = append(cols, col)
		}
		sb.WriteString(strings.Join(cols, ", "))
	}
	sb.WriteString(" FROM ")
	sb.WriteString(table)

	clause, params, err := buildWhere(columns, args.Where, params)
	if err != nil {
		return "", nil, err
	}
	if clause != "" {
		sb.WriteString(" WHERE ")
		sb.WriteString(clause)
	}

	if len(args.Sort) > 0 {
		orders := make([]string, 0, len(args.Sort))
		for _, sf := range args.Sort {
			col, ok := columns[sf.Field]
			if !ok {
				return "", nil, fmt.Errorf("%w: %q", ErrUnknownColumn, sf.Field)
			}
			dir := "ASC"
			if sf.Desc {
				dir = "DESC"
			}
			orders = append(orders, col+" "+dir)
		}
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(orders, ", "))
	}

	if args.Take > 0 {
		params = append(params, args.Take)
		fmt.Fprintf(&sb, " LIMIT $%d", len(params))
	}
	if args.Skip > 0 {
		params = append(params, args.Skip)
		fmt.Fprintf(&sb, " OFFSET $%d", len(params))
	}

	return sb.String(), params, nil
}

func buildCount(table string, columns map[string]string, where Where) (string, []any, error) {
	var params []any
	clause, params, err := buildWhere(columns, where, params)
	if err != nil {
		return "", nil, err
	}

	sql := "SELECT count(*) FROM " + table
	if clause != "" {
		sql += " WHERE " + clause
	}
	return sql, params, nil
}

// buildWhere renders conditions in deterministic field order so generated
// SQL is stable across runs (prepared statement cache friendliness, tests).
func buildWhere(columns map[string]string, where Where, params []any) (string, []any, error) {
	fields := make([]string, 0, len(where.Conds))
	for field := range where.Conds {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var parts []string
	for _, field := range fields {
		expr, next, err := buildCond(columns, field, where.Conds[field], params)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, expr)
		params = next
	}

	if len(where.Or) > 0 {
		var branches []string
		for _, branch := range where.Or {
			for field, value := range branch {
				expr, next, err := buildCond(columns, field, value, params)
				if err != nil {
					return "", nil, err
				}
				branches = append(branches, expr)
				params = next
			}
		}
		parts = append(parts, "("+strings.Join(branches, " OR ")+")")
	}

	return strings.Join(parts, " AND "), params, nil
}

// escapeLike quotes LIKE metacharacters so user input is matched literally,
// not as a pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func buildCond(columns map[string]string, field string, value any, params []any) (string, []any, error) {
	col, ok := columns[field]
	if !ok {
		return "", nil, fmt.Errorf("%w: %q", ErrUnknownColumn, field)
	}

	switch v := value.(type) {
	case Cond:
		params = append(params, v.Value)
		return fmt.Sprintf("%s %s $%d", col, pgOps[v.Op], len(params)), params, nil
	case Contains:
		params = append(params, escapeLike(v.Value))
		return fmt.Sprintf(`%s ILIKE '%%' || $%d || '%%' ESCAPE '\'`, col, len(params)), params, nil
	default:
		params = append(params, v)
		return fmt.Sprintf("%s = $%d", col, len(params)), params, nil
	}
}
