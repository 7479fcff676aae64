package query

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// Source is the data-access capability a plan executes against.
// Implementations are provided for MongoDB collections and PostgreSQL tables;
// tests typically use an in-memory fake.
type Source[T any] interface {
	// FindMany returns the rows matching the plan, honoring sort, skip,
	// take and projection.
	FindMany(ctx context.Context, args Args) ([]T, error)

	// Count returns the number of rows matching the conditions, ignoring
	// pagination.
	Count(ctx context.Context, where Where) (int64, error)
}

// Meta describes the page a Result holds.
type Meta struct {
	Page      int   `json:"page"`
	Limit     int   `json:"limit"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"totalPage"`
}

// Result is the uniform output of every paginated list endpoint.
type Result[T any] struct {
	Data []T  `json:"data"`
	Meta Meta `json:"meta"`
}

// Execute runs the composed plan: FindMany and Count are issued concurrently
// against the same Where, so total always reflects the conditions the data
// was fetched with. The two calls are not atomic; a write landing between
// them can skew total by a row. Builders created with WithSerialized issue
// the calls sequentially instead.
func Execute[T any](ctx context.Context, b *Builder, src Source[T]) (*Result[T], error) {
	if src == nil {
		return nil, ErrNilSource
	}
	args, err := b.Args()
	if err != nil {
		return nil, err
	}

	var (
		data  []T
		total int64
	)

	if b.serial {
		if data, err = src.FindMany(ctx, args); err != nil {
			return nil, errors.Join(ErrFailedToFetchData, err)
		}
		if total, err = src.Count(ctx, args.Where); err != nil {
			return nil, errors.Join(ErrFailedToCountTotal, err)
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			rows, err := src.FindMany(gctx, args)
			if err != nil {
				return errors.Join(ErrFailedToFetchData, err)
			}
			data = rows
			return nil
		})
		g.Go(func() error {
			n, err := src.Count(gctx, args.Where)
			if err != nil {
				return errors.Join(ErrFailedToCountTotal, err)
			}
			total = n
			return nil
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	if data == nil {
		data = []T{}
	}

	return &Result[T]{
		Data: data,
		Meta: Meta{
			Page:      b.currentPage(),
			Limit:     args.Take,
			Total:     total,
			TotalPage: totalPages(total, args.Take),
		},
	}, nil
}

// Count runs only the count part of the plan.
func Count[T any](ctx context.Context, b *Builder, src Source[T]) (int64, error) {
	if src == nil {
		return 0, ErrNilSource
	}
	where, err := b.Where()
	if err != nil {
		return 0, err
	}
	total, err := src.Count(ctx, where)
	if err != nil {
		return 0, errors.Join(ErrFailedToCountTotal, err)
	}
	return total, nil
}

func totalPages(total int64, limit int) int64 {
	if limit <= 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}
