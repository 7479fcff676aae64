package query

import (
	"context"
	"errors"
	"regexp"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoSource adapts a MongoDB collection to the Source interface. Dot-path
// fields map directly onto nested document notation, so nested search
// branches need no translation. Include directives are ignored: relation
// loading is not a document-store concept.
type MongoSource[T any] struct {
	coll *mongo.Collection
}

// NewMongoSource wraps a collection. Panics on nil to fail fast during
// service wiring.
func NewMongoSource[T any](coll *mongo.Collection) *MongoSource[T] {
	if coll == nil {
		panic("query: mongo collection is required")
	}
	return &MongoSource[T]{coll: coll}
}

func (s *MongoSource[T]) FindMany(ctx context.Context, args Args) ([]T, error) {
	opts := options.Find().
		SetSkip(int64(args.Skip)).
		SetLimit(int64(args.Take))

	if len(args.Sort) > 0 {
		sort := make(bson.D, 0, len(args.Sort))
		for _, sf := range args.Sort {
			dir := 1
			if sf.Desc {
				dir = -1
			}
			sort = append(sort, bson.E{Key: sf.Field, Value: dir})
		}
		opts.SetSort(sort)
	}

	if len(args.Select) > 0 {
		projection := make(bson.D, 0, len(args.Select))
		for _, field := range args.Select {
			projection = append(projection, bson.E{Key: field, Value: 1})
		}
		opts.SetProjection(projection)
	}

	cursor, err := s.coll.Find(ctx, mongoFilter(args.Where), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []T
	if err := cursor.All(ctx, &out); err != nil {
		return nil, errors.Join(ErrFailedToDecodeModel, err)
	}
	return out, nil
}

func (s *MongoSource[T]) Count(ctx context.Context, where Where) (int64, error) {
	return s.coll.CountDocuments(ctx, mongoFilter(where))
}

// mongoFilter translates composed conditions into a driver filter document.
func mongoFilter(where Where) bson.M {
	filter := make(bson.M, len(where.Conds)+1)
	for field, value := range where.Conds {
		filter[field] = mongoCond(value)
	}
	if len(where.Or) > 0 {
		branches := make([]bson.M, 0, len(where.Or))
		for _, branch := range where.Or {
			m := make(bson.M, len(branch))
			for field, value := range branch {
				m[field] = mongoCond(value)
			}
			branches = append(branches, m)
		}
		filter["$or"] = branches
	}
	return filter
}

func mongoCond(value any) any {
	switch v := value.(type) {
	case Cond:
		return bson.M{"$" + string(v.Op): v.Value}
	case Contains:
		// Quote the term so user input is matched literally, not as a pattern.
		return bson.M{"$regex": regexp.QuoteMeta(v.Value), "$options": "i"}
	default:
		return v
	}
}
