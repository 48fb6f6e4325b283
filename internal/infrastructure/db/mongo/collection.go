package mongo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tenderdesk/business-api/internal/core/domain"
	"github.com/tenderdesk/business-api/internal/core/ports"
)

// Collection implements ports.ResourceRepository[T] on one MongoDB
// collection. Documents are keyed by the string id held in domain.Meta.
type Collection[T any] struct {
	col *mongo.Collection
}

func NewCollection[T any](db *mongo.Database, name string) *Collection[T] {
	return &Collection[T]{col: db.Collection(name)}
}

// Name returns the underlying collection name.
func (r *Collection[T]) Name() string {
	return r.col.Name()
}

// Insert stores a new document. A duplicate key maps to domain.ErrConflict.
func (r *Collection[T]) Insert(ctx context.Context, rec *T) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, rec); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert into %s: %w", r.col.Name(), err)
	}
	return nil
}

func (r *Collection[T]) FindByID(ctx context.Context, id string) (*T, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// List returns one page of documents, newest first, plus the total number
// of documents matching the filter.
func (r *Collection[T]) List(ctx context.Context, filter ports.ListFilter) ([]*T, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.CreatedBy != "" {
		query["created_by"] = filter.CreatedBy
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", r.col.Name(), err)
	}

	page, limit := filter.Page, filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 0 {
		limit = 0
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skipFor(page, limit))
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find %s: %w", r.col.Name(), err)
	}
	defer cur.Close(ctx)

	items := make([]*T, 0, limit)
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, fmt.Errorf("decode %s: %w", r.col.Name(), err)
	}
	return items, total, nil
}

// skipFor computes the number of documents before page in int64, saturating
// instead of wrapping.
func skipFor(page, limit int) int64 {
	p, l := int64(page-1), int64(limit)
	if l > 0 && p > math.MaxInt64/l {
		return math.MaxInt64
	}
	return p * l
}

// Replace overwrites the document with the given id.
func (r *Collection[T]) Replace(ctx context.Context, id string, rec *T) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": id}, rec)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("replace in %s: %w", r.col.Name(), err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Collection[T]) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete from %s: %w", r.col.Name(), err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes every resource collection is queried by.
func (r *Collection[T]) EnsureIndexes(ctx context.Context, extra ...mongo.IndexModel) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := append([]mongo.IndexModel{
		{Keys: bson.D{{Key: "created_by", Value: 1}, {Key: "created_at", Value: -1}}},
	}, extra...)

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *Collection[T]) findOne(ctx context.Context, filter bson.M) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rec T
	if err := r.col.FindOne(ctx, filter).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find in %s: %w", r.col.Name(), err)
	}
	return &rec, nil
}

// EnsureResourceIndexes creates the shared resource indexes on every named
// collection.
func EnsureResourceIndexes(ctx context.Context, db *mongo.Database, names ...string) error {
	for _, name := range names {
		if err := NewCollection[bson.M](db, name).EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("indexes for %s: %w", name, err)
		}
	}
	return nil
}
