package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Aleph-Alpha/gpucatalog/v1/card"
	"github.com/Aleph-Alpha/gpucatalog/v1/filter"
	"github.com/Aleph-Alpha/gpucatalog/v1/logger"
	"github.com/Aleph-Alpha/gpucatalog/v1/mongodb"
	"github.com/Aleph-Alpha/gpucatalog/v1/observability"
	"github.com/Aleph-Alpha/gpucatalog/v1/store"
	"github.com/Aleph-Alpha/gpucatalog/v1/tracer"
)

// Backend is the store name used in routes and metrics.
const Backend = "mongodb"

var _ store.Store = (*Store)(nil)

// Store is the document card store.
type Store struct {
	db       *mongodb.MongoDB
	coll     *mongo.Collection
	tracer   *tracer.Tracer
	log      logger.Logger
	observer observability.Observer
	now      func() time.Time
}

// NewStore returns a Store over the graphics_cards collection of db. tr may
// be nil.
func NewStore(db *mongodb.MongoDB, tr *tracer.Tracer, log logger.Logger) *Store {
	return &Store{
		db:     db,
		coll:   db.Collection(CollectionName),
		tracer: tr,
		log:    log,
		// BSON dates keep milliseconds.
		now: func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

// WithObserver attaches an observer notified after every operation.
func (s *Store) WithObserver(obs observability.Observer) *Store {
	s.observer = obs
	return s
}

// Backend reports "mongodb".
func (s *Store) Backend() string { return Backend }

// Kind reports store.KindDocument.
func (s *Store) Kind() store.Kind { return store.KindDocument }

// Ping checks the server is reachable.
func (s *Store) Ping(ctx context.Context) error {
	start := time.Now()
	err := s.db.Ping(ctx)
	s.observeOperation("ping", "", time.Since(start), err, 0)
	return err
}

// Create inserts in with both timestamps set to the same instant.
func (s *Store) Create(ctx context.Context, in card.Input) (id string, err error) {
	ctx, finish := s.begin(ctx, "create", "")
	defer func() { finish(err, 1) }()

	res, err := s.coll.InsertOne(ctx, newDoc(in, s.now()))
	if err != nil {
		return "", fmt.Errorf("insert card: %w", s.db.TranslateError(err))
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert card: unexpected id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

// List returns the documents matching f, newest first.
func (s *Store) List(ctx context.Context, f *filter.Set) (records []card.Record, err error) {
	ctx, finish := s.begin(ctx, "list", "")
	defer func() { finish(err, int64(len(records))) }()

	query, err := BuildQuery(f)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}

	opts := options.Find().SetSort(SortNewestFirst).SetCollation(CaseInsensitive)
	cur, err := s.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", s.db.TranslateError(err))
	}

	var docs []cardDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode cards: %w", err)
	}

	records = make([]card.Record, 0, len(docs))
	for _, d := range docs {
		records = append(records, d.record())
	}
	return records, nil
}

// Get returns the document with id, or store.ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (rec card.Record, err error) {
	ctx, finish := s.begin(ctx, "get", id)
	defer func() { finish(ignoreNotFound(err), 1) }()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return card.Record{}, store.ErrNotFound
	}

	var doc cardDoc
	if err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return card.Record{}, store.ErrNotFound
		}
		return card.Record{}, fmt.Errorf("get card %s: %w", id, s.db.TranslateError(err))
	}
	return doc.record(), nil
}

// Update $sets the provided fields of p and updated_at. A match counts even
// when no value changed.
func (s *Store) Update(ctx context.Context, id string, p card.Patch) (matched bool, err error) {
	ctx, finish := s.begin(ctx, "update", id)
	defer func() { finish(err, boolSize(matched)) }()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	res, err := s.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: patchSet(p, s.now())}},
	)
	if err != nil {
		return false, fmt.Errorf("update card %s: %w", id, s.db.TranslateError(err))
	}
	return res.MatchedCount > 0, nil
}

// Delete removes the document with id.
func (s *Store) Delete(ctx context.Context, id string) (matched bool, err error) {
	ctx, finish := s.begin(ctx, "delete", id)
	defer func() { finish(err, boolSize(matched)) }()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	res, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return false, fmt.Errorf("delete card %s: %w", id, s.db.TranslateError(err))
	}
	return res.DeletedCount > 0, nil
}

func (s *Store) begin(ctx context.Context, operation, id string) (context.Context, func(err error, size int64)) {
	start := time.Now()
	ctx, span := s.tracer.StartSpan(ctx, "docstore."+operation)
	s.tracer.SetAttributes(span, map[string]interface{}{
		"db.system":             Backend,
		"db.mongodb.collection": CollectionName,
		"card.id":               id,
	})

	return ctx, func(err error, size int64) {
		defer span.End()
		if err != nil {
			s.tracer.RecordErrorOnSpan(span, err)
			s.log.ErrorWithContext(ctx, "Document store operation failed", err, map[string]interface{}{
				"backend":   Backend,
				"operation": operation,
				"id":        id,
			})
		}
		s.observeOperation(operation, id, time.Since(start), err, size)
	}
}

func ignoreNotFound(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	return err
}

func boolSize(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
