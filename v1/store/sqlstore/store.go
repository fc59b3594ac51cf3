package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/Aleph-Alpha/gpucatalog/v1/card"
	"github.com/Aleph-Alpha/gpucatalog/v1/database"
	"github.com/Aleph-Alpha/gpucatalog/v1/filter"
	"github.com/Aleph-Alpha/gpucatalog/v1/logger"
	"github.com/Aleph-Alpha/gpucatalog/v1/observability"
	"github.com/Aleph-Alpha/gpucatalog/v1/shape"
	"github.com/Aleph-Alpha/gpucatalog/v1/store"
	"github.com/Aleph-Alpha/gpucatalog/v1/tracer"
)

var _ store.Store = (*Store)(nil)

// Store is the relational card store over a database.Client.
type Store struct {
	db       database.Client
	tracer   *tracer.Tracer
	log      logger.Logger
	observer observability.Observer
	now      func() time.Time
}

// NewStore returns a Store over db. tr may be nil.
func NewStore(db database.Client, tr *tracer.Tracer, log logger.Logger) *Store {
	return &Store{
		db:     db,
		tracer: tr,
		log:    log,
		now:    func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

// WithObserver attaches an observer notified after every operation.
func (s *Store) WithObserver(obs observability.Observer) *Store {
	s.observer = obs
	return s
}

// Backend is "mysql" for the mariadb dialect and "postgres" otherwise.
func (s *Store) Backend() string {
	if s.db.Dialect() == database.TypePostgres {
		return "postgres"
	}
	return "mysql"
}

// Kind reports store.KindRelational.
func (s *Store) Kind() store.Kind { return store.KindRelational }

// Ping checks the database connection.
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

	row := newRow(in, s.now())
	if err := s.db.Create(ctx, &row); err != nil {
		return "", fmt.Errorf("insert card: %w", s.db.TranslateError(err))
	}
	return shape.IntID(row.ID), nil
}

// List returns the rows matching f ordered by id descending.
func (s *Store) List(ctx context.Context, f *filter.Set) (records []card.Record, err error) {
	ctx, finish := s.begin(ctx, "list", "")
	defer func() { finish(err, int64(len(records))) }()

	where, args := BuildWhereFor(s.db.Dialect(), f)

	var rows []cardRow
	err = s.db.Query(ctx, func(db *gorm.DB) error {
		return db.Model(&cardRow{}).Where(where, args...).Order(OrderBy).Find(&rows).Error
	})
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", s.db.TranslateError(err))
	}

	records = make([]card.Record, 0, len(rows))
	for _, r := range rows {
		records = append(records, r.record())
	}
	return records, nil
}

// Get returns the card with id, or store.ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (rec card.Record, err error) {
	ctx, finish := s.begin(ctx, "get", id)
	defer func() { finish(ignoreNotFound(err), 1) }()

	key, ok := parseID(id)
	if !ok {
		return card.Record{}, store.ErrNotFound
	}

	var row cardRow
	if err := s.db.First(ctx, &row, "id = ?", key); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return card.Record{}, store.ErrNotFound
		}
		return card.Record{}, fmt.Errorf("get card %s: %w", id, s.db.TranslateError(err))
	}
	return row.record(), nil
}

// Update writes the provided fields of p and updated_at.
func (s *Store) Update(ctx context.Context, id string, p card.Patch) (matched bool, err error) {
	ctx, finish := s.begin(ctx, "update", id)
	defer func() { finish(err, boolSize(matched)) }()

	key, ok := parseID(id)
	if !ok {
		return false, nil
	}

	affected, err := s.db.UpdateWhere(ctx, &cardRow{}, patchColumns(p, s.now()), "id = ?", key)
	if err != nil {
		return false, fmt.Errorf("update card %s: %w", id, s.db.TranslateError(err))
	}
	return affected > 0, nil
}

// Delete removes the card with id.
func (s *Store) Delete(ctx context.Context, id string) (matched bool, err error) {
	ctx, finish := s.begin(ctx, "delete", id)
	defer func() { finish(err, boolSize(matched)) }()

	key, ok := parseID(id)
	if !ok {
		return false, nil
	}

	affected, err := s.db.Delete(ctx, &cardRow{}, "id = ?", key)
	if err != nil {
		return false, fmt.Errorf("delete card %s: %w", id, s.db.TranslateError(err))
	}
	return affected > 0, nil
}

// begin opens a span for operation and returns a function that closes it,
// logs failures and notifies the observer.
func (s *Store) begin(ctx context.Context, operation, id string) (context.Context, func(err error, size int64)) {
	start := time.Now()
	ctx, span := s.tracer.StartSpan(ctx, "sqlstore."+operation)
	s.tracer.SetAttributes(span, map[string]interface{}{
		"db.system": s.db.Dialect(),
		"db.table":  TableName,
		"card.id":   id,
	})

	return ctx, func(err error, size int64) {
		defer span.End()
		if err != nil {
			s.tracer.RecordErrorOnSpan(span, err)
			s.log.ErrorWithContext(ctx, "Relational store operation failed", err, map[string]interface{}{
				"backend":   s.Backend(),
				"operation": operation,
				"id":        id,
			})
		}
		s.observeOperation(operation, id, time.Since(start), err, size)
	}
}

func parseID(id string) (uint64, bool) {
	key, err := strconv.ParseUint(id, 10, 64)
	return key, err == nil
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
