package store

import (
	"context"
	"errors"

	"github.com/Aleph-Alpha/gpucatalog/v1/card"
	"github.com/Aleph-Alpha/gpucatalog/v1/filter"
)

//go:generate mockgen -source=store.go -destination=mock_store.go -package=store

// ErrNotFound is returned by Get when no card has the identifier.
var ErrNotFound = errors.New("card not found")

// Kind tells how a backend assigns identifiers.
type Kind string

const (
	// KindRelational backends use auto-increment integer ids.
	KindRelational Kind = "relational"

	// KindDocument backends use opaque generated ids.
	KindDocument Kind = "document"
)

// Store is a card catalog backend.
//
// Identifiers that cannot name a record in the backend (for example a
// non-numeric relational id) are treated as absent: Get returns
// ErrNotFound, Update and Delete report no match.
type Store interface {
	// Create inserts the card, sets both timestamps and returns the new id.
	Create(ctx context.Context, in card.Input) (string, error)

	// List returns the cards matching f, newest first. A nil or empty f
	// returns everything.
	List(ctx context.Context, f *filter.Set) ([]card.Record, error)

	// Get returns one card or ErrNotFound.
	Get(ctx context.Context, id string) (card.Record, error)

	// Update writes the provided fields and refreshes updated_at. It reports
	// whether a card matched.
	Update(ctx context.Context, id string, p card.Patch) (bool, error)

	// Delete removes the card and reports whether one matched.
	Delete(ctx context.Context, id string) (bool, error)

	// Ping checks the backend is reachable.
	Ping(ctx context.Context) error

	// Backend names the store in routes, logs and metrics: "mysql",
	// "postgres" or "mongodb".
	Backend() string

	Kind() Kind
}
