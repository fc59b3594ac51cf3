// Package shape converts backend-native values into the scalar forms used in
// card.Record: numbers for decimals, ISO 8601 text for dates and timestamps,
// text for identifiers.
package shape

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Aleph-Alpha/gpucatalog/v1/card"
)

// Decimal returns d as a float, or nil when d is null.
func Decimal(d decimal.NullDecimal) *float64 {
	if !d.Valid {
		return nil
	}
	f, _ := d.Decimal.Float64()
	return &f
}

// Decimal128 returns d as a float, or nil when d is nil or not a finite
// number.
func Decimal128(d *primitive.Decimal128) *float64 {
	if d == nil {
		return nil
	}
	parsed, err := decimal.NewFromString(d.String())
	if err != nil {
		return nil
	}
	f, _ := parsed.Float64()
	return &f
}

// Date formats t as YYYY-MM-DD in UTC, or returns nil.
func Date(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(card.DateLayout)
	return &s
}

// Timestamp formats t as RFC 3339 in UTC with sub-second precision.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// IntID renders an auto-increment key.
func IntID(id uint64) string {
	return strconv.FormatUint(id, 10)
}

// ObjectID renders a document key as 24 hex characters.
func ObjectID(id primitive.ObjectID) string {
	return id.Hex()
}
