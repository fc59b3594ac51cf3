package shape

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDecimal(t *testing.T) {
	assert.Nil(t, Decimal(decimal.NullDecimal{}))

	got := Decimal(decimal.NewNullDecimal(decimal.RequireFromString("1599.00")))
	require.NotNil(t, got)
	assert.Equal(t, 1599.0, *got)

	zero := Decimal(decimal.NewNullDecimal(decimal.Zero))
	require.NotNil(t, zero, "zero price is not unknown price")
	assert.Equal(t, 0.0, *zero)
}

func TestDecimal128(t *testing.T) {
	assert.Nil(t, Decimal128(nil))

	d, err := primitive.ParseDecimal128("999.99")
	require.NoError(t, err)
	got := Decimal128(&d)
	require.NotNil(t, got)
	assert.Equal(t, 999.99, *got)

	nan := primitive.NewDecimal128(0x7c00000000000000, 0)
	assert.Nil(t, Decimal128(&nan))
}

func TestDateAndTimestamp(t *testing.T) {
	assert.Nil(t, Date(nil))

	day := time.Date(2022, 10, 12, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2022-10-12", *Date(&day))

	ts := time.Date(2024, 3, 1, 10, 30, 0, 123456000, time.FixedZone("CET", 3600))
	assert.Equal(t, "2024-03-01T09:30:00.123456Z", Timestamp(ts))
}

func TestIDs(t *testing.T) {
	assert.Equal(t, "42", IntID(42))

	oid, err := primitive.ObjectIDFromHex("65a1f0c2e4b0a1b2c3d4e5f6")
	require.NoError(t, err)
	assert.Equal(t, "65a1f0c2e4b0a1b2c3d4e5f6", ObjectID(oid))
}
