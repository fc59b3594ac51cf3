// Package storetest holds the behavioural suite every store.Store must
// pass. It expects an empty store and leaves cards behind.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/gpucatalog/v1/card"
	"github.com/Aleph-Alpha/gpucatalog/v1/filter"
	"github.com/Aleph-Alpha/gpucatalog/v1/store"
)

// Fixtures are the cards Run inserts, in insertion order.
func Fixtures() []card.Input {
	boost := func(v int) *int { return &v }
	price := func(s string) decimal.NullDecimal {
		return decimal.NewNullDecimal(decimal.RequireFromString(s))
	}
	date := func(y int, m time.Month, d int) *card.Date {
		v := card.NewDate(y, m, d)
		return &v
	}

	return []card.Input{
		{
			Name: "GeForce RTX 4090", Manufacturer: "NVIDIA", Model: "RTX 4090",
			MemoryGB: 24, MemoryType: "GDDR6X", CoreClockMHz: 2235, BoostClockMHz: boost(2520),
			PriceUSD: price("1599.99"), ReleaseDate: date(2022, time.October, 12),
		},
		{
			Name: "Radeon RX 7900 XTX", Manufacturer: "AMD", Model: "RX 7900 XTX",
			MemoryGB: 24, MemoryType: "GDDR6", CoreClockMHz: 1855, BoostClockMHz: boost(2499),
			PriceUSD: price("999.99"), ReleaseDate: date(2022, time.December, 13),
		},
		{
			Name: "Arc A770", Manufacturer: "Intel", Model: "A770",
			MemoryGB: 16, MemoryType: "GDDR6", CoreClockMHz: 2100,
		},
		{
			Name: "GeForce RTX 4060 100%_off", Manufacturer: "NVIDIA", Model: "RTX 4060",
			MemoryGB: 8, MemoryType: "GDDR6", CoreClockMHz: 1830, BoostClockMHz: boost(2460),
			PriceUSD: price("299.999"),
		},
	}
}

// Run exercises s end to end.
func Run(t *testing.T, s store.Store) {
	ctx := context.Background()

	require.NoError(t, s.Ping(ctx))

	ids := make([]string, 0, len(Fixtures()))
	for _, in := range Fixtures() {
		id, err := s.Create(ctx, in)
		require.NoError(t, err)
		require.NotEmpty(t, id)
		ids = append(ids, id)
	}

	t.Run("GetShapesRecord", func(t *testing.T) {
		rec, err := s.Get(ctx, ids[0])
		require.NoError(t, err)

		assert.Equal(t, ids[0], rec.ID)
		assert.Equal(t, "GeForce RTX 4090", rec.Name)
		assert.Equal(t, 24, rec.MemoryGB)
		require.NotNil(t, rec.BoostClockMHz)
		assert.Equal(t, 2520, *rec.BoostClockMHz)
		require.NotNil(t, rec.PriceUSD)
		assert.InDelta(t, 1599.99, *rec.PriceUSD, 1e-9)
		require.NotNil(t, rec.ReleaseDate)
		assert.Equal(t, "2022-10-12", *rec.ReleaseDate)
		assert.Equal(t, rec.CreatedAt, rec.UpdatedAt)

		_, err = time.Parse(time.RFC3339Nano, rec.CreatedAt)
		assert.NoError(t, err)
	})

	t.Run("GetNullOptionals", func(t *testing.T) {
		rec, err := s.Get(ctx, ids[2])
		require.NoError(t, err)
		assert.Nil(t, rec.BoostClockMHz)
		assert.Nil(t, rec.PriceUSD)
		assert.Nil(t, rec.ReleaseDate)
	})

	t.Run("PriceRoundedToCents", func(t *testing.T) {
		rec, err := s.Get(ctx, ids[3])
		require.NoError(t, err)
		require.NotNil(t, rec.PriceUSD)
		assert.InDelta(t, 300.00, *rec.PriceUSD, 1e-9)
	})

	t.Run("GetUnknown", func(t *testing.T) {
		_, err := s.Get(ctx, "999999")
		assert.ErrorIs(t, err, store.ErrNotFound)

		_, err = s.Get(ctx, "not-an-id")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("ListNewestFirst", func(t *testing.T) {
		for _, f := range []*filter.Set{nil, {}} {
			recs, err := s.List(ctx, f)
			require.NoError(t, err)
			assert.Equal(t, reverse(ids), recordIDs(recs))
		}
	})

	t.Run("ListFilters", func(t *testing.T) {
		cases := []struct {
			name string
			set  filter.Set
			want []string
		}{
			{"search name case-insensitive", filter.Set{Search: ptr("geforce")}, []string{ids[3], ids[0]}},
			{"search model", filter.Set{Search: ptr("a770")}, []string{ids[2]}},
			{"search literal percent", filter.Set{Search: ptr("100%_")}, []string{ids[3]}},
			{"search percent alone", filter.Set{Search: ptr("%")}, []string{ids[3]}},
			{"manufacturer case-insensitive", filter.Set{Manufacturer: ptr("nvidia")}, []string{ids[3], ids[0]}},
			{"manufacturer exact only", filter.Set{Manufacturer: ptr("NVID")}, nil},
			{"memory type", filter.Set{MemoryType: ptr("GDDR6")}, []string{ids[3], ids[2], ids[1]}},
			{"memory range inclusive", filter.Set{MemoryMin: ptr(16), MemoryMax: ptr(24)}, []string{ids[2], ids[1], ids[0]}},
			{"memory inverted range", filter.Set{MemoryMin: ptr(24), MemoryMax: ptr(8)}, nil},
			{"price min keeps unpriced", filter.Set{PriceMin: dec("1000")}, []string{ids[2], ids[0]}},
			{"price max keeps unpriced", filter.Set{PriceMax: dec("300")}, []string{ids[3], ids[2]}},
			{"price range inclusive", filter.Set{PriceMin: dec("999.99"), PriceMax: dec("1599.99")}, []string{ids[2], ids[1], ids[0]}},
			{"combined", filter.Set{Manufacturer: ptr("NVIDIA"), MemoryMin: ptr(16)}, []string{ids[0]}},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				set := tc.set
				recs, err := s.List(ctx, &set)
				require.NoError(t, err)
				assert.Equal(t, tc.want, recordIDs(recs))
			})
		}
	})

	t.Run("UpdatePartial", func(t *testing.T) {
		before, err := s.Get(ctx, ids[1])
		require.NoError(t, err)

		time.Sleep(5 * time.Millisecond)
		matched, err := s.Update(ctx, ids[1], card.Patch{
			MemoryGB: ptr(20),
			PriceUSD: dec("899.5"),
		})
		require.NoError(t, err)
		assert.True(t, matched)

		after, err := s.Get(ctx, ids[1])
		require.NoError(t, err)
		assert.Equal(t, 20, after.MemoryGB)
		require.NotNil(t, after.PriceUSD)
		assert.InDelta(t, 899.50, *after.PriceUSD, 1e-9)
		assert.Equal(t, before.Name, after.Name)
		assert.Equal(t, before.ReleaseDate, after.ReleaseDate)
		assert.Equal(t, before.CreatedAt, after.CreatedAt)

		// The sleep keeps the update out of the millisecond the document
		// store truncates to; a same-millisecond update is not covered.
		beforeAt, err := time.Parse(time.RFC3339Nano, before.UpdatedAt)
		require.NoError(t, err)
		afterAt, err := time.Parse(time.RFC3339Nano, after.UpdatedAt)
		require.NoError(t, err)
		assert.True(t, afterAt.After(beforeAt), "updated_at %s should follow %s", after.UpdatedAt, before.UpdatedAt)
	})

	t.Run("UpdateUnknown", func(t *testing.T) {
		matched, err := s.Update(ctx, "999999", card.Patch{Name: ptr("x")})
		require.NoError(t, err)
		assert.False(t, matched)

		matched, err = s.Update(ctx, "not-an-id", card.Patch{Name: ptr("x")})
		require.NoError(t, err)
		assert.False(t, matched)
	})

	t.Run("Delete", func(t *testing.T) {
		matched, err := s.Delete(ctx, ids[2])
		require.NoError(t, err)
		assert.True(t, matched)

		_, err = s.Get(ctx, ids[2])
		assert.ErrorIs(t, err, store.ErrNotFound)

		matched, err = s.Delete(ctx, ids[2])
		require.NoError(t, err)
		assert.False(t, matched)
	})
}

func recordIDs(recs []card.Record) []string {
	var out []string
	for _, r := range recs {
		out = append(out, r.ID)
	}
	return out
}

func reverse(ids []string) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[len(ids)-1-i] = id
	}
	return out
}

func ptr[T any](v T) *T { return &v }

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
