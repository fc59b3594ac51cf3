package sqlstore

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"github.com/Aleph-Alpha/gpucatalog/v1/card"
	"github.com/Aleph-Alpha/gpucatalog/v1/filter"
)

func ptr[T any](v T) *T { return &v }

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

var cmpDecimal = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func TestBuildWhere_NilFilterSet(t *testing.T) {
	where, args := BuildWhere(nil)
	if where != "1=1" {
		t.Errorf("expected 1=1, got %q", where)
	}
	if len(args) != 0 {
		t.Errorf("expected no args, got %v", args)
	}
}

func TestBuildWhere_EmptyFilterSet(t *testing.T) {
	where, args := BuildWhere(&filter.Set{})
	if where != "1=1" || len(args) != 0 {
		t.Errorf("expected bare 1=1, got %q %v", where, args)
	}
}

func TestBuildWhere_Search(t *testing.T) {
	where, args := BuildWhere(&filter.Set{Search: ptr("rtx")})

	want := "1=1 AND (name LIKE ? OR manufacturer LIKE ? OR model LIKE ?)"
	if where != want {
		t.Errorf("expected %q, got %q", want, where)
	}
	if diff := cmp.Diff([]any{"%rtx%", "%rtx%", "%rtx%"}, args); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildWhere_SearchEscapesWildcards(t *testing.T) {
	_, args := BuildWhere(&filter.Set{Search: ptr(`100%_a\b`)})

	if args[0] != `%100\%\_a\\b%` {
		t.Errorf("expected escaped term, got %q", args[0])
	}
}

func TestBuildWhere_AllFieldsInOrder(t *testing.T) {
	where, args := BuildWhere(&filter.Set{
		Search:       ptr("x"),
		Manufacturer: ptr("NVIDIA"),
		MemoryType:   ptr("GDDR6X"),
		MemoryMin:    ptr(8),
		MemoryMax:    ptr(24),
		PriceMin:     dec("100"),
		PriceMax:     dec("2000"),
	})

	want := "1=1" +
		" AND (name LIKE ? OR manufacturer LIKE ? OR model LIKE ?)" +
		" AND manufacturer = ?" +
		" AND memory_type = ?" +
		" AND memory_gb >= ?" +
		" AND memory_gb <= ?" +
		" AND (price_usd IS NULL OR price_usd >= ?)" +
		" AND (price_usd IS NULL OR price_usd <= ?)"
	if where != want {
		t.Errorf("where mismatch:\nwant %q\ngot  %q", want, where)
	}

	wantArgs := []any{"%x%", "%x%", "%x%", "NVIDIA", "GDDR6X", 8, 24, *dec("100"), *dec("2000")}
	if diff := cmp.Diff(wantArgs, args, cmpDecimal); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildWhere_IndependentBounds(t *testing.T) {
	where, args := BuildWhere(&filter.Set{MemoryMax: ptr(12), PriceMin: dec("0")})

	want := "1=1 AND memory_gb <= ? AND (price_usd IS NULL OR price_usd >= ?)"
	if where != want {
		t.Errorf("expected %q, got %q", want, where)
	}
	if len(args) != 2 {
		t.Errorf("expected 2 args, got %d", len(args))
	}
}

func TestBuildWhereFor_Postgres(t *testing.T) {
	where, args := BuildWhereFor("postgres", &filter.Set{Search: ptr("rx"), Manufacturer: ptr("amd")})

	want := "1=1 AND (name ILIKE ? OR manufacturer ILIKE ? OR model ILIKE ?) AND LOWER(manufacturer) = LOWER(?)"
	if where != want {
		t.Errorf("expected %q, got %q", want, where)
	}
	if len(args) != 4 || args[3] != "amd" {
		t.Errorf("unexpected args %v", args)
	}

	mysqlWhere, _ := BuildWhereFor("mariadb", &filter.Set{Manufacturer: ptr("amd")})
	if mysqlWhere != "1=1 AND manufacturer = ?" {
		t.Errorf("mariadb dialect should use the MySQL form, got %q", mysqlWhere)
	}
}

func TestSchemaFor(t *testing.T) {
	if len(schemaFor("mariadb")) != 1 {
		t.Errorf("mysql schema is a single statement")
	}
	if len(schemaFor("postgres")) != 4 {
		t.Errorf("postgres schema is table plus three indexes")
	}
}

func TestPatchColumns(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	cols := patchColumns(card.Patch{}, now)
	if diff := cmp.Diff(map[string]interface{}{"updated_at": now}, cols); diff != "" {
		t.Errorf("empty patch must only touch updated_at (-want +got):\n%s", diff)
	}

	date := card.NewDate(2020, time.September, 17)
	cols = patchColumns(card.Patch{
		MemoryGB:    ptr(16),
		PriceUSD:    dec("699.999"),
		ReleaseDate: &date,
	}, now)

	want := map[string]interface{}{
		"updated_at":   now,
		"memory_gb":    16,
		"price_usd":    *dec("700"),
		"release_date": date.Time,
	}
	if diff := cmp.Diff(want, cols, cmpDecimal); diff != "" {
		t.Errorf("patch columns mismatch (-want +got):\n%s", diff)
	}
}

func TestRowRecord(t *testing.T) {
	now := time.Date(2024, 5, 6, 7, 8, 9, 123000, time.UTC)
	in := card.Input{
		Name:         "RTX 4090",
		Manufacturer: "NVIDIA",
		Model:        "AD102",
		MemoryGB:     24,
		MemoryType:   "GDDR6X",
		CoreClockMHz: 2235,
		PriceUSD:     decimal.NewNullDecimal(decimal.RequireFromString("1599.00")),
	}

	row := newRow(in, now)
	row.ID = 7
	rec := row.record()

	if rec.ID != "7" {
		t.Errorf("expected id 7, got %q", rec.ID)
	}
	if rec.PriceUSD == nil || *rec.PriceUSD != 1599 {
		t.Errorf("expected price 1599, got %v", rec.PriceUSD)
	}
	if rec.ReleaseDate != nil {
		t.Errorf("expected no release date, got %v", *rec.ReleaseDate)
	}
	if rec.CreatedAt != rec.UpdatedAt || rec.CreatedAt != "2024-05-06T07:08:09.000123Z" {
		t.Errorf("unexpected timestamps %q %q", rec.CreatedAt, rec.UpdatedAt)
	}
}
