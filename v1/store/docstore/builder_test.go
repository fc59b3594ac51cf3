package docstore

import (
	"regexp"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Aleph-Alpha/gpucatalog/v1/card"
	"github.com/Aleph-Alpha/gpucatalog/v1/filter"
)

var cmpDecimal128 = cmp.Comparer(func(a, b primitive.Decimal128) bool { return a.String() == b.String() })

func ptr[T any](v T) *T { return &v }

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func d128(s string) primitive.Decimal128 {
	v, err := primitive.ParseDecimal128(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name string
		set  *filter.Set
		want bson.D
	}{
		{
			name: "nil set",
			set:  nil,
			want: bson.D{},
		},
		{
			name: "empty set",
			set:  &filter.Set{},
			want: bson.D{},
		},
		{
			name: "search",
			set:  &filter.Set{Search: ptr("rtx")},
			want: bson.D{{Key: "$or", Value: bson.A{
				bson.D{{Key: "name", Value: primitive.Regex{Pattern: "rtx", Options: "i"}}},
				bson.D{{Key: "manufacturer", Value: primitive.Regex{Pattern: "rtx", Options: "i"}}},
				bson.D{{Key: "model", Value: primitive.Regex{Pattern: "rtx", Options: "i"}}},
			}}},
		},
		{
			name: "equality fields",
			set:  &filter.Set{Manufacturer: ptr("AMD"), MemoryType: ptr("GDDR6")},
			want: bson.D{
				{Key: "manufacturer", Value: "AMD"},
				{Key: "memory_type", Value: "GDDR6"},
			},
		},
		{
			name: "memory min only",
			set:  &filter.Set{MemoryMin: ptr(8)},
			want: bson.D{{Key: "memory_gb", Value: bson.D{{Key: "$gte", Value: 8}}}},
		},
		{
			name: "memory range shares one object",
			set:  &filter.Set{MemoryMin: ptr(8), MemoryMax: ptr(16)},
			want: bson.D{{Key: "memory_gb", Value: bson.D{
				{Key: "$gte", Value: 8},
				{Key: "$lte", Value: 16},
			}}},
		},
		{
			name: "price range keeps null prices",
			set:  &filter.Set{PriceMin: dec("100"), PriceMax: dec("499.999")},
			want: bson.D{{Key: "$and", Value: bson.A{
				bson.D{{Key: "$or", Value: bson.A{
					bson.D{{Key: "price_usd", Value: bson.D{
						{Key: "$gte", Value: d128("100")},
						{Key: "$lte", Value: d128("499.999")},
					}}},
					bson.D{{Key: "price_usd", Value: nil}},
				}}},
			}}},
		},
		{
			name: "price max only",
			set:  &filter.Set{PriceMax: dec("300")},
			want: bson.D{{Key: "$and", Value: bson.A{
				bson.D{{Key: "$or", Value: bson.A{
					bson.D{{Key: "price_usd", Value: bson.D{{Key: "$lte", Value: d128("300")}}}},
					bson.D{{Key: "price_usd", Value: nil}},
				}}},
			}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildQuery(tt.set)
			if err != nil {
				t.Fatalf("BuildQuery: %v", err)
			}
			if diff := cmp.Diff(tt.want, got, cmpDecimal128); diff != "" {
				t.Errorf("BuildQuery mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildQuery_PriceBoundsAreExact(t *testing.T) {
	tests := []struct {
		name string
		set  *filter.Set
		op   string
		want string
	}{
		{"sub-cent min", &filter.Set{PriceMin: dec("99.994")}, "$gte", "99.994"},
		{"sub-cent max", &filter.Set{PriceMax: dec("99.996")}, "$lte", "99.996"},
		{"half cent max", &filter.Set{PriceMax: dec("999.995")}, "$lte", "999.995"},
		{"34 digits", &filter.Set{PriceMax: dec("1234567890123456789012345678901234")}, "$lte",
			"1234567890123456789012345678901234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := BuildQuery(tt.set)
			if err != nil {
				t.Fatalf("BuildQuery: %v", err)
			}
			and := q[0].Value.(bson.A)
			or := and[0].(bson.D)[0].Value.(bson.A)
			price := or[0].(bson.D)[0].Value.(bson.D)

			if price[0].Key != tt.op {
				t.Fatalf("expected %s, got %s", tt.op, price[0].Key)
			}
			got := price[0].Value.(primitive.Decimal128)
			if got.String() != d128(tt.want).String() {
				t.Errorf("bound = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestBuildQuery_UnrepresentableBound(t *testing.T) {
	_, err := BuildQuery(&filter.Set{PriceMax: dec("1234567890123456789012345678901234567.5")})
	if err == nil {
		t.Fatal("expected an error for a bound Decimal128 cannot hold")
	}
}

func TestBuildQuery_FieldOrder(t *testing.T) {
	got, err := BuildQuery(&filter.Set{
		Search:       ptr("x"),
		Manufacturer: ptr("NVIDIA"),
		MemoryType:   ptr("GDDR6X"),
		MemoryMax:    ptr(24),
		PriceMin:     dec("1"),
	})
	if err != nil {
		t.Fatalf("BuildQuery: %v", err)
	}

	var keys []string
	for _, e := range got {
		keys = append(keys, e.Key)
	}
	want := []string{"$or", "manufacturer", "memory_type", "memory_gb", "$and"}
	if diff := cmp.Diff(want, keys); diff != "" {
		t.Errorf("key order mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildQuery_SearchIsLiteral(t *testing.T) {
	term := `a.b*c(d)+[e]\f$`
	q, err := BuildQuery(&filter.Set{Search: &term})
	if err != nil {
		t.Fatalf("BuildQuery: %v", err)
	}

	or := q[0].Value.(bson.A)
	re := or[0].(bson.D)[0].Value.(primitive.Regex)

	if re.Pattern != regexp.QuoteMeta(term) {
		t.Errorf("expected quoted pattern, got %q", re.Pattern)
	}
	compiled := regexp.MustCompile(re.Pattern)
	if !compiled.MatchString("xx" + term + "yy") {
		t.Errorf("pattern should match the literal term")
	}
	if compiled.MatchString("aXb") {
		t.Errorf("metacharacters must not act as wildcards")
	}
}

func TestNewDocAndRecord(t *testing.T) {
	now := time.Date(2024, 3, 4, 5, 6, 7, 8_000_000, time.UTC)
	release := card.NewDate(2023, time.January, 3)
	in := card.Input{
		Name:         "Radeon RX 7600",
		Manufacturer: "AMD",
		Model:        "RX 7600",
		MemoryGB:     8,
		MemoryType:   "GDDR6",
		CoreClockMHz: 1720,
		PriceUSD:     decimal.NewNullDecimal(decimal.RequireFromString("269.255")),
		ReleaseDate:  &release,
	}

	doc := newDoc(in, now)
	if doc.PriceUSD == nil || doc.PriceUSD.String() != "269.26" {
		t.Fatalf("expected price rounded to 269.26, got %v", doc.PriceUSD)
	}

	doc.ID = primitive.NewObjectIDFromTimestamp(now)
	rec := doc.record()

	if rec.ID != doc.ID.Hex() || len(rec.ID) != 24 {
		t.Errorf("unexpected id %q", rec.ID)
	}
	if rec.PriceUSD == nil || *rec.PriceUSD != 269.26 {
		t.Errorf("expected 269.26, got %v", rec.PriceUSD)
	}
	if rec.ReleaseDate == nil || *rec.ReleaseDate != "2023-01-03" {
		t.Errorf("unexpected release date %v", rec.ReleaseDate)
	}
	if rec.BoostClockMHz != nil {
		t.Errorf("expected no boost clock")
	}
	if rec.CreatedAt != "2024-03-04T05:06:07.008Z" || rec.UpdatedAt != rec.CreatedAt {
		t.Errorf("unexpected timestamps %q %q", rec.CreatedAt, rec.UpdatedAt)
	}
}

func TestPatchSet(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	got := patchSet(card.Patch{Name: ptr("New"), PriceUSD: dec("10")}, now)
	want := bson.D{
		{Key: "name", Value: "New"},
		{Key: "price_usd", Value: d128("10.00")},
		{Key: "updated_at", Value: now},
	}
	if diff := cmp.Diff(want, got, cmpDecimal128); diff != "" {
		t.Errorf("patchSet mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(bson.D{{Key: "updated_at", Value: now}}, patchSet(card.Patch{}, now)); diff != "" {
		t.Errorf("empty patch mismatch (-want +got):\n%s", diff)
	}
}

func TestIndexModels(t *testing.T) {
	models := indexModels()
	if len(models) != len(indexedFields) {
		t.Fatalf("expected %d indexes, got %d", len(indexedFields), len(models))
	}
	for i, m := range models {
		keys := m.Keys.(bson.D)
		if keys[0].Key != indexedFields[i] || keys[0].Value != 1 {
			t.Errorf("unexpected index keys %v", keys)
		}
	}
}
