package filter

import (
	"errors"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func ptr[T any](v T) *T { return &v }

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

var cmpDecimal = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  *Set
	}{
		{"no params", "", nil},
		{"only blanks", "search=%20%20&manufacturer=", nil},
		{"trimmed text", "search=%20rtx%20&manufacturer=NVIDIA&memory_type=GDDR6X", &Set{
			Search:       ptr("rtx"),
			Manufacturer: ptr("NVIDIA"),
			MemoryType:   ptr("GDDR6X"),
		}},
		{"numeric bounds", "memory_min=8&memory_max=%2024&price_min=100&price_max=999.99", &Set{
			MemoryMin: ptr(8),
			MemoryMax: ptr(24),
			PriceMin:  dec("100"),
			PriceMax:  dec("999.99"),
		}},
		{"malformed numbers dropped", "memory_min=lots&price_max=cheap", nil},
		{"malformed next to valid", "memory_min=abc&manufacturer=AMD", &Set{Manufacturer: ptr("AMD")}},
		{"inverted range passes through", "memory_min=24&memory_max=8", &Set{MemoryMin: ptr(24), MemoryMax: ptr(8)}},
		{"float memory dropped", "memory_min=8.5", nil},
		{"unknown params ignored", "page=2&sort=name", nil},
		{"sub-cent bounds kept exactly", "price_min=99.994&price_max=999.995", &Set{
			PriceMin: dec("99.994"),
			PriceMax: dec("999.995"),
		}},
		{"over-precise bound dropped", "price_min=10&price_max=1234567890123456789012345678901234567.5", &Set{
			PriceMin: dec("10"),
		}},
		{"34 significant digits kept", "price_max=1234567890123456789012345678901234", &Set{
			PriceMax: dec("1234567890123456789012345678901234"),
		}},
		{"trailing zeros are not significant", "price_min=0.000100&price_max=12345678901234567890123456789012340000", &Set{
			PriceMin: dec("0.0001"),
			PriceMax: dec("12345678901234567890123456789012340000"),
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			values, err := url.ParseQuery(tc.query)
			if err != nil {
				t.Fatalf("parse query: %v", err)
			}
			got := Parse(values)
			if diff := cmp.Diff(tc.want, got, cmpDecimal); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tc.query, diff)
			}
		})
	}
}

func TestParseStrict(t *testing.T) {
	values := url.Values{ParamPriceMin: {"abc"}, ParamManufacturer: {"AMD"}}

	_, err := ParseStrict(values)
	if err == nil {
		t.Fatal("expected error for malformed price_min")
	}
	if !errors.Is(err, ErrInvalidParam) {
		t.Errorf("expected ErrInvalidParam, got %v", err)
	}
	var pe *ParamError
	if !errors.As(err, &pe) || pe.Param != ParamPriceMin || pe.Value != "abc" {
		t.Errorf("unexpected param error %#v", pe)
	}

	got, err := ParseStrict(url.Values{ParamMemoryMin: {"16"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || *got.MemoryMin != 16 {
		t.Errorf("expected memory_min 16, got %+v", got)
	}

	_, err = ParseStrict(url.Values{ParamPriceMax: {"1234567890123456789012345678901234567.5"}})
	if !errors.As(err, &pe) || pe.Param != ParamPriceMax {
		t.Errorf("expected over-precise price_max to be rejected, got %v", err)
	}

	got, err = ParseStrict(url.Values{})
	if err != nil || got != nil {
		t.Errorf("expected nil set and no error, got %+v, %v", got, err)
	}
}

func TestIsEmpty(t *testing.T) {
	var nilSet *Set
	if !nilSet.IsEmpty() {
		t.Error("nil set must be empty")
	}
	if !(&Set{}).IsEmpty() {
		t.Error("zero set must be empty")
	}
	if (&Set{PriceMax: dec("1")}).IsEmpty() {
		t.Error("set with price_max is not empty")
	}
}

func TestConfigParse(t *testing.T) {
	values := url.Values{ParamMemoryMin: {"lots"}, ParamSearch: {"rtx"}}

	lenient, err := Config{}.Parse(values)
	if err != nil {
		t.Fatalf("lenient parse returned %v", err)
	}
	if lenient == nil || lenient.MemoryMin != nil || *lenient.Search != "rtx" {
		t.Errorf("expected only the search term to survive, got %+v", lenient)
	}

	if _, err := (Config{Strict: true}).Parse(values); !errors.Is(err, ErrInvalidParam) {
		t.Errorf("expected ErrInvalidParam in strict mode, got %v", err)
	}
}
