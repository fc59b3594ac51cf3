// Package filter turns loosely typed query parameters into a Set of card
// filter criteria understood by every store.
package filter

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Query parameter names.
const (
	ParamSearch       = "search"
	ParamManufacturer = "manufacturer"
	ParamMemoryType   = "memory_type"
	ParamMemoryMin    = "memory_min"
	ParamMemoryMax    = "memory_max"
	ParamPriceMin     = "price_min"
	ParamPriceMax     = "price_max"
)

// MaxPriceDigits is the most significant digits a price bound may carry,
// the precision of a BSON Decimal128. Longer bounds cannot be compared
// exactly by every store and are treated as malformed.
const MaxPriceDigits = 34

// ErrInvalidParam is matched by every *ParamError.
var ErrInvalidParam = errors.New("invalid filter parameter")

var errTooPrecise = fmt.Errorf("more than %d significant digits", MaxPriceDigits)

// ParamError reports a malformed numeric parameter in strict mode.
type ParamError struct {
	Param string
	Value string
	Err   error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid value %q for %s: %v", e.Value, e.Param, e.Err)
}

// Unwrap returns the parse error.
func (e *ParamError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrInvalidParam) hold.
func (e *ParamError) Is(target error) bool { return target == ErrInvalidParam }

// Set holds the optional criteria. Nil fields are not applied. Ranges are
// inclusive and are not checked against each other; an inverted range simply
// matches nothing.
type Set struct {
	Search       *string
	Manufacturer *string
	MemoryType   *string
	MemoryMin    *int
	MemoryMax    *int
	PriceMin     *decimal.Decimal
	PriceMax     *decimal.Decimal
}

// IsEmpty reports whether s applies no criteria. A nil Set is empty.
func (s *Set) IsEmpty() bool {
	return s == nil || (s.Search == nil && s.Manufacturer == nil && s.MemoryType == nil &&
		s.MemoryMin == nil && s.MemoryMax == nil && s.PriceMin == nil && s.PriceMax == nil)
}

// Parse builds a Set from values. Text parameters are trimmed and kept only
// when non-empty; numeric parameters that are absent or do not parse are
// dropped silently. It returns nil when nothing survived.
func Parse(values url.Values) *Set {
	s, _ := parse(values, false)
	return s
}

// ParseStrict is Parse, except that a numeric parameter which is present but
// malformed yields a *ParamError.
func ParseStrict(values url.Values) (*Set, error) {
	return parse(values, true)
}

func parse(values url.Values, strict bool) (*Set, error) {
	s := &Set{
		Search:       text(values, ParamSearch),
		Manufacturer: text(values, ParamManufacturer),
		MemoryType:   text(values, ParamMemoryType),
	}

	var err error
	if s.MemoryMin, err = integer(values, ParamMemoryMin); err != nil && strict {
		return nil, err
	}
	if s.MemoryMax, err = integer(values, ParamMemoryMax); err != nil && strict {
		return nil, err
	}
	if s.PriceMin, err = number(values, ParamPriceMin); err != nil && strict {
		return nil, err
	}
	if s.PriceMax, err = number(values, ParamPriceMax); err != nil && strict {
		return nil, err
	}

	if s.IsEmpty() {
		return nil, nil
	}
	return s, nil
}

func text(values url.Values, key string) *string {
	v := strings.TrimSpace(values.Get(key))
	if v == "" {
		return nil
	}
	return &v
}

func integer(values url.Values, key string) (*int, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &ParamError{Param: key, Value: raw, Err: err}
	}
	return &n, nil
}

func number(values url.Values, key string) (*decimal.Decimal, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, &ParamError{Param: key, Value: raw, Err: err}
	}
	if significantDigits(d) > MaxPriceDigits {
		return nil, &ParamError{Param: key, Value: raw, Err: errTooPrecise}
	}
	return &d, nil
}

// significantDigits counts the digits of d between its first and last
// non-zero digit.
func significantDigits(d decimal.Decimal) int {
	digits := strings.Trim(strings.ReplaceAll(d.Abs().String(), ".", ""), "0")
	return len(digits)
}
