// Package card defines the graphics-card contracts shared by every store:
// the create payload, the partial update, and the transport-safe record.
package card

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// PriceScale is the number of fractional digits stores keep for price_usd.
const PriceScale = 2

// MaxPrice is the largest price_usd the relational column (DECIMAL(10,2))
// can hold. Prices are compared after rounding to PriceScale.
var MaxPrice = decimal.New(9999999999, -PriceScale)

// ErrInvalidInput is wrapped by every validation failure.
var ErrInvalidInput = errors.New("invalid card input")

// Input is the create payload.
type Input struct {
	Name          string              `json:"name"`
	Manufacturer  string              `json:"manufacturer"`
	Model         string              `json:"model"`
	MemoryGB      int                 `json:"memory_gb"`
	MemoryType    string              `json:"memory_type"`
	CoreClockMHz  int                 `json:"core_clock_mhz"`
	BoostClockMHz *int                `json:"boost_clock_mhz,omitempty"`
	PriceUSD      decimal.NullDecimal `json:"price_usd"`
	ReleaseDate   *Date               `json:"release_date,omitempty"`
}

// Validate checks required fields and ranges and reports the first failure.
func (in Input) Validate() error {
	for _, f := range []struct {
		name  string
		value string
	}{
		{"name", in.Name},
		{"manufacturer", in.Manufacturer},
		{"model", in.Model},
		{"memory_type", in.MemoryType},
	} {
		if strings.TrimSpace(f.value) == "" {
			return invalid(f.name, "is required")
		}
	}
	if in.MemoryGB <= 0 {
		return invalid("memory_gb", "must be a positive integer")
	}
	if in.CoreClockMHz <= 0 {
		return invalid("core_clock_mhz", "must be a positive integer")
	}
	if in.BoostClockMHz != nil && *in.BoostClockMHz <= 0 {
		return invalid("boost_clock_mhz", "must be a positive integer")
	}
	if in.PriceUSD.Valid {
		return checkPrice(in.PriceUSD.Decimal)
	}
	return nil
}

// Patch is a partial update. A nil field was absent or null in the request
// and is left untouched; there is no way to clear an optional field.
type Patch struct {
	Name          *string          `json:"name,omitempty"`
	Manufacturer  *string          `json:"manufacturer,omitempty"`
	Model         *string          `json:"model,omitempty"`
	MemoryGB      *int             `json:"memory_gb,omitempty"`
	MemoryType    *string          `json:"memory_type,omitempty"`
	CoreClockMHz  *int             `json:"core_clock_mhz,omitempty"`
	BoostClockMHz *int             `json:"boost_clock_mhz,omitempty"`
	PriceUSD      *decimal.Decimal `json:"price_usd,omitempty"`
	ReleaseDate   *Date            `json:"release_date,omitempty"`
}

// IsEmpty reports whether no field was provided.
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Manufacturer == nil && p.Model == nil &&
		p.MemoryGB == nil && p.MemoryType == nil && p.CoreClockMHz == nil &&
		p.BoostClockMHz == nil && p.PriceUSD == nil && p.ReleaseDate == nil
}

// Validate applies the Input rules to the provided fields only.
func (p Patch) Validate() error {
	for _, f := range []struct {
		name  string
		value *string
	}{
		{"name", p.Name},
		{"manufacturer", p.Manufacturer},
		{"model", p.Model},
		{"memory_type", p.MemoryType},
	} {
		if f.value != nil && strings.TrimSpace(*f.value) == "" {
			return invalid(f.name, "must not be blank")
		}
	}
	for _, f := range []struct {
		name  string
		value *int
	}{
		{"memory_gb", p.MemoryGB},
		{"core_clock_mhz", p.CoreClockMHz},
		{"boost_clock_mhz", p.BoostClockMHz},
	} {
		if f.value != nil && *f.value <= 0 {
			return invalid(f.name, "must be a positive integer")
		}
	}
	if p.PriceUSD != nil {
		return checkPrice(*p.PriceUSD)
	}
	return nil
}

// Record is a card as returned to clients, identical in shape for every
// store.
type Record struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Manufacturer  string   `json:"manufacturer"`
	Model         string   `json:"model"`
	MemoryGB      int      `json:"memory_gb"`
	MemoryType    string   `json:"memory_type"`
	CoreClockMHz  int      `json:"core_clock_mhz"`
	BoostClockMHz *int     `json:"boost_clock_mhz"`
	PriceUSD      *float64 `json:"price_usd"`
	ReleaseDate   *string  `json:"release_date"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
}

func checkPrice(d decimal.Decimal) error {
	if d.IsNegative() {
		return invalid("price_usd", "must not be negative")
	}
	if d.Round(PriceScale).GreaterThan(MaxPrice) {
		return invalid("price_usd", "must not exceed "+MaxPrice.StringFixed(PriceScale))
	}
	return nil
}

func invalid(field, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidInput, field, reason)
}
