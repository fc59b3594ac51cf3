package sqlstore

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Aleph-Alpha/gpucatalog/v1/card"
	"github.com/Aleph-Alpha/gpucatalog/v1/shape"
)

// cardRow maps one graphics_cards row.
type cardRow struct {
	ID            uint64              `gorm:"column:id;primaryKey;autoIncrement"`
	Name          string              `gorm:"column:name"`
	Manufacturer  string              `gorm:"column:manufacturer"`
	Model         string              `gorm:"column:model"`
	MemoryGB      int                 `gorm:"column:memory_gb"`
	MemoryType    string              `gorm:"column:memory_type"`
	CoreClockMHz  int                 `gorm:"column:core_clock_mhz"`
	BoostClockMHz *int                `gorm:"column:boost_clock_mhz"`
	PriceUSD      decimal.NullDecimal `gorm:"column:price_usd"`
	ReleaseDate   *time.Time          `gorm:"column:release_date"`
	CreatedAt     time.Time           `gorm:"column:created_at"`
	UpdatedAt     time.Time           `gorm:"column:updated_at"`
}

func (cardRow) TableName() string { return TableName }

func newRow(in card.Input, now time.Time) cardRow {
	r := cardRow{
		Name:          in.Name,
		Manufacturer:  in.Manufacturer,
		Model:         in.Model,
		MemoryGB:      in.MemoryGB,
		MemoryType:    in.MemoryType,
		CoreClockMHz:  in.CoreClockMHz,
		BoostClockMHz: in.BoostClockMHz,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if in.PriceUSD.Valid {
		r.PriceUSD = decimal.NewNullDecimal(in.PriceUSD.Decimal.Round(card.PriceScale))
	}
	if in.ReleaseDate != nil {
		d := in.ReleaseDate.Time
		r.ReleaseDate = &d
	}
	return r
}

func (r cardRow) record() card.Record {
	return card.Record{
		ID:            shape.IntID(r.ID),
		Name:          r.Name,
		Manufacturer:  r.Manufacturer,
		Model:         r.Model,
		MemoryGB:      r.MemoryGB,
		MemoryType:    r.MemoryType,
		CoreClockMHz:  r.CoreClockMHz,
		BoostClockMHz: r.BoostClockMHz,
		PriceUSD:      shape.Decimal(r.PriceUSD),
		ReleaseDate:   shape.Date(r.ReleaseDate),
		CreatedAt:     shape.Timestamp(r.CreatedAt),
		UpdatedAt:     shape.Timestamp(r.UpdatedAt),
	}
}

// patchColumns lists the provided fields of p by column, plus updated_at.
func patchColumns(p card.Patch, now time.Time) map[string]interface{} {
	cols := map[string]interface{}{"updated_at": now}
	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if p.Manufacturer != nil {
		cols["manufacturer"] = *p.Manufacturer
	}
	if p.Model != nil {
		cols["model"] = *p.Model
	}
	if p.MemoryGB != nil {
		cols["memory_gb"] = *p.MemoryGB
	}
	if p.MemoryType != nil {
		cols["memory_type"] = *p.MemoryType
	}
	if p.CoreClockMHz != nil {
		cols["core_clock_mhz"] = *p.CoreClockMHz
	}
	if p.BoostClockMHz != nil {
		cols["boost_clock_mhz"] = *p.BoostClockMHz
	}
	if p.PriceUSD != nil {
		cols["price_usd"] = p.PriceUSD.Round(card.PriceScale)
	}
	if p.ReleaseDate != nil {
		cols["release_date"] = p.ReleaseDate.Time
	}
	return cols
}
