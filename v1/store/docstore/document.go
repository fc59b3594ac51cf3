package docstore

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Aleph-Alpha/gpucatalog/v1/card"
	"github.com/Aleph-Alpha/gpucatalog/v1/shape"
)

// cardDoc is the stored document. Absent optionals are stored as null.
type cardDoc struct {
	ID            primitive.ObjectID    `bson:"_id,omitempty"`
	Name          string                `bson:"name"`
	Manufacturer  string                `bson:"manufacturer"`
	Model         string                `bson:"model"`
	MemoryGB      int                   `bson:"memory_gb"`
	MemoryType    string                `bson:"memory_type"`
	CoreClockMHz  int                   `bson:"core_clock_mhz"`
	BoostClockMHz *int                  `bson:"boost_clock_mhz"`
	PriceUSD      *primitive.Decimal128 `bson:"price_usd"`
	ReleaseDate   *time.Time            `bson:"release_date"`
	CreatedAt     time.Time             `bson:"created_at"`
	UpdatedAt     time.Time             `bson:"updated_at"`
}

func newDoc(in card.Input, now time.Time) cardDoc {
	d := cardDoc{
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
		p := decimal128(in.PriceUSD.Decimal)
		d.PriceUSD = &p
	}
	if in.ReleaseDate != nil {
		t := in.ReleaseDate.Time
		d.ReleaseDate = &t
	}
	return d
}

func (d cardDoc) record() card.Record {
	return card.Record{
		ID:            shape.ObjectID(d.ID),
		Name:          d.Name,
		Manufacturer:  d.Manufacturer,
		Model:         d.Model,
		MemoryGB:      d.MemoryGB,
		MemoryType:    d.MemoryType,
		CoreClockMHz:  d.CoreClockMHz,
		BoostClockMHz: d.BoostClockMHz,
		PriceUSD:      shape.Decimal128(d.PriceUSD),
		ReleaseDate:   shape.Date(d.ReleaseDate),
		CreatedAt:     shape.Timestamp(d.CreatedAt),
		UpdatedAt:     shape.Timestamp(d.UpdatedAt),
	}
}

// patchSet is the $set document for p: provided fields plus updated_at.
func patchSet(p card.Patch, now time.Time) bson.D {
	set := bson.D{}
	add := func(key string, value interface{}) {
		set = append(set, bson.E{Key: key, Value: value})
	}

	if p.Name != nil {
		add("name", *p.Name)
	}
	if p.Manufacturer != nil {
		add("manufacturer", *p.Manufacturer)
	}
	if p.Model != nil {
		add("model", *p.Model)
	}
	if p.MemoryGB != nil {
		add("memory_gb", *p.MemoryGB)
	}
	if p.MemoryType != nil {
		add("memory_type", *p.MemoryType)
	}
	if p.CoreClockMHz != nil {
		add("core_clock_mhz", *p.CoreClockMHz)
	}
	if p.BoostClockMHz != nil {
		add("boost_clock_mhz", *p.BoostClockMHz)
	}
	if p.PriceUSD != nil {
		add("price_usd", decimal128(*p.PriceUSD))
	}
	if p.ReleaseDate != nil {
		add("release_date", p.ReleaseDate.Time)
	}
	add("updated_at", now)

	return set
}

// decimal128 rounds a stored price to card.PriceScale and converts it.
// Validated prices are at most card.MaxPrice, which always fits; filter
// bounds go through bound instead.
func decimal128(d decimal.Decimal) primitive.Decimal128 {
	v, _ := primitive.ParseDecimal128(d.StringFixed(card.PriceScale))
	return v
}
