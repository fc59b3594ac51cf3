package docstore

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Aleph-Alpha/gpucatalog/v1/filter"
)

// CaseInsensitive is the collation used by finds and indexes. Strength 1
// compares base letters only, ignoring case and accents like
// utf8mb4_unicode_ci does.
var CaseInsensitive = &options.Collation{Locale: "en", Strength: 1}

// SortNewestFirst orders by _id descending. ObjectIDs start with their
// creation second, so this is insertion order reversed.
var SortNewestFirst = bson.D{{Key: "_id", Value: -1}}

// BuildQuery renders f as a find filter. A nil or empty f gives an empty
// document. The search term is matched literally, ignoring case, anywhere in
// name, manufacturer or model. Documents without a price pass every price
// bound. Price bounds are compared at their exact value; a bound Decimal128
// cannot hold is an error.
func BuildQuery(f *filter.Set) (bson.D, error) {
	q := bson.D{}
	if f.IsEmpty() {
		return q, nil
	}

	if f.Search != nil {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(*f.Search), Options: "i"}
		q = append(q, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "name", Value: re}},
			bson.D{{Key: "manufacturer", Value: re}},
			bson.D{{Key: "model", Value: re}},
		}})
	}
	if f.Manufacturer != nil {
		q = append(q, bson.E{Key: "manufacturer", Value: *f.Manufacturer})
	}
	if f.MemoryType != nil {
		q = append(q, bson.E{Key: "memory_type", Value: *f.MemoryType})
	}

	if f.MemoryMin != nil || f.MemoryMax != nil {
		memory := bson.D{}
		if f.MemoryMin != nil {
			memory = append(memory, bson.E{Key: "$gte", Value: *f.MemoryMin})
		}
		if f.MemoryMax != nil {
			memory = append(memory, bson.E{Key: "$lte", Value: *f.MemoryMax})
		}
		q = append(q, bson.E{Key: "memory_gb", Value: memory})
	}

	if f.PriceMin != nil || f.PriceMax != nil {
		price := bson.D{}
		for _, b := range []struct {
			op    string
			value *decimal.Decimal
		}{
			{"$gte", f.PriceMin},
			{"$lte", f.PriceMax},
		} {
			if b.value == nil {
				continue
			}
			v, err := bound(*b.value)
			if err != nil {
				return nil, err
			}
			price = append(price, bson.E{Key: b.op, Value: v})
		}
		q = append(q, bson.E{Key: "$and", Value: bson.A{
			bson.D{{Key: "$or", Value: bson.A{
				bson.D{{Key: "price_usd", Value: price}},
				bson.D{{Key: "price_usd", Value: nil}},
			}}},
		}})
	}

	return q, nil
}

// bound converts a filter bound without rounding.
func bound(d decimal.Decimal) (primitive.Decimal128, error) {
	v, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("price bound %s: %w", d.String(), err)
	}
	return v, nil
}
