// Package seed inserts the sample catalog into stores.
package seed

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Aleph-Alpha/gpucatalog/v1/card"
	"github.com/Aleph-Alpha/gpucatalog/v1/logger"
	"github.com/Aleph-Alpha/gpucatalog/v1/store"
)

// Cards returns the sample catalog.
func Cards() []card.Input {
	sample := func(name, manufacturer, model string, memoryGB int, memoryType string,
		core, boost int, price string, release card.Date) card.Input {
		return card.Input{
			Name:          name,
			Manufacturer:  manufacturer,
			Model:         model,
			MemoryGB:      memoryGB,
			MemoryType:    memoryType,
			CoreClockMHz:  core,
			BoostClockMHz: &boost,
			PriceUSD:      decimal.NewNullDecimal(decimal.RequireFromString(price)),
			ReleaseDate:   &release,
		}
	}

	return []card.Input{
		sample("NVIDIA GeForce RTX 4090", "NVIDIA", "RTX 4090", 24, "GDDR6X", 2230, 2520, "1599.00",
			card.NewDate(2022, time.October, 12)),
		sample("NVIDIA GeForce RTX 4080", "NVIDIA", "RTX 4080", 16, "GDDR6X", 2210, 2505, "1199.00",
			card.NewDate(2022, time.November, 16)),
		sample("AMD Radeon RX 7900 XTX", "AMD", "RX 7900 XTX", 24, "GDDR6", 2300, 2500, "999.00",
			card.NewDate(2022, time.December, 13)),
		sample("NVIDIA GeForce RTX 4070", "NVIDIA", "RTX 4070", 12, "GDDR6X", 1920, 2475, "599.00",
			card.NewDate(2023, time.April, 13)),
		sample("AMD Radeon RX 7800 XT", "AMD", "RX 7800 XT", 16, "GDDR6", 2124, 2430, "499.00",
			card.NewDate(2023, time.September, 6)),
		sample("NVIDIA GeForce RTX 3060", "NVIDIA", "RTX 3060", 12, "GDDR6", 1320, 1777, "329.00",
			card.NewDate(2021, time.February, 25)),
	}
}

// Result is the outcome for one store.
type Result struct {
	Backend  string
	Inserted int
	Total    int
}

// Seed inserts Cards into each store independently. A failed card is logged
// and skipped; the others are still inserted. It stops early only when ctx
// is done.
func Seed(ctx context.Context, log logger.Logger, stores ...store.Store) []Result {
	cards := Cards()
	results := make([]Result, 0, len(stores))

	for _, s := range stores {
		res := Result{Backend: s.Backend(), Total: len(cards)}
		for _, in := range cards {
			if ctx.Err() != nil {
				break
			}
			id, err := s.Create(ctx, in)
			if err != nil {
				log.Error("Failed to seed card", err, map[string]interface{}{
					"backend": s.Backend(),
					"name":    in.Name,
				})
				continue
			}
			res.Inserted++
			log.Info("Seeded card", nil, map[string]interface{}{
				"backend": s.Backend(),
				"name":    in.Name,
				"id":      id,
			})
		}

		log.Info("Seeding finished", nil, map[string]interface{}{
			"backend":  res.Backend,
			"inserted": res.Inserted,
			"total":    res.Total,
		})
		results = append(results, res)
	}
	return results
}
