// Package store defines the storage contract both card backends implement.
//
// Each implementation translates a filter.Set into its native query, runs
// CRUD against its backend and returns card.Record values, so the HTTP layer
// never sees backend types. Two implementations exist:
//   - sqlstore, over a database.Client (MySQL, MariaDB or PostgreSQL)
//   - docstore, over a *mongodb.MongoDB collection
//
// # Basic Usage
//
//	var s store.Store = sqlstore.NewStore(db, tr, log).WithObserver(m)
//
//	id, err := s.Create(ctx, card.Input{
//	    Name:         "GeForce RTX 4090",
//	    Manufacturer: "NVIDIA",
//	    Model:        "RTX 4090",
//	    MemoryGB:     24,
//	    MemoryType:   "GDDR6X",
//	    CoreClockMHz: 2235,
//	})
//
//	cards, err := s.List(ctx, filter.Parse(r.URL.Query()))
//
//	rec, err := s.Get(ctx, id)
//	if errors.Is(err, store.ErrNotFound) {
//	    // 404
//	}
//
//	matched, err := s.Update(ctx, id, card.Patch{MemoryGB: &twenty})
//	matched, err = s.Delete(ctx, id)
//
// Callers validate card.Input and card.Patch before handing them to a store.
//
// # Semantics Shared by Every Store
//
//   - List is newest first. A nil or empty filter.Set returns every card.
//   - Search is a case-insensitive literal substring of name, manufacturer
//     or model. Manufacturer and memory type match case-insensitively.
//   - Ranges are inclusive. Cards without a price pass every price bound;
//     price bounds are compared at their exact value.
//   - Prices are stored rounded to card.PriceScale fractional digits.
//   - Update writes only the provided fields and always refreshes
//     updated_at. It reports a match even when no value changed.
//   - An identifier the backend cannot parse names no card: Get returns
//     ErrNotFound, Update and Delete report no match, and none of them
//     return an error.
//
// The storetest package runs these properties against a live store, and its
// equivalence test checks that both backends return the same records for the
// same filters.
//
// # Using with Fx Dependency Injection
//
// The HTTP server collects stores from the "stores" value group:
//
//	fx.Provide(
//	    fx.Annotate(newRelationalStore, fx.As(new(store.Store)), fx.ResultTags(`group:"stores"`)),
//	    fx.Annotate(newDocumentStore, fx.As(new(store.Store)), fx.ResultTags(`group:"stores"`)),
//	)
//
// # Testing
//
// MockStore is generated with mockgen from store.go:
//
//	ctrl := gomock.NewController(t)
//	s := store.NewMockStore(ctrl)
//	s.EXPECT().Backend().Return("mysql").AnyTimes()
//	s.EXPECT().Get(gomock.Any(), "7").Return(card.Record{}, store.ErrNotFound)
package store
