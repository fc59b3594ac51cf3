// Package docstore is the MongoDB implementation of store.Store.
//
// Cards live in one collection. A filter.Set becomes a bson.D built by
// BuildQuery; finds run with CaseInsensitive so equality matches ignore case
// the way the relational collation does. Prices are stored as Decimal128 and
// release dates as BSON dates at midnight UTC.
//
//	s := docstore.NewStore(mongo, tracer, log).WithObserver(metrics)
//	if err := docstore.EnsureIndexes(ctx, mongo.Database, log); err != nil { ... }
package docstore
