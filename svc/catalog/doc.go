// Package catalog manages the product catalog: the product document model,
// its validation and derived fields, storage backends (MongoDB and memory),
// a read-through cache (LRU or Redis), the REST API under /api/products and a
// scheduled stock report.
//
// Products are prepared before every write: stock flags, discount, keywords,
// tags and slug are derived from the editable fields, then the document is
// validated. Handlers never see unvalidated input.
//
//	store := catalog.NewMemoryStorage()
//	svc := catalog.NewService(store, catalog.WithCache(catalog.NewLRUCache(512, time.Minute)))
//	r.Mount("/api/products", catalog.Router(svc, log))
package catalog
