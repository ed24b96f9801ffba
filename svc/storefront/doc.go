// Package storefront serves the shopper-facing pages: the catalog grid with
// its live filters, the product detail page and the error pages.
//
// Each browsing session owns a listing.Engine initialized from the grid
// markup the session was first served. Filter changes arrive as datastar
// requests; the handler waits on the engine ticket and streams the grid,
// counter and empty-state patches once the change has been applied:
//
//	sessions := storefront.NewSessions(cookies, catalogSvc, cfg)
//	r.Mount("/", storefront.Router(catalogSvc, sessions, log))
package storefront
