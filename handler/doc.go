// Package handler turns typed storefront handlers into http.HandlerFunc.
//
// A HandlerFunc receives a Context and a request value filled by the
// configured binders, and returns a Response that knows how to render itself:
//
//	type listProductsRequest struct {
//		Category string `query:"category"`
//		Page     int    `query:"page"`
//	}
//
//	func listProducts(ctx handler.Context, req listProductsRequest) handler.Response {
//		page, err := svc.List(ctx, catalog.Filter{Category: req.Category, Page: req.Page})
//		if err != nil {
//			return handler.JSONError(err)
//		}
//		return handler.JSON(page.Items, handler.WithJSONMeta(page.Meta()))
//	}
//
//	r.Get("/api/products", handler.Wrap(listProducts,
//		handler.WithBinders[handler.Context, listProductsRequest](binder.Query()),
//	))
//
// # Responses
//
// JSON and JSONError write the {data, meta, error} envelope. Templ renders a
// templ component as a full HTML document, or as a datastar element patch when
// the request comes from datastar (IsDataStar). TemplMulti patches several
// targets in one stream; SSE hands a StreamContext to long-lived handlers.
// Empty and Redirect cover the rest.
//
// # Errors
//
// HTTPError carries a status and a message key; ValidationError maps fields to
// messages and also accepts validator.ValidationErrors. NewErrorHandler logs
// every failure and answers with JSON for API requests, a toast patch for
// datastar requests and an error page otherwise.
package handler
