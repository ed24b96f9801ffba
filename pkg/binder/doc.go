// Package binder binds HTTP request data to Go structs.
//
// Binders share the signature func(r *http.Request, v any) error and are
// passed to handler.Wrap through handler.WithBinders. They run in order, so
// a request struct can collect path, query and body values at once:
//
//	type UpdateProductRequest struct {
//	    ID    string `path:"id"`
//	    Name  string `json:"name"`
//	    Price int64  `json:"price"`
//	}
//
//	h := handler.Wrap(updateProduct,
//	    handler.WithBinders[handler.Context, UpdateProductRequest](binder.Path(), binder.JSON()),
//	)
//
// Every string bound from the request passes through sanitizer.StripString,
// so handlers never see markup, null bytes or operator characters even when
// the sanitizer middleware is not mounted.
//
// Query, Form and Path use struct tags of the same name. Untagged fields fall
// back to the lowercased field name and "-" skips a field. Slices accept
// repeated keys and comma-separated values.
//
// Binding failures wrap one of the sentinel errors in errors.go;
// IsBindingError lets error handlers answer them with 400 Bad Request.
package binder
