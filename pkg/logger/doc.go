// Package logger builds the storefront's *slog.Logger.
//
// New applies functional options on top of JSON/INFO defaults, picks a text
// or JSON handler and wraps it with LogHandlerDecorator, which pulls
// request-scoped attributes (request id, session id) out of the context on
// every record.
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "storefront"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.WarnContext(ctx, "product card skipped",
//	    logger.Component("listing"),
//	    logger.ProductID("product-3"),
//	)
//
// The attribute helpers in attr.go keep key names consistent across
// packages. Helpers taking an error or an id return an empty slog.Attr for nil
// input so they can be passed unconditionally.
package logger
