// Package httpserver runs the storefront's http.Server until its context is
// cancelled, then shuts it down gracefully. It also provides liveness and
// readiness handlers backed by named dependency checks.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//	if err := srv.Run(ctx, router); err != nil {
//	    log.Error("server stopped", logger.Error(err))
//	}
package httpserver
