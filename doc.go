// Package xcstrings serves and edits Apple String Catalogs (.xcstrings files)
// through a small JSON API.
//
// The catalog model, merge engine and persistence live in pkg/catalog and
// pkg/store; this package is the HTTP front end over them. It wraps the
// application core with type aliases and option constructors so programs
// never import internal/ directly.
//
// # Quick Start
//
// Open a registry, create an application over it and call Run:
//
//	reg, err := store.NewRegistry(
//	    store.WithDefaultPath("App/Localizable.xcstrings"),
//	    store.WithSearchRoot("."),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	app := xcstrings.New(
//	    xcstrings.WithCatalogs(reg),
//	    xcstrings.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.Logging(),
//	        middlewares.Recover(),
//	    ),
//	    xcstrings.WithHealthChecks(),
//	)
//
//	if err := app.Run("127.0.0.1:8787"); err != nil {
//	    log.Fatal(err)
//	}
//
// A registry without a default path runs in discovery mode: every request
// names its catalog with ?path= or the [CatalogPathHeader] header, and
// WithDiscoveryRefresh rescans the search root on a cron schedule.
//
// # Handlers
//
// Additional routes are declared by types implementing [Handler]:
//
//	type versionHandler struct{ version string }
//
//	func (h versionHandler) Routes(r xcstrings.Router) {
//	    r.GET("/version", h.show)
//	}
//
//	func (h versionHandler) show(c xcstrings.Context) error {
//	    return c.JSON(http.StatusOK, map[string]string{"version": h.version})
//	}
//
// # Errors
//
// Handlers return errors instead of writing failure responses. The default
// error handler renders them as {code, message, location, request_id} with
// one of the stable Code* values; catalog errors keep their kind and logical
// location, anything unexpected becomes a generic internal_error.
//
// # Shutdown
//
// Run handles SIGINT/SIGTERM. The HTTP server drains first, then shutdown
// hooks run, then the catalog registry is closed:
//
//	app.Run(addr,
//	    xcstrings.ShutdownHook(func(context.Context) error {
//	        logger.Flush(2 * time.Second)
//	        return nil
//	    }),
//	)
package xcstrings
