package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/xcstrings"
	"github.com/dmitrymomot/xcstrings/middlewares"
	"github.com/dmitrymomot/xcstrings/pkg/logger"
	"github.com/dmitrymomot/xcstrings/pkg/store"
)

func (c *cli) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve catalogs over a JSON API",
		Long: `Serve catalogs over a JSON API.

With --path every request defaults to that catalog; without it the server
runs in discovery mode and requests select a catalog below --root with
?path= or the X-Catalog-Path header.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c.cfg.Port < 0 || c.cfg.Port > 65535 {
				return fmt.Errorf("invalid port %d", c.cfg.Port)
			}
			app, err := c.newApp()
			if err != nil {
				return err
			}

			addr := c.cfg.Addr()
			c.log.Info("serving catalogs",
				slog.String("mode", c.reg.Mode().String()),
				slog.String("root", c.reg.Root()),
				slog.String("address", addr),
			)
			return app.Run(addr,
				xcstrings.Logger(c.log),
				xcstrings.WithContext(cmd.Context()),
				xcstrings.ShutdownTimeout(c.cfg.ShutdownTimeout),
				xcstrings.StartupHook(c.warmUp),
				xcstrings.ShutdownHook(func(context.Context) error {
					logger.Flush(2 * time.Second)
					return nil
				}),
				xcstrings.OnListen(func(addr string) {
					fmt.Fprintf(cmd.OutOrStdout(), "listening on http://%s\n", addr)
				}),
			)
		},
	}

	f := cmd.Flags()
	f.String(keyHost, "127.0.0.1", "listen host (env WEB_HOST)")
	f.Int(keyPort, 8787, "listen port (env WEB_PORT)")
	f.String(keyRefresh, "", `discovery rescan schedule, e.g. "@every 5m" (env DISCOVERY_REFRESH)`)
	f.Duration(keyRequestTimeout, 30*time.Second, "per-request timeout")
	f.Duration(keyShutdownTimeout, 30*time.Second, "graceful shutdown timeout")
	return cmd
}

func (c *cli) newApp() (*xcstrings.App, error) {
	opts := []xcstrings.Option{
		xcstrings.WithCustomLogger(c.log.With(slog.String("component", "api"))),
		xcstrings.WithCatalogs(c.reg),
		xcstrings.WithMiddleware(
			middlewares.RequestID(),
			middlewares.Logging(middlewares.WithLoggingSkipPaths("/health/")),
			middlewares.Recover(),
			middlewares.Timeout(c.cfg.RequestTimeout),
		),
		xcstrings.WithHealthChecks(),
	}
	if c.cfg.Refresh != "" {
		if err := xcstrings.ParseSchedule(c.cfg.Refresh); err != nil {
			return nil, fmt.Errorf("invalid refresh schedule: %w", err)
		}
		opts = append(opts, xcstrings.WithDiscoveryRefresh(c.cfg.Refresh))
	}
	return xcstrings.New(opts...), nil
}

// warmUp opens the pinned catalog, or scans the root, before serving.
func (c *cli) warmUp(ctx context.Context) error {
	if c.reg.Mode() == store.ModePinned {
		_, err := c.reg.Default(ctx)
		return err
	}
	paths, err := c.reg.Paths(ctx)
	if err != nil {
		return err
	}
	c.log.Info("catalogs discovered", slog.Int("count", len(paths)))
	return nil
}
