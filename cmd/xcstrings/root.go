package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dmitrymomot/xcstrings/middlewares"
	"github.com/dmitrymomot/xcstrings/pkg/logger"
	"github.com/dmitrymomot/xcstrings/pkg/storage"
	"github.com/dmitrymomot/xcstrings/pkg/store"
)

// cli holds what every command needs once flags and environment are read.
type cli struct {
	v      *viper.Viper
	cfg    settings
	log    *slog.Logger
	mirror *storage.Mirror
	reg    *store.Registry
}

func newRootCmd() *cobra.Command {
	c := &cli{v: newViper()}

	root := &cobra.Command{
		Use:   "xcstrings",
		Short: "Read and edit Apple String Catalogs",
		Long: `xcstrings reads and edits Apple String Catalogs (.xcstrings files).

Every command prints JSON on stdout. The catalog is taken from --path or
STRINGS_PATH; "serve" also exposes every catalog under --root as a JSON API.`,
		Version:           Version,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return c.close()
		},
	}

	pf := root.PersistentFlags()
	pf.String(keyPath, "", "catalog file (env STRINGS_PATH)")
	pf.String(keyRoot, "", "directory searched for catalogs (env STRINGS_ROOT)")
	pf.String(keySourceLanguage, "", "source language of a catalog created from a missing file")
	pf.String(keyLogLevel, "info", "log level: debug, info, warn, error (env LOG_LEVEL)")
	pf.String(keyLogFormat, "json", "log format: json or text (env LOG_FORMAT)")

	root.AddCommand(
		c.infoCmd(),
		c.listCmd(),
		c.keysCmd(),
		c.getCmd(),
		c.setCmd(),
		c.deleteCmd(),
		c.deleteKeyCmd(),
		c.renameCmd(),
		c.commentCmd(),
		c.extractionStateCmd(),
		c.shouldTranslateCmd(),
		c.languagesCmd(),
		c.untranslatedCmd(),
		c.progressCmd(),
		c.exportCmd(),
		c.previewCmd(),
		c.discoverCmd(),
		c.restoreCmd(),
		c.serveCmd(),
	)
	return root
}

// setup resolves configuration and opens the registry.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	if err := bindFlags(c.v, cmd); err != nil {
		return err
	}
	cfg := loadSettings(c.v)
	c.cfg = cfg

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	format, err := logger.ParseFormat(cfg.LogFormat)
	if err != nil {
		return err
	}
	c.log = logger.New(
		logger.WithLevel(level),
		logger.WithFormat(format),
		logger.WithWriter(cmd.ErrOrStderr()),
		logger.WithExtractors(middlewares.RequestIDExtractor(), logger.CatalogExtractor()),
		logger.WithSentry(logger.SentryConfig{
			DSN:         cfg.SentryDSN,
			Environment: cfg.SentryEnv,
			Release:     Version,
		}),
	)

	storeOpts := []store.Option{store.WithSourceLanguage(cfg.SourceLanguage)}
	if cfg.MirrorEnabled() {
		m, err := storage.New(cfg.Mirror)
		if err != nil {
			return fmt.Errorf("mirror: %w", err)
		}
		c.mirror = m
		storeOpts = append(storeOpts, store.WithCommitHook(m.Commit))
		c.log.Debug("mirror enabled", slog.String("bucket", m.Bucket()))
	}

	c.reg, err = store.NewRegistry(
		store.WithDefaultPath(cfg.Path),
		store.WithSearchRoot(cfg.Root),
		store.WithRegistryLogger(c.log),
		store.WithStoreOptions(storeOpts...),
	)
	return err
}

func (c *cli) close() error {
	if c.reg == nil {
		return nil
	}
	return c.reg.Close()
}

// catalog returns the store of the configured catalog.
func (c *cli) catalog(ctx context.Context) (*store.Store, error) {
	s, err := c.reg.Default(ctx)
	if errors.Is(err, store.ErrPathRequired) {
		return nil, errNoCatalog
	}
	return s, err
}

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.ExecuteContext(ctx); err != nil {
		writeError(stderr, err)
		return exitCode(err)
	}
	return 0
}
