// Command xcstrings reads and edits Apple String Catalogs from the command
// line and serves them over a JSON API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrymomot/xcstrings/pkg/logger"
)

// Version is set via -ldflags.
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	logger.Flush(2 * time.Second)
	os.Exit(code)
}
