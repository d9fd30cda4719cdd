// Command chillerselect is the catalog CLI: import, search, stats,
// and import history management against the same store the web UI uses.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/hvactools/chillerselect/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.Execute(ctx)
}
