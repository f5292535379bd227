// Command teammate forms balanced teams from a CSV roster.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/teammate/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
