package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/hbomb79/backdrop/internal/cli"
)

// main is the entry point to the program. Interrupting the process
// cancels any in-flight download or FFmpeg command.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
