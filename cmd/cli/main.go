package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		errorColor.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
	stop()
}
