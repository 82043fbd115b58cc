package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/doeshing/clio-go/internal/infrastructure/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	opts := cli.Options{Verbose: isVerbose()}

	err := cli.Execute(ctx, opts)
	stop()
	if err != nil {
		if !errors.Is(err, cli.ErrReported) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func isVerbose() bool {
	return strings.EqualFold(os.Getenv("CLIO_DEBUG"), "1") || strings.EqualFold(os.Getenv("CLIO_DEBUG"), "true")
}
