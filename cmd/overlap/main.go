// overlap compares influencers' follower and engagement overlap and tests
// whether network overlap predicts engagement overlap.
//
// Usage:
//
//	overlap analyze [--config study.yaml] [--influencer1 id --influencer2 id]
//	overlap fraction --influencer1 id --influencer2 id
//	overlap pairs
//	overlap history [show <run-id>]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
