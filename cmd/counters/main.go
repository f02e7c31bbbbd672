// Command counters exercises a counters registry from the command line:
// one-off fetches and concurrent stress runs that check its guarantees.
package main

import (
	"os"
)

// Build information injected via ldflags at build time.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
