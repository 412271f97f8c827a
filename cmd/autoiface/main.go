// autoiface generates interfaces and forwarding decorators for annotated types.
//
// Usage:
//
//	autoiface generate [packages...]      # Go host, defaults to ./...
//	autoiface model <descriptor.yaml...>  # descriptor host, writes Java
//	autoiface clean [packages...]         # remove generated Go files
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
