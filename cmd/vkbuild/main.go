// Command vkbuild resolves, configures, builds, tests and installs the
// graphics engine described by a recipe.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/goplus/vkbuild/cmd/vkbuild/internal"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := internal.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}
