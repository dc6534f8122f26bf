// Command encryptf encrypts and decrypts files in place.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/idelchi/encryptf/internal/commands"
	"github.com/idelchi/gogen/pkg/cobraext"
)

// version is stamped at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := commands.NewRootCommand(version).ExecuteContext(ctx)

	stop()

	// --show prints the configuration and ends the run without an error.
	if err != nil && !errors.Is(err, cobraext.ErrExitGracefully) {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
