// Command serve starts the web server only, for container images that run without
// a subcommand. Flags are passed through to "photo-gallery serve".
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"photo-gallery/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cmd.NewRootCmd()
	root.SetArgs(append([]string{"serve"}, os.Args[1:]...))
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
