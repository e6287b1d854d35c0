// Command folio loads a directory of markdown posts and publishes it: as a
// listing on the terminal, a static site, or a live HTTP server.
package main

import (
	"context"
	"os"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
