// Command gpucatalog serves the graphics-card catalog over REST and
// provides seed and check helpers for the backing databases.
package main

import (
	"os"
	"os/signal"
	"syscall"
)

func main() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, sigCh))
}
