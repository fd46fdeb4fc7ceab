package main

import (
	"errors"
	"fmt"
	"os"
)

// Version is stamped at build time with -ldflags "-X main.Version=...".
var Version = "dev"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, "check-tool:", err)
		}
		os.Exit(1)
	}
}
