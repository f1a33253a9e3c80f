package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/chazu/bayframe/pkg/cli"
)

func main() {
	if err := cli.RootCmd().Execute(); err != nil {
		// A failed check has already printed its findings.
		if !errors.Is(err, cli.ErrChecksFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
