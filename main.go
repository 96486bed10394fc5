package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/poisepms/poise/cmd"
	"github.com/poisepms/poise/internal/cli"
)

func main() {
	if err := cmd.Execute(); err != nil {
		// commands report their own failures; cobra's flag and argument errors are printed here
		var exitErr *cli.ExitCodeError
		if !errors.As(err, &exitErr) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(cli.ExitCodeFor(err))
	}
}
