package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/interpretive-systems/rootcmp/internal/cli"
	"github.com/interpretive-systems/rootcmp/internal/compare"
)

func main() {
	err := cli.Execute()
	switch {
	case err == nil:
	case errors.Is(err, compare.ErrDiffer):
		// Summary already printed; only the exit code carries the verdict.
		os.Exit(1)
	case errors.Is(err, cli.ErrUsage):
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	default:
		log.Fatal(err)
	}
}
