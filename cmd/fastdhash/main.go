package main

import (
	"os"

	"github.com/9elt/fast-dhash/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
