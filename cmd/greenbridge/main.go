package main

import (
	"fmt"
	"os"

	"github.com/goliatone/greenbridge/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "greenbridge:", err)
		os.Exit(1)
	}
}
