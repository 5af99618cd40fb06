package main

import (
	"fmt"
	"os"

	"github.com/fukayatti/api.fukayatti0.dev/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitError)
	}
}
