package main

import (
	"fmt"
	"os"

	"github.com/khushiprajapath451-lab/Medwiseai/internal/cli"
)

var version = "v0.1.0" // Overwritten at build time

func main() {
	rootCmd := cli.NewRootCmd(cli.Options{Version: version})
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
