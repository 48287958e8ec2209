package main

import (
	"os"

	"github.com/fatih/color"

	"github.com/rgonek/extmd/internal/cli"
)

func main() {
	cmd := cli.NewCmdRoot()
	if err := cmd.Execute(); err != nil {
		_, _ = color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
