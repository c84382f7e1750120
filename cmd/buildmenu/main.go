// Package main is the entry point for the buildmenu CLI.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/runoshun/buildmenu/internal/app"
	"github.com/runoshun/buildmenu/internal/cli"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	rootCmd := cli.NewRootCommand(app.New, version)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	return rootCmd.Execute()
}
