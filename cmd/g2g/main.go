// Package main is the entry point for the g2g CLI.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/runoshun/g2g/internal/app"
	"github.com/runoshun/g2g/internal/cli"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() (err error) {
	// Create dependency injection container
	container, err := app.New()
	if err != nil {
		return runWithoutContainer(fmt.Errorf("failed to initialize: %w", err))
	}
	defer func() {
		err = errors.Join(err, container.Close())
	}()

	// Create and execute root command
	rootCmd := cli.NewRootCommand(container, version)
	return rootCmd.Execute()
}

// runWithoutContainer keeps help and version working when the data
// directory or its config cannot be used.
func runWithoutContainer(initErr error) error {
	if !canRunWithoutContainer(os.Args[1:]) {
		return initErr
	}
	rootCmd := cli.NewRootCommand(nil, version)
	return rootCmd.Execute()
}

func canRunWithoutContainer(args []string) bool {
	if len(args) == 0 {
		return true
	}
	if args[0] == "help" || args[0] == "completion" {
		return true
	}
	for _, arg := range args {
		if arg == "--version" || arg == "-v" || arg == "--help" || arg == "-h" ||
			strings.HasPrefix(arg, "--help=") {
			return true
		}
	}
	return false
}
