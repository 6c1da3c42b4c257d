// Package main is the entry point for the tinytest CLI.
package main

import (
	"os"

	"github.com/AndreyAkinshin/tinytest/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
