// Package main is the entry point for the lakewatch CLI binary.
package main

import (
	"os"

	cli "lakewatch/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
