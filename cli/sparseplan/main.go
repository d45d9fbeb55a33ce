// Package main is the sparseplan command itself.
package main

import (
	"os"

	"go.viam.com/sparseplan/cli"
	"go.viam.com/sparseplan/logging"
)

func main() {
	app := cli.NewApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		logging.NewLogger("sparseplan").Error(err)
		os.Exit(1)
	}
}
