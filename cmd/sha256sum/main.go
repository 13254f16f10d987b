// Package main is the sha256sum CLI entrypoint.
package main

import (
	"os"

	"sha256sum/internal/app"
)

func main() {
	application := app.New()
	os.Exit(application.Run(os.Args[1:]))
}
