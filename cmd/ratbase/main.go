// Package main provides the ratbase command, a converter between numerals
// written in rational bases.
package main

import (
	"os"

	"github.com/leapstack-labs/ratbase/internal/cli"
	"github.com/leapstack-labs/ratbase/internal/request"
)

func main() {
	os.Exit(request.ExitCode(cli.Execute()))
}
