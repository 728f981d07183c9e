package main

import (
	"os"

	"github.com/dshills/scorecard/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
