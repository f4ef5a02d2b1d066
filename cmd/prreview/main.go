package main

import (
	"os"

	"github.com/Vibhor2702/pr-review/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
