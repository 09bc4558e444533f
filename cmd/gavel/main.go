package main

import (
	"os"

	"github.com/gaveldev/gavel/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
