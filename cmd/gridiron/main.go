package main

import (
	"os"

	"github.com/nmoreland/gridiron/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
