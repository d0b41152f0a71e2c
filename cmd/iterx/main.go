package main

import (
	"os"

	"github.com/kbukum/iterx/internal/cli"
)

func main() {
	os.Exit(int(cli.Run()))
}
