package main

import (
	"os"

	"github.com/seawingai/nx/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
