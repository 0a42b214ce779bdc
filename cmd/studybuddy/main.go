package main

import (
	"os"

	"studybuddy/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args))
}
