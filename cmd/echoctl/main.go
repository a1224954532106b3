package main

import (
	"os"

	"github.com/RahulRR-10/EchoSQL/internal/cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
