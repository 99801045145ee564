package main

import (
	"os"

	"github.com/gogpu/nvof/cmd/nvofprobe/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
