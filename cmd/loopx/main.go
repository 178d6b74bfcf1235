package main

import (
	"os"

	"github.com/gnolang/loopx/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
