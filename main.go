package main

import (
	"os"

	"github.com/birmacher/prompt-guide/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
