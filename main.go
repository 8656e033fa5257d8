package main

import (
	"os"

	"github.com/tahfiz/tahfiz/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
