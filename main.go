package main

import (
	"os"

	"github.com/taskforge/allocd/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
