package main

import (
	"os"

	"github.com/quenio/agerun-go/cmd/agerun/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
