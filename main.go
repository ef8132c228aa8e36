package main

import (
	"os"

	"github.com/OscarLawrence/UCP/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
