package main

import (
	"os"

	"github.com/finquery/finquery/cmd/finquery/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
