package main

import (
	"os"

	"github.com/hrygo/datetimex/cmd/datetimex/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
