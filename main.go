package main

import (
	"os"

	"github.com/ptxxdxxd/ascii-telescope/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
