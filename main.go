package main

import (
	"os"

	"github.com/rj25031/FCH-pyomo/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
