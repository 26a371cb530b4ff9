package main

import (
	"fmt"
	"os"

	"github.com/ipedro/lcovify/cmd/lcovify/app"
)

func main() {
	if err := app.NewLcovifyCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
