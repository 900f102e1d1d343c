// Package main is the entry point for the laptop-advisor server.
package main

import (
	"os"

	"github.com/donaldgifford/laptop-advisor/cmd/laptop-advisor/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
