// Package main is the entry point for the lpa CLI client.
package main

import (
	"github.com/donaldgifford/laptop-advisor/cmd/lpa/cmd"
)

func main() {
	cmd.Execute()
}
