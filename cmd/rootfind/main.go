// Command rootfind solves ln(5x−3) = 0.1x(1+x) from the terminal or over HTTP.
package main

import (
	"os"

	"github.com/alexshd/rootfind/cmd/rootfind/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
