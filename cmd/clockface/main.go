// Command clockface manages and renders analog clock faces.
package main

import (
	"fmt"
	"os"

	"github.com/snitron/clockface/cmd/clockface/cmd"
)

func main() {
	if err := cmd.Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
