// Command nanorecipes manages a local recipe collection from the terminal.
package main

import (
	"fmt"
	"os"
)

func main() {
	cli := NewCLI(os.Stdin, os.Stdout, os.Stderr)
	if err := cli.Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
