package main

import (
	"fmt"
	"os"
)

// flagDie terminates the program when a command line flag is not valid.
func flagDie(description string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, description, args...)
	fmt.Fprintln(os.Stderr)
	os.Exit(2)
}
