// Command notecards is a terminal client for the notecards backend. It turns
// notes into saved flashcards, lists stored cards and starts plan checkouts.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
