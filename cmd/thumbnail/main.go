// Command thumbnail updates or clears a dataset's thumbnail from the command line.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(openSession, os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
