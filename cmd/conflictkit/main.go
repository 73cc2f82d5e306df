// Command conflictkit runs the conflict-resolution scenario suites and
// resolves record pairs from the command line.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
