// Command fieldscan inspects the magnet fields of a level without opening a
// window: the regions each source extracts, the force at a point, and a force
// grid over the level bounds.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
