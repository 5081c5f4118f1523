// Command universe inspects the game economics offline: the effective
// parameters, reward and compound projections, and vesting schedules.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
