// main holds the entry point for the driftmon CLI.
package main

import (
	"fmt"
	"os"

	"github.com/mlopshq/driftmon/cmd"
)

func main() {
	err := cmd.Execute()
	cmd.Cleanup()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
