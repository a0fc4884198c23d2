// Command arganaut turns an annotated shell script into shell code that
// binds variables and dispatches to the correct function, and emits
// shell-completion candidates for the same script (spec §1). It is a
// thin dispatcher around the directive/model/match/complete/render/emit
// packages: it reads a script path from argv, calls the core packages,
// and writes their output. It never invokes a shell interpreter itself.
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
