// Command typegen drives the reflection transformer from the command line:
// compiling an in-memory fixture scenario's type to its wire payload
// (`demo`), disassembling a previously produced payload (`disasm`), and
// browsing a fixture's resolved declarations interactively (`inspect`).
package main

import (
	"fmt"
	"os"

	"typegen/cmd/typegen/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
