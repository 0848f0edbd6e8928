package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"typegen/internal/pack"
)

var disasmCmd = &cobra.Command{
	Use:   "disasm [wire-string]",
	Short: "Disassemble a previously encoded wire payload",
	Long: `disasm decodes a payload produced by the transformer (the string a
class's __type member or a hoisted __Ω binding would carry at runtime) and
prints its instruction stream without the stack sidecar, since a bare wire
string carries no declaration names to annotate operands with.

Examples:
  typegen disasm '"$$#'`,
	Args: cobra.ExactArgs(1),
	RunE: runDisasm,
}

func init() {
	rootCmd.AddCommand(disasmCmd)
}

func runDisasm(_ *cobra.Command, args []string) error {
	instructions, err := pack.Decode(args[0])
	if err != nil {
		return fmt.Errorf("failed to decode payload: %w", err)
	}

	p := &pack.Pack{Instructions: instructions}
	pack.NewDisassembler(p, os.Stdout).Disassemble()
	return nil
}
