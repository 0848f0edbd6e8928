package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"typegen/internal/pack"
	"typegen/internal/program"
	"typegen/internal/resolve"
	"typegen/internal/typewalk"
	"typegen/pkg/hostapi"
	"typegen/pkg/hostapi/fixture"
)

// scenarios maps a demo name to the fixture builder producing its host and
// primary source file. Multi-file scenarios (CrossFileReference) expose only
// their consumer file here; the demo always walks a scenario's last
// declaration, which is the one that actually exercises the interesting
// reference.
var scenarios = map[string]func() (*fixture.Host, *hostapi.SourceFile){
	"simple-alias":    func() (*fixture.Host, *hostapi.SourceFile) { return fixture.SimpleAlias() },
	"union-alias":     func() (*fixture.Host, *hostapi.SourceFile) { return fixture.UnionAlias() },
	"box-interface":   func() (*fixture.Host, *hostapi.SourceFile) { return fixture.GenericBoxInterface() },
	"titled-class":    func() (*fixture.Host, *hostapi.SourceFile) { return fixture.TitledClass() },
	"mapped-partial":  func() (*fixture.Host, *hostapi.SourceFile) { return fixture.MappedPartial() },
	"conditional":     func() (*fixture.Host, *hostapi.SourceFile) { return fixture.ConditionalInfer() },
	"known-classes":   func() (*fixture.Host, *hostapi.SourceFile) { return fixture.KnownClassesClass() },
	"merged-interface": func() (*fixture.Host, *hostapi.SourceFile) { return fixture.ClassMerging() },
	"cross-file": func() (*fixture.Host, *hostapi.SourceFile) {
		host, _, consumer := fixture.CrossFileReference()
		return host, consumer
	},
	"re-exported": func() (*fixture.Host, *hostapi.SourceFile) { return fixture.ReExportedReference() },
}

var demoCmd = &cobra.Command{
	Use:   "demo [scenario]",
	Short: "Compile a built-in fixture scenario and print its wire payload",
	Long: `demo walks one of the fixture scenarios in pkg/hostapi/fixture and
prints the resulting program: its stack sidecar, its disassembly, and its
encoded wire string.

Run without arguments to list the available scenario names.

Examples:
  typegen demo mapped-partial
  typegen demo cross-file`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(_ *cobra.Command, args []string) error {
	if len(args) == 0 {
		names := make([]string, 0, len(scenarios))
		for name := range scenarios {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Println("available scenarios:")
		for _, name := range names {
			fmt.Printf("  %s\n", name)
		}
		return nil
	}

	build, ok := scenarios[args[0]]
	if !ok {
		return fmt.Errorf("unknown scenario %q (run without arguments to list scenarios)", args[0])
	}

	host, sf := build()
	decl := lastDeclaration(sf)
	if decl == nil {
		return fmt.Errorf("scenario %q has no top-level declaration to walk", args[0])
	}

	prog := program.New()
	resolver := resolve.New(host, host)
	walker := typewalk.New(prog, resolver, sf.FileName)
	walker.WalkDeclarationBody(decl)

	printProgram(sf.FileName, prog)
	return nil
}

func lastDeclaration(sf *hostapi.SourceFile) hostapi.Declaration {
	for i := len(sf.Statements) - 1; i >= 0; i-- {
		if decl, ok := sf.Statements[i].(hostapi.Declaration); ok {
			return decl
		}
	}
	return nil
}

func printProgram(name string, prog *program.Program) {
	prog.Finalize()
	fmt.Printf("== %s ==\n", name)
	for i, entry := range prog.Pack.Stack {
		fmt.Printf("stack[%d] = %s %q\n", i, entry.Kind, entry.Text)
	}
	fmt.Println()
	pack.NewDisassembler(prog.Pack, os.Stdout).Disassemble()
	fmt.Println()
	fmt.Printf("wire: %s\n", prog.Pack.Encode())
}
