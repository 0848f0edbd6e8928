// Package hostapi defines the narrow interface this repository consumes from
// the host compiler: the AST node shapes produced by its parser and the
// symbol/type lookups served by its checker. The host compiler itself —
// its lexer, parser, and type-checking passes — is an external collaborator
// and is never reimplemented here; hostapi only describes the contract.
//
// pkg/hostapi/fixture provides an in-memory implementation used by this
// repository's own tests and by the `typegen demo` CLI command, built the
// same way a hand-written AST fixture is built: as literal node values, with
// no parser involved.
package hostapi

// Position locates a node in its originating source file.
type Position struct {
	Line   int
	Column int
	Offset int
}

// Node is the base contract every AST node satisfies.
type Node interface {
	Pos() Position
	String() string
}

// Commented is satisfied by declarations that can carry a doc comment. The
// Configuration Probe (internal/reflectmode) inspects the raw comment text
// for an `@reflection <mode>` tag.
type Commented interface {
	DocComment() string
}

// Symbol identifies a named binding at a particular point in the host's
// symbol table. It is the unit the Checker resolves identifiers to.
type Symbol interface {
	Name() string
	// Declarations returns the symbol's declaration sites, in the order the
	// host checker reports them. The declaration resolver (internal/resolve)
	// always starts from Declarations()[0], per spec.
	Declarations() []Declaration
}

// Checker is the narrow slice of the host compiler's type-checker this
// repository relies on: resolving an identifier-bearing node to its symbol,
// and bridging from an import binding to the thing it imports.
type Checker interface {
	// SymbolAtLocation resolves the symbol referenced by a name-bearing node
	// (an Identifier or a qualified TypeReference name).
	SymbolAtLocation(node Node) (Symbol, bool)

	// TypeDeclarationOfSymbol asks the checker for the declared type of a
	// symbol and returns its first declaration. Used when a symbol's own
	// first declaration is an ImportSpecifier: the checker is asked to
	// bridge straight to the imported declaration without a manual module
	// graph walk, when it's able to.
	TypeDeclarationOfSymbol(sym Symbol) (Declaration, bool)
}

// ModuleGraph lets the declaration resolver manually follow a module
// specifier when the Checker cannot bridge an import binding on its own:
// opening the referenced module, searching its local name table, and
// following re-exports transitively.
type ModuleGraph interface {
	// ResolveModule finds the SourceFile a module specifier refers to, from
	// the perspective of fromFile.
	ResolveModule(fromFile string, specifier string) (*SourceFile, bool)
}
