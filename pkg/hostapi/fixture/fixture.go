// Package fixture is an in-memory stand-in for a host compiler: it builds
// hostapi.SourceFile trees as literal Go values (no lexer or parser
// involved, the same way internal/ast's teacher tests build trees directly)
// and answers hostapi.Checker / hostapi.ModuleGraph queries from explicit
// bindings registered alongside the tree. It exists purely so this
// repository's own tests and its `typegen demo` CLI command have something
// concrete to transform.
package fixture

import "typegen/pkg/hostapi"

type symbol struct {
	name  string
	decls []hostapi.Declaration
}

func (s *symbol) Name() string                      { return s.name }
func (s *symbol) Declarations() []hostapi.Declaration { return s.decls }

// Symbol builds a hostapi.Symbol whose first declaration is decls[0], per
// the resolver contract in spec §4.4.
func Symbol(name string, decls ...hostapi.Declaration) hostapi.Symbol {
	return &symbol{name: name, decls: decls}
}

// Host is a fixture implementation of hostapi.Checker and hostapi.ModuleGraph.
type Host struct {
	files    map[string]*hostapi.SourceFile
	bindings map[hostapi.Node]hostapi.Symbol
	bridge   map[hostapi.Symbol]hostapi.Declaration
}

// NewHost creates an empty fixture host.
func NewHost() *Host {
	return &Host{
		files:    map[string]*hostapi.SourceFile{},
		bindings: map[hostapi.Node]hostapi.Symbol{},
		bridge:   map[hostapi.Symbol]hostapi.Declaration{},
	}
}

// AddFile registers a source file so ResolveModule can find it by name.
func (h *Host) AddFile(sf *hostapi.SourceFile) *Host {
	h.files[sf.FileName] = sf
	return h
}

// Bind records the symbol a name-bearing node (typically a *hostapi.TypeReference)
// resolves to.
func (h *Host) Bind(node hostapi.Node, sym hostapi.Symbol) *Host {
	h.bindings[node] = sym
	return h
}

// BridgeImport records that the checker can bridge straight from an import
// symbol to its imported declaration, short-circuiting the manual module
// graph walk in internal/resolve.
func (h *Host) BridgeImport(sym hostapi.Symbol, decl hostapi.Declaration) *Host {
	h.bridge[sym] = decl
	return h
}

// SymbolAtLocation implements hostapi.Checker.
func (h *Host) SymbolAtLocation(node hostapi.Node) (hostapi.Symbol, bool) {
	sym, ok := h.bindings[node]
	return sym, ok
}

// TypeDeclarationOfSymbol implements hostapi.Checker.
func (h *Host) TypeDeclarationOfSymbol(sym hostapi.Symbol) (hostapi.Declaration, bool) {
	d, ok := h.bridge[sym]
	return d, ok
}

// ResolveModule implements hostapi.ModuleGraph. Fixture modules are resolved
// by the specifier being exactly the target file's name, which is enough to
// exercise the resolver's re-export-walking logic without real module
// resolution I/O (explicitly out of scope per spec §1).
func (h *Host) ResolveModule(fromFile string, specifier string) (*hostapi.SourceFile, bool) {
	sf, ok := h.files[specifier]
	return sf, ok
}

// File returns a previously-added source file by name, for test convenience.
func (h *Host) File(name string) *hostapi.SourceFile {
	return h.files[name]
}
