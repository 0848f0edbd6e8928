// Package resolve implements the declaration resolver: given a name
// occurrence (a TypeReference, or a call expression's callee), find the
// hostapi.Declaration it refers to, bridging through import bindings and,
// when the checker can't bridge one itself, walking the module graph's
// named and star re-exports transitively.
package resolve

import (
	"fmt"

	"github.com/dolthub/swiss"

	"typegen/pkg/hostapi"
)

// cacheKey identifies a resolved name within one file, so a symbol
// referenced from many carriers in the same file is only resolved once.
type cacheKey struct {
	file string
	name string
}

// Resolver resolves name occurrences to declarations using a host Checker
// for symbol binding and a ModuleGraph for the cross-file walk the checker
// can't do on its own.
type Resolver struct {
	checker hostapi.Checker
	graph   hostapi.ModuleGraph
	cache   *swiss.Map[cacheKey, hostapi.Declaration]
}

// New creates a Resolver backed by checker and graph.
func New(checker hostapi.Checker, graph hostapi.ModuleGraph) *Resolver {
	return &Resolver{
		checker: checker,
		graph:   graph,
		cache:   swiss.NewMap[cacheKey, hostapi.Declaration](64),
	}
}

// Resolve finds the declaration a name-bearing node (a TypeReference or a
// CallExpression callee) resolves to, from the perspective of fromFile.
func (r *Resolver) Resolve(fromFile string, node hostapi.Node) (hostapi.Declaration, error) {
	sym, ok := r.checker.SymbolAtLocation(node)
	if !ok {
		return nil, fmt.Errorf("resolve: no symbol at %s", node.String())
	}

	key := cacheKey{file: fromFile, name: sym.Name()}
	if cached, ok := r.cache.Get(key); ok {
		return cached, nil
	}

	decl, err := r.resolveSymbol(fromFile, sym)
	if err != nil {
		return nil, err
	}
	r.cache.Put(key, decl)
	return decl, nil
}

// resolveSymbol walks a symbol's declaration list, per spec always starting
// from Declarations()[0], bridging through an ImportSpecifier if that's what
// the first declaration is.
func (r *Resolver) resolveSymbol(fromFile string, sym hostapi.Symbol) (hostapi.Declaration, error) {
	decls := sym.Declarations()
	if len(decls) == 0 {
		return nil, fmt.Errorf("resolve: symbol %q has no declarations", sym.Name())
	}

	first := decls[0]
	imp, isImport := first.(*hostapi.ImportSpecifier)
	if !isImport {
		return first, nil
	}

	if bridged, ok := r.checker.TypeDeclarationOfSymbol(sym); ok {
		return bridged, nil
	}

	return r.walkModuleGraph(fromFile, imp.ModuleSpecifier, imp.ImportedName, map[string]bool{})
}

// walkModuleGraph follows specifier from fromFile looking for name, either
// as a direct declaration in the target file or transitively through its
// named and star re-exports. visited guards against re-export cycles.
func (r *Resolver) walkModuleGraph(fromFile, specifier, name string, visited map[string]bool) (hostapi.Declaration, error) {
	visitKey := specifier + "#" + name
	if visited[visitKey] {
		return nil, fmt.Errorf("resolve: re-export cycle resolving %q from %q", name, specifier)
	}
	visited[visitKey] = true

	target, ok := r.graph.ResolveModule(fromFile, specifier)
	if !ok {
		return nil, fmt.Errorf("resolve: cannot resolve module %q from %q", specifier, fromFile)
	}

	if decl, ok := declaredName(target, name); ok {
		return decl, nil
	}

	for _, re := range target.NamedReExports {
		for _, spec := range re.Specifiers {
			if spec.ExportedName == name {
				return r.walkModuleGraph(target.FileName, re.ModuleSpecifier, spec.PropertyName, visited)
			}
		}
	}

	for _, star := range target.StarReExports {
		if decl, err := r.walkModuleGraph(target.FileName, star.ModuleSpecifier, name, visited); err == nil {
			return decl, nil
		}
	}

	return nil, fmt.Errorf("resolve: %q not found in %q (reachable from %q)", name, specifier, fromFile)
}

// declaredName looks for name among a source file's own top-level
// declarations.
func declaredName(sf *hostapi.SourceFile, name string) (hostapi.Declaration, bool) {
	for _, stmt := range sf.Statements {
		decl, ok := stmt.(hostapi.Declaration)
		if !ok {
			continue
		}
		if declName(decl) == name {
			return decl, true
		}
	}
	return nil, false
}

func declName(decl hostapi.Declaration) string {
	switch d := decl.(type) {
	case *hostapi.ClassDecl:
		return d.Name
	case *hostapi.InterfaceDecl:
		return d.Name
	case *hostapi.TypeAliasDecl:
		return d.Name
	case *hostapi.EnumDecl:
		return d.Name
	case *hostapi.FunctionDecl:
		return d.Name
	case *hostapi.ImportSpecifier:
		return d.LocalName
	default:
		return ""
	}
}
