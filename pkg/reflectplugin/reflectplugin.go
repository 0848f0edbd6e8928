// Package reflectplugin is the public facade over this repository: a
// transformer a build pipeline calls once per source file (or once per
// bundle) to attach runtime type payloads to its reflection carriers.
//
// It is configured the way the teacher compiler configures a Compiler —
// a functional-options constructor (compare `bytecode.NewCompiler(chunkName
// string, opts ...CompilerOption)`) — rather than a struct literal, so
// callers can add new options later without breaking existing call sites.
package reflectplugin

import (
	"typegen/internal/diagnostic"
	"typegen/internal/reflectmode"
	"typegen/internal/resolve"
	"typegen/internal/rewrite"
	"typegen/pkg/hostapi"
)

// Option configures a new Transformer.
type Option func(*Transformer)

// WithReflectionMode sets the reflection mode for every carrier without an
// `@reflection` doc tag, in every file this Transformer processes. A doc tag
// still takes precedence; project configuration is not consulted while the
// override is set (spec §4.8's override tier).
func WithReflectionMode(mode reflectmode.Mode) Option {
	return func(t *Transformer) {
		t.override = &mode
	}
}

// WithFileSystem supplies the filesystem the Configuration Probe reads
// project configuration files through. Defaults to an empty stub that
// reports every path as absent, which resolves every node to `never` in the
// absence of a doc-tag or override — callers embedding this plug-in in a
// real build should always supply one.
func WithFileSystem(fs reflectmode.FileSystem) Option {
	return func(t *Transformer) {
		t.fs = fs
	}
}

type noFileSystem struct{}

func (noFileSystem) ReadFile(string) ([]byte, bool) { return nil, false }

// Transformer is the plug-in entrypoint. It wraps a rewrite.Rewriter bound
// to the host compiler's Checker and ModuleGraph, constructed once and
// reused across every file in a compilation.
type Transformer struct {
	probe    *reflectmode.Probe
	fs       reflectmode.FileSystem
	override *reflectmode.Mode
	rewriter *rewrite.Rewriter
}

// New builds a Transformer bound to the host's Checker (for symbol/type
// resolution) and ModuleGraph (for cross-file import/re-export walking).
func New(checker hostapi.Checker, graph hostapi.ModuleGraph, opts ...Option) *Transformer {
	t := &Transformer{fs: noFileSystem{}}
	for _, opt := range opts {
		opt(t)
	}
	t.probe = reflectmode.New(t.fs)
	if t.override != nil {
		t.probe = t.probe.WithOverride(*t.override)
	}
	resolver := resolve.New(checker, graph)
	t.rewriter = rewrite.New(resolver, t.probe)
	return t
}

// TransformSourceFile rewrites one file's reflection carriers, returning the
// set of attachments, hoisted bindings, and call-site rewrites the host's
// printer should apply.
func (t *Transformer) TransformSourceFile(sf *hostapi.SourceFile) (*rewrite.Result, error) {
	return t.rewriter.TransformSourceFile(sf)
}

// TransformBundle runs TransformSourceFile over every file in files, in
// order. Files in a bundle share this Transformer's resolver cache, whose
// entries are keyed by the referencing file and name, so a declaration
// referenced from several files is resolved once per file.
func (t *Transformer) TransformBundle(files []*hostapi.SourceFile) ([]*rewrite.Result, error) {
	return t.rewriter.TransformBundle(files)
}

// Warnings returns the non-fatal configuration warnings collected by the
// Configuration Probe across every file processed so far (spec §7,
// malformed project configuration never aborts a build).
func (t *Transformer) Warnings() []string {
	return t.probe.Warnings()
}

// Diagnostics returns the non-fatal diagnostics (hoist requests that carry
// no declaration) collected across every file processed so far. A reference
// that fails to resolve is emitted as `any` and raises no diagnostic.
func (t *Transformer) Diagnostics() []*diagnostic.Diagnostic {
	return t.rewriter.Diags.All()
}
