package reflectplugin_test

import (
	"testing"

	"typegen/internal/reflectmode"
	"typegen/pkg/hostapi"
	"typegen/pkg/hostapi/fixture"
	"typegen/pkg/reflectplugin"
)

func TestNewDefaultsToNeverWithNoFileSystemOrOverride(t *testing.T) {
	host := fixture.NewHost()
	class := &hostapi.ClassDecl{Name: "Widget"}
	sf := &hostapi.SourceFile{FileName: "widget.ts", Statements: []hostapi.Node{class}}

	tr := reflectplugin.New(host, host)
	res, err := tr.TransformSourceFile(sf)
	if err != nil {
		t.Fatalf("TransformSourceFile error: %v", err)
	}
	if len(res.Classes) != 0 {
		t.Fatalf("Classes = %d, want 0 under the default never mode", len(res.Classes))
	}
}

func TestWithReflectionModeOverridesEveryCarrier(t *testing.T) {
	host := fixture.NewHost()
	class := &hostapi.ClassDecl{Name: "Widget"}
	sf := &hostapi.SourceFile{FileName: "widget.ts", Statements: []hostapi.Node{class}}

	tr := reflectplugin.New(host, host, reflectplugin.WithReflectionMode(reflectmode.Default))
	res, err := tr.TransformSourceFile(sf)
	if err != nil {
		t.Fatalf("TransformSourceFile error: %v", err)
	}
	if len(res.Classes) != 1 {
		t.Fatalf("Classes = %d, want 1 under a Default override", len(res.Classes))
	}
}

type stubFS struct {
	files map[string][]byte
}

func (s stubFS) ReadFile(path string) ([]byte, bool) {
	data, ok := s.files[path]
	return data, ok
}

func TestWithFileSystemFeedsProjectConfig(t *testing.T) {
	host := fixture.NewHost()
	class := &hostapi.ClassDecl{Name: "Widget"}
	sf := &hostapi.SourceFile{FileName: "src/widget.ts", Statements: []hostapi.Node{class}}

	fs := stubFS{files: map[string][]byte{
		"src/typegen.yaml": []byte("reflection: always\n"),
	}}

	tr := reflectplugin.New(host, host, reflectplugin.WithFileSystem(fs))
	res, err := tr.TransformSourceFile(sf)
	if err != nil {
		t.Fatalf("TransformSourceFile error: %v", err)
	}
	if len(res.Classes) != 1 {
		t.Fatalf("Classes = %d, want 1 when the project config says always", len(res.Classes))
	}
}

func TestWarningsSurfaceMalformedProjectConfig(t *testing.T) {
	host := fixture.NewHost()
	class := &hostapi.ClassDecl{Name: "Widget"}
	sf := &hostapi.SourceFile{FileName: "src/widget.ts", Statements: []hostapi.Node{class}}

	fs := stubFS{files: map[string][]byte{
		"src/typegen.yaml": []byte(": this is not valid yaml: :::"),
	}}

	tr := reflectplugin.New(host, host, reflectplugin.WithFileSystem(fs))
	if _, err := tr.TransformSourceFile(sf); err != nil {
		t.Fatalf("TransformSourceFile error: %v", err)
	}
	if len(tr.Warnings()) == 0 {
		t.Fatal("expected a warning for the malformed project config")
	}
}

func TestDiagnosticsIsEmptyForUnresolvedReference(t *testing.T) {
	host := fixture.NewHost()

	ref := &hostapi.TypeReference{Name: "Id"}
	class := &hostapi.ClassDecl{
		Name:    "Widget",
		Members: []hostapi.Member{&hostapi.Property{Name: "id", Type: ref}},
	}
	sf := &hostapi.SourceFile{FileName: "widget.ts", Statements: []hostapi.Node{class}}

	tr := reflectplugin.New(host, host, reflectplugin.WithReflectionMode(reflectmode.Default))
	res, err := tr.TransformSourceFile(sf)
	if err != nil {
		t.Fatalf("TransformSourceFile error: %v", err)
	}
	// Unbound reference resolves to `any` with no hoist requested; no
	// diagnostics are raised for this specific scenario. Confirms
	// Diagnostics() reports an empty slice rather than panicking when a
	// reference fails to resolve.
	if len(res.Hoisted) != 0 {
		t.Fatalf("Hoisted = %d, want 0 for an unbound reference", len(res.Hoisted))
	}
	if len(tr.Diagnostics()) != 0 {
		t.Fatalf("Diagnostics = %d, want 0", len(tr.Diagnostics()))
	}
}

func TestTransformBundleHoistsIndependentlyPerFile(t *testing.T) {
	host := fixture.NewHost()

	alias := &hostapi.TypeAliasDecl{Name: "Id", Type: &hostapi.KeywordType{Keyword: hostapi.KeywordString}}
	refA := &hostapi.TypeReference{Name: "Id"}
	refB := &hostapi.TypeReference{Name: "Id"}
	sym := fixture.Symbol("Id", alias)
	host.Bind(refA, sym).Bind(refB, sym)

	classA := &hostapi.ClassDecl{Name: "A", Members: []hostapi.Member{&hostapi.Property{Name: "id", Type: refA}}}
	classB := &hostapi.ClassDecl{Name: "B", Members: []hostapi.Member{&hostapi.Property{Name: "id", Type: refB}}}
	files := []*hostapi.SourceFile{
		{FileName: "a.ts", Statements: []hostapi.Node{classA}},
		{FileName: "b.ts", Statements: []hostapi.Node{classB}},
	}

	tr := reflectplugin.New(host, host, reflectplugin.WithReflectionMode(reflectmode.Default))
	results, err := tr.TransformBundle(files)
	if err != nil {
		t.Fatalf("TransformBundle error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	// Each file's hoist queue is scoped to that file (a hoisted binding
	// lands in the file that references it), so both a.ts and b.ts produce
	// their own __ΩId binding even though they share one Transformer and
	// resolver cache.
	if len(results[0].Hoisted) != 1 {
		t.Fatalf("results[0].Hoisted = %d, want 1", len(results[0].Hoisted))
	}
	if len(results[1].Hoisted) != 1 {
		t.Fatalf("results[1].Hoisted = %d, want 1", len(results[1].Hoisted))
	}
}
