package rewrite

import (
	"testing"

	"typegen/internal/opcode"
	"typegen/internal/pack"
	"typegen/internal/program"
	"typegen/internal/reflectmode"
	"typegen/internal/resolve"
	"typegen/pkg/hostapi"
	"typegen/pkg/hostapi/fixture"
)

type noFiles struct{}

func (noFiles) ReadFile(string) ([]byte, bool) { return nil, false }

func newRewriter(host *fixture.Host, mode reflectmode.Mode) *Rewriter {
	probe := reflectmode.New(noFiles{}).WithOverride(mode)
	resolver := resolve.New(host, host)
	return New(resolver, probe)
}

func instOps(payload Payload) []opcode.Code {
	instructions, err := pack.Decode(payload.Code)
	if err != nil {
		panic(err)
	}
	out := make([]opcode.Code, len(instructions))
	for i, inst := range instructions {
		out[i] = inst.Op
	}
	return out
}

func TestTransformSourceFileRewritesClass(t *testing.T) {
	host := fixture.NewHost()
	class := &hostapi.ClassDecl{
		Name: "Widget",
		Members: []hostapi.Member{
			&hostapi.Property{Name: "title", Type: &hostapi.KeywordType{Keyword: hostapi.KeywordString}},
		},
	}
	sf := &hostapi.SourceFile{FileName: "widget.ts", Statements: []hostapi.Node{class}}

	r := newRewriter(host, reflectmode.Default)
	res, err := r.TransformSourceFile(sf)
	if err != nil {
		t.Fatalf("TransformSourceFile error: %v", err)
	}
	if len(res.Classes) != 1 {
		t.Fatalf("Classes = %d, want 1", len(res.Classes))
	}
	if res.Classes[0].Class != class {
		t.Error("ClassAttachment.Class should be the original class node")
	}
	got := instOps(res.Classes[0].Payload)
	want := []opcode.Code{opcode.String, opcode.Property, opcode.Class}
	if len(got) != len(want) {
		t.Fatalf("payload ops = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("payload op %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTransformSourceFileSkipsNeverMode(t *testing.T) {
	host := fixture.NewHost()
	class := &hostapi.ClassDecl{Name: "Widget"}
	sf := &hostapi.SourceFile{FileName: "widget.ts", Statements: []hostapi.Node{class}}

	r := newRewriter(host, reflectmode.Never)
	res, err := r.TransformSourceFile(sf)
	if err != nil {
		t.Fatalf("TransformSourceFile error: %v", err)
	}
	if len(res.Classes) != 0 {
		t.Fatalf("Classes = %d, want 0 when reflection mode is Never", len(res.Classes))
	}
}

func TestTransformSourceFileRewritesFunctionDecl(t *testing.T) {
	host := fixture.NewHost()
	fn := &hostapi.FunctionDecl{
		Name:       "identity",
		Parameters: []*hostapi.Parameter{{Name: "x", Type: &hostapi.KeywordType{Keyword: hostapi.KeywordString}}},
		ReturnType: &hostapi.KeywordType{Keyword: hostapi.KeywordString},
	}
	sf := &hostapi.SourceFile{FileName: "fn.ts", Statements: []hostapi.Node{fn}}

	r := newRewriter(host, reflectmode.Default)
	res, err := r.TransformSourceFile(sf)
	if err != nil {
		t.Fatalf("TransformSourceFile error: %v", err)
	}
	if len(res.Functions) != 1 {
		t.Fatalf("Functions = %d, want 1", len(res.Functions))
	}
	if res.Functions[0].Function != fn {
		t.Error("FunctionAttachment.Function should be the original node")
	}
}

func TestTransformSourceFileRewritesArrow(t *testing.T) {
	host := fixture.NewHost()
	fe := &hostapi.FunctionExpression{
		IsArrow:    true,
		Parameters: []*hostapi.Parameter{{Name: "x", Type: &hostapi.KeywordType{Keyword: hostapi.KeywordNumber}}},
		ReturnType: &hostapi.KeywordType{Keyword: hostapi.KeywordNumber},
	}
	sf := &hostapi.SourceFile{FileName: "arrow.ts", Statements: []hostapi.Node{fe}}

	r := newRewriter(host, reflectmode.Default)
	res, err := r.TransformSourceFile(sf)
	if err != nil {
		t.Fatalf("TransformSourceFile error: %v", err)
	}
	if len(res.Arrows) != 1 {
		t.Fatalf("Arrows = %d, want 1", len(res.Arrows))
	}
}

func TestTransformSourceFileRewritesAutoTypeHelperCall(t *testing.T) {
	host := fixture.NewHost()
	call := &hostapi.CallExpression{
		CalleeName:    "typeOf",
		TypeArguments: []hostapi.TypeNode{&hostapi.KeywordType{Keyword: hostapi.KeywordString}},
	}
	sf := &hostapi.SourceFile{FileName: "call.ts", Statements: []hostapi.Node{call}}

	r := newRewriter(host, reflectmode.Default)
	res, err := r.TransformSourceFile(sf)
	if err != nil {
		t.Fatalf("TransformSourceFile error: %v", err)
	}
	if len(res.Calls) != 1 {
		t.Fatalf("Calls = %d, want 1", len(res.Calls))
	}
	payload, ok := res.Calls[0].InjectedArgs[0]
	if !ok {
		t.Fatal("expected an injected argument at index 0")
	}
	got := instOps(payload)
	if len(got) != 1 || got[0] != opcode.String {
		t.Errorf("injected payload ops = %v, want [string]", got)
	}
}

func TestTransformSourceFileSkipsAutoTypeHelperWithNoTypeArguments(t *testing.T) {
	host := fixture.NewHost()
	call := &hostapi.CallExpression{CalleeName: "typeOf"}
	sf := &hostapi.SourceFile{FileName: "call.ts", Statements: []hostapi.Node{call}}

	r := newRewriter(host, reflectmode.Default)
	res, err := r.TransformSourceFile(sf)
	if err != nil {
		t.Fatalf("TransformSourceFile error: %v", err)
	}
	if len(res.Calls) != 0 {
		t.Fatalf("Calls = %d, want 0 for a typeOf() call with no type arguments", len(res.Calls))
	}
}

func TestTransformSourceFileInjectsReceiveTypeParameter(t *testing.T) {
	host := fixture.NewHost()

	fn := &hostapi.FunctionDecl{
		Name:           "f",
		TypeParameters: []*hostapi.TypeParameter{{Name: "T"}},
		Parameters: []*hostapi.Parameter{
			{Name: "x", Type: &hostapi.TypeReference{
				Name:          "ReceiveType",
				TypeArguments: []hostapi.TypeNode{&hostapi.TypeReference{Name: "T"}},
			}},
		},
	}

	call := &hostapi.CallExpression{
		CalleeName:    "f",
		TypeArguments: []hostapi.TypeNode{&hostapi.KeywordType{Keyword: hostapi.KeywordString}},
	}
	host.Bind(call, fixture.Symbol("f", fn))

	sf := &hostapi.SourceFile{FileName: "call.ts", Statements: []hostapi.Node{fn, call}}

	r := newRewriter(host, reflectmode.Default)
	res, err := r.TransformSourceFile(sf)
	if err != nil {
		t.Fatalf("TransformSourceFile error: %v", err)
	}
	if len(res.Calls) != 1 {
		t.Fatalf("Calls = %d, want 1", len(res.Calls))
	}
	payload, ok := res.Calls[0].InjectedArgs[0]
	if !ok {
		t.Fatal("expected the ReceiveType parameter to receive an injected argument at index 0")
	}
	got := instOps(payload)
	if len(got) != 1 || got[0] != opcode.String {
		t.Errorf("injected payload ops = %v, want [string]", got)
	}
}

func TestTransformSourceFileDrainsHoistedAlias(t *testing.T) {
	host := fixture.NewHost()

	alias := &hostapi.TypeAliasDecl{Name: "Id", Type: &hostapi.KeywordType{Keyword: hostapi.KeywordString}}
	ref := &hostapi.TypeReference{Name: "Id"}
	host.Bind(ref, fixture.Symbol("Id", alias))

	class := &hostapi.ClassDecl{
		Name: "Widget",
		Members: []hostapi.Member{
			&hostapi.Property{Name: "id", Type: ref},
		},
	}
	sf := &hostapi.SourceFile{FileName: "widget.ts", Statements: []hostapi.Node{class}}

	r := newRewriter(host, reflectmode.Default)
	res, err := r.TransformSourceFile(sf)
	if err != nil {
		t.Fatalf("TransformSourceFile error: %v", err)
	}
	if len(res.Hoisted) != 1 {
		t.Fatalf("Hoisted = %d, want 1", len(res.Hoisted))
	}
	if res.Hoisted[0].Name != "__ΩId" {
		t.Errorf("Hoisted[0].Name = %q, want __ΩId", res.Hoisted[0].Name)
	}
	got := instOps(res.Hoisted[0].Payload)
	if len(got) != 1 || got[0] != opcode.String {
		t.Errorf("hoisted payload ops = %v, want [string]", got)
	}
}

func TestTransformSourceFileDedupesSharedHoistAcrossCarriers(t *testing.T) {
	host := fixture.NewHost()

	alias := &hostapi.TypeAliasDecl{Name: "Id", Type: &hostapi.KeywordType{Keyword: hostapi.KeywordString}}
	refA := &hostapi.TypeReference{Name: "Id"}
	refB := &hostapi.TypeReference{Name: "Id"}
	sym := fixture.Symbol("Id", alias)
	host.Bind(refA, sym).Bind(refB, sym)

	classA := &hostapi.ClassDecl{Name: "A", Members: []hostapi.Member{&hostapi.Property{Name: "id", Type: refA}}}
	classB := &hostapi.ClassDecl{Name: "B", Members: []hostapi.Member{&hostapi.Property{Name: "id", Type: refB}}}
	sf := &hostapi.SourceFile{FileName: "both.ts", Statements: []hostapi.Node{classA, classB}}

	r := newRewriter(host, reflectmode.Default)
	res, err := r.TransformSourceFile(sf)
	if err != nil {
		t.Fatalf("TransformSourceFile error: %v", err)
	}
	if len(res.Hoisted) != 1 {
		t.Fatalf("Hoisted = %d, want exactly 1 (shared across both carriers)", len(res.Hoisted))
	}
}

func TestDrainHoistsReportsMissingDeclaration(t *testing.T) {
	host := fixture.NewHost()
	r := newRewriter(host, reflectmode.Default)

	hoistProg := program.New()
	hoistProg.RequestHoist("ghost.ts#Ghost", "Ghost", nil, program.HoistCompileLocal)

	sf := &hostapi.SourceFile{FileName: "ghost.ts"}
	res := &Result{}
	if err := r.drainHoists(sf, hoistProg, res); err != nil {
		t.Fatalf("drainHoists error: %v", err)
	}
	if len(res.Hoisted) != 0 {
		t.Fatalf("Hoisted = %d, want 0 when the request carries no declaration", len(res.Hoisted))
	}
	if r.Diags.Empty() {
		t.Fatal("expected a diagnostic for the missing declaration")
	}
}

func TestTransformBundlePassesThroughEachFile(t *testing.T) {
	host := fixture.NewHost()
	classA := &hostapi.ClassDecl{Name: "A"}
	classB := &hostapi.ClassDecl{Name: "B"}
	files := []*hostapi.SourceFile{
		{FileName: "a.ts", Statements: []hostapi.Node{classA}},
		{FileName: "b.ts", Statements: []hostapi.Node{classB}},
	}

	r := newRewriter(host, reflectmode.Default)
	results, err := r.TransformBundle(files)
	if err != nil {
		t.Fatalf("TransformBundle error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("TransformBundle results = %d, want 2", len(results))
	}
	if len(results[0].Classes) != 1 || results[0].Classes[0].Class != classA {
		t.Errorf("results[0] = %+v, want a.ts's class A", results[0])
	}
	if len(results[1].Classes) != 1 || results[1].Classes[0].Class != classB {
		t.Errorf("results[1] = %+v, want b.ts's class B", results[1])
	}
}
