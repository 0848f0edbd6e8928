package typewalk_test

import (
	"testing"

	"typegen/internal/opcode"
	"typegen/pkg/hostapi"
	"typegen/pkg/hostapi/fixture"
)

func TestWalkClassEmitsMembersOnceEach(t *testing.T) {
	w := newWalker(fixture.NewHost(), "a.ts")
	class := &hostapi.ClassDecl{
		Name: "Widget",
		Members: []hostapi.Member{
			&hostapi.Property{Name: "width", Type: &hostapi.KeywordType{Keyword: hostapi.KeywordNumber}},
			&hostapi.Property{Name: "width", Type: &hostapi.KeywordType{Keyword: hostapi.KeywordString}}, // dup, should be skipped
		},
	}
	w.WalkClass(class)

	assertOps(t, w.Prog, opcode.Number, opcode.Property, opcode.Class)
}

func TestWalkClassOpensNoFrameWhenEmptyAndNonGeneric(t *testing.T) {
	w := newWalker(fixture.NewHost(), "a.ts")
	w.WalkClass(&hostapi.ClassDecl{Name: "Widget"})
	assertOps(t, w.Prog, opcode.Class)
}

func TestWalkClassWithTypeParametersOpensFrame(t *testing.T) {
	w := newWalker(fixture.NewHost(), "a.ts")
	class := &hostapi.ClassDecl{
		Name:           "Box",
		TypeParameters: []*hostapi.TypeParameter{{Name: "T"}},
	}
	w.WalkClass(class)
	assertOps(t, w.Prog, opcode.Frame, opcode.Template, opcode.Class)
}

func TestWalkPropertyWithModifiersAndDefault(t *testing.T) {
	w := newWalker(fixture.NewHost(), "a.ts")
	prop := &hostapi.Property{
		Name: "count",
		Type: &hostapi.KeywordType{Keyword: hostapi.KeywordNumber},
		Initializer: &hostapi.LiteralType{Kind: hostapi.LiteralNumber, Text: "0"},
		Doc:         "running total",
		Modifiers:   hostapi.Modifiers{Readonly: true, Private: true},
	}
	class := &hostapi.ClassDecl{Name: "Counter", Members: []hostapi.Member{prop}}
	w.WalkClass(class)

	assertOps(t, w.Prog,
		opcode.Number, opcode.Property, opcode.Readonly, opcode.Private,
		opcode.DefaultValue, opcode.Description, opcode.Class,
	)
}

func TestWalkInterfaceMergesExtendsMembers(t *testing.T) {
	host := fixture.NewHost()
	base := &hostapi.InterfaceDecl{
		Name: "Base",
		Members: []hostapi.Member{
			&hostapi.PropertySignature{Name: "id", Type: &hostapi.KeywordType{Keyword: hostapi.KeywordString}},
		},
	}
	parentRef := &hostapi.TypeReference{Name: "Base"}
	host.Bind(parentRef, fixture.Symbol("Base", base))

	derived := &hostapi.InterfaceDecl{
		Name:    "Derived",
		Extends: []*hostapi.TypeReference{parentRef},
		Members: []hostapi.Member{
			&hostapi.PropertySignature{Name: "name", Type: &hostapi.KeywordType{Keyword: hostapi.KeywordString}},
		},
	}

	w := newWalker(host, "a.ts")
	w.WalkInterface(derived)

	assertOps(t, w.Prog,
		opcode.Frame,
		opcode.String, opcode.PropertySignature, // Derived's own "name"
		opcode.String, opcode.PropertySignature, // merged-in Base's "id"
		opcode.ObjectLiteral,
	)
}

func TestWalkInterfaceDedupesMergedMemberNames(t *testing.T) {
	host := fixture.NewHost()
	base := &hostapi.InterfaceDecl{
		Name: "Base",
		Members: []hostapi.Member{
			&hostapi.PropertySignature{Name: "id", Type: &hostapi.KeywordType{Keyword: hostapi.KeywordString}},
		},
	}
	parentRef := &hostapi.TypeReference{Name: "Base"}
	host.Bind(parentRef, fixture.Symbol("Base", base))

	derived := &hostapi.InterfaceDecl{
		Name:    "Derived",
		Extends: []*hostapi.TypeReference{parentRef},
		Members: []hostapi.Member{
			// Same name as Base's "id" — derived's own wins, Base's copy is skipped.
			&hostapi.PropertySignature{Name: "id", Type: &hostapi.KeywordType{Keyword: hostapi.KeywordNumber}},
		},
	}

	w := newWalker(host, "a.ts")
	w.WalkInterface(derived)

	assertOps(t, w.Prog, opcode.Frame, opcode.Number, opcode.PropertySignature, opcode.ObjectLiteral)
}

func TestWalkIndexSignature(t *testing.T) {
	w := newWalker(fixture.NewHost(), "a.ts")
	iface := &hostapi.InterfaceDecl{
		Members: []hostapi.Member{
			&hostapi.IndexSignature{
				KeyType:   &hostapi.KeywordType{Keyword: hostapi.KeywordString},
				ValueType: &hostapi.KeywordType{Keyword: hostapi.KeywordAny},
			},
		},
	}
	w.WalkInterface(iface)
	assertOps(t, w.Prog, opcode.Frame, opcode.String, opcode.Any, opcode.IndexSignature, opcode.ObjectLiteral)
}

func TestWalkMethodEmitsConstructorName(t *testing.T) {
	w := newWalker(fixture.NewHost(), "a.ts")
	class := &hostapi.ClassDecl{
		Name: "Widget",
		Members: []hostapi.Member{
			&hostapi.Method{IsConstructor: true, ReturnType: &hostapi.KeywordType{Keyword: hostapi.KeywordVoid}},
		},
	}
	w.WalkClass(class)
	assertOps(t, w.Prog, opcode.Void, opcode.Method, opcode.Class)

	if len(w.Prog.Pack.Stack) != 1 || w.Prog.Pack.Stack[0].Text != "constructor" {
		t.Errorf("stack = %+v, want a single entry named constructor", w.Prog.Pack.Stack)
	}
}
