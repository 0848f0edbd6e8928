package typewalk

import (
	"typegen/internal/opcode"
	"typegen/pkg/hostapi"
)

// WalkDeclarationBody emits the program body for a declaration that has been
// enqueued for hoisting (a type alias or an interface) or that is itself a
// rewritten carrier (a class). It dispatches to the form-specific emission
// rule; anything else falls through to `any` as the walker's general
// default.
func (w *Walker) WalkDeclarationBody(decl hostapi.Declaration) {
	switch d := decl.(type) {
	case *hostapi.TypeAliasDecl:
		w.walkAliasBody(d)
	case *hostapi.InterfaceDecl:
		w.WalkInterface(d)
	case *hostapi.ClassDecl:
		w.WalkClass(d)
	default:
		w.WalkType(nil)
	}
}

// walkAliasBody binds a type alias's own type parameters before emitting its
// right-hand-side type. When the body is directly a mapped type (spec §8
// scenario 5, `type Partial<T> = { [P in keyof T]?: T[P] }`), the alias's
// template frame and the mapped type's own frame are the same frame: T is
// bound as a template, P is bound immediately after by the mapped type's
// own variable binding step, and only one `frame` op is ever emitted. For
// any other body shape, the alias's frame is opened and closed around a
// plain recursive walk, and the body is free to open further nested frames
// of its own (e.g. a conditional type's `infer` frame nests inside it).
func (w *Walker) walkAliasBody(d *hostapi.TypeAliasDecl) {
	if len(d.TypeParameters) == 0 {
		w.WalkType(d.Type)
		return
	}

	w.Prog.PushFrame()
	w.emit(opcode.Frame)
	for _, tp := range d.TypeParameters {
		idx := w.pushName(tp.Name)
		w.Prog.Declare(tp.Name)
		w.emit(opcode.Template, idx)
	}

	if mapped, ok := d.Type.(*hostapi.MappedType); ok {
		w.walkMappedBody(mapped)
	} else {
		w.WalkType(d.Type)
	}

	w.Prog.PopFrame()
}
