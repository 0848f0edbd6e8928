package typewalk

import (
	"typegen/internal/opcode"
	"typegen/pkg/hostapi"
)

// WalkClass implements the class/class-expression emission rule of §4.5:
// open a frame if the program already has content or the class has type
// parameters, emit a `template` op per
// type parameter, emit every member exactly once (first declaration wins on
// a name collision), `class`, then close the frame.
func (w *Walker) WalkClass(c *hostapi.ClassDecl) {
	opened := w.Prog.Len() > 0 || len(c.TypeParameters) > 0
	if opened {
		w.Prog.PushFrame()
		w.emit(opcode.Frame)
	}

	for _, tp := range c.TypeParameters {
		idx := w.pushName(tp.Name)
		w.Prog.Declare(tp.Name)
		w.emit(opcode.Template, idx)
	}

	seen := map[string]bool{}
	for _, m := range c.Members {
		if seen[m.MemberName()] {
			continue
		}
		seen[m.MemberName()] = true
		w.walkMember(m)
	}

	w.emit(opcode.Class)
	if opened {
		w.Prog.PopFrame()
	}
}

// WalkInterface implements the interface/type-literal emission rule: emit
// own members, then for each `extends` clause that resolves to another
// interface, recursively pull in its members (skipping names already
// emitted, the merge-dedup invariant of spec §8 property 7).
func (w *Walker) WalkInterface(i *hostapi.InterfaceDecl) {
	w.Prog.PushFrame()
	w.emit(opcode.Frame)

	for _, tp := range i.TypeParameters {
		idx := w.pushName(tp.Name)
		w.Prog.Declare(tp.Name)
		w.emit(opcode.Template, idx)
	}

	seen := map[string]bool{}
	w.emitInterfaceMembers(i, seen)

	w.emit(opcode.ObjectLiteral)
	w.Prog.PopFrame()
}

func (w *Walker) emitInterfaceMembers(i *hostapi.InterfaceDecl, seen map[string]bool) {
	for _, m := range i.Members {
		if seen[m.MemberName()] {
			continue
		}
		seen[m.MemberName()] = true
		w.walkMember(m)
	}

	for _, parentRef := range i.Extends {
		decl, err := w.Resolver.Resolve(w.File, parentRef)
		if err != nil {
			continue
		}
		parent, ok := decl.(*hostapi.InterfaceDecl)
		if !ok {
			continue
		}
		w.emitInterfaceMembers(parent, seen)
	}
}

// walkObjectLiteral implements the inline object-type-literal form (an
// object type used directly, not via a named interface): identical member
// handling to WalkInterface's own-member pass, with no extends clause to
// merge.
func (w *Walker) walkObjectLiteral(members []hostapi.Member, _ []*hostapi.TypeReference) {
	w.Prog.PushFrame()
	w.emit(opcode.Frame)

	seen := map[string]bool{}
	for _, m := range members {
		if seen[m.MemberName()] {
			continue
		}
		seen[m.MemberName()] = true
		w.walkMember(m)
	}

	w.emit(opcode.ObjectLiteral)
	w.Prog.PopFrame()
}

// walkMember dispatches a single member to its emission rule.
func (w *Walker) walkMember(m hostapi.Member) {
	switch mm := m.(type) {
	case *hostapi.Property:
		w.walkProperty(mm.Type, mm.Name, mm.Initializer, mm.Doc, mm.Modifiers, opcode.Property)
	case *hostapi.PropertySignature:
		mods := hostapi.Modifiers{Optional: mm.Optional, Readonly: mm.Readonly}
		w.walkProperty(mm.Type, mm.Name, nil, mm.Doc, mods, opcode.PropertySignature)
	case *hostapi.Method:
		w.walkFunctionLike(functionLike{
			typeParameters: mm.TypeParameters,
			parameters:     mm.Parameters,
			returnType:     mm.ReturnType,
			op:             opcode.Method,
			name:           mm.MemberName(),
			modifiers:      &mm.Modifiers,
		})
	case *hostapi.MethodSignature:
		mods := hostapi.Modifiers{Optional: mm.Optional}
		w.walkFunctionLike(functionLike{
			typeParameters: mm.TypeParameters,
			parameters:     mm.Parameters,
			returnType:     mm.ReturnType,
			op:             opcode.Method,
			name:           mm.Name,
			modifiers:      &mods,
		})
	case *hostapi.IndexSignature:
		w.WalkType(mm.KeyType)
		w.WalkType(mm.ValueType)
		w.emit(opcode.IndexSignature)
	}
}

// walkProperty implements the shared property/property-signature rule:
// emit the value type, the property op with its name index, then the
// trailing modifier train, an optional `defaultValue` thunk reference, and
// an optional `description` reference if a doc comment is present.
func (w *Walker) walkProperty(typ hostapi.TypeNode, name string, initializer hostapi.Node, doc string, mods hostapi.Modifiers, op opcode.Code) {
	w.WalkType(typ)
	nameIdx := w.pushName(name)
	w.emit(op, nameIdx)

	if mods.Optional {
		w.emit(opcode.Optional)
	}
	if mods.Readonly {
		w.emit(opcode.Readonly)
	}
	w.emitModifierTrain(hostapi.Modifiers{Private: mods.Private, Protected: mods.Protected, Abstract: mods.Abstract})

	if initializer != nil {
		idx := w.pushThunk(initializer.String())
		w.emit(opcode.DefaultValue, idx)
	}
	if doc != "" {
		idx := w.pushName(doc)
		w.emit(opcode.Description, idx)
	}
}
