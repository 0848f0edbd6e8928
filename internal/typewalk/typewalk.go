// Package typewalk implements the recursive-descent type-to-bytecode
// compiler: the rules of spec §4.5/§4.6, lowering every supported type
// construct into opcodes written onto a program.Program's pack, resolving
// named type references through internal/resolve, and enqueuing referenced
// aliases/interfaces for hoisting rather than inlining them (breaking
// cycles). It is the analogue of the teacher compiler's
// compileExpression/compileStatement recursive descent, generalized from AST
// statements producing runtime values to AST type nodes producing a
// reflection-bytecode program.
package typewalk

import (
	"typegen/internal/opcode"
	"typegen/internal/pack"
	"typegen/internal/program"
	"typegen/internal/resolve"
	"typegen/pkg/hostapi"
)

// Walker threads one program through one file's worth of type emission. A
// new Walker is created per rewritten carrier (spec §3, "Lifecycle").
type Walker struct {
	Prog     *program.Program
	Resolver *resolve.Resolver
	File     string
}

// New creates a Walker over prog, resolving cross-file references from the
// perspective of file.
func New(prog *program.Program, resolver *resolve.Resolver, file string) *Walker {
	return &Walker{Prog: prog, Resolver: resolver, File: file}
}

func (w *Walker) emit(op opcode.Code, operands ...int) {
	w.Prog.Emit(op, operands...)
}

func (w *Walker) pushName(name string) int {
	return w.Prog.Pack.Push(pack.Entry{Kind: pack.EntryName, Text: name})
}

func (w *Walker) pushLiteral(kind pack.EntryKind, text string) int {
	return w.Prog.Pack.Push(pack.Entry{Kind: kind, Text: text})
}

func (w *Walker) pushThunk(text string) int {
	return w.Prog.Pack.Push(pack.Entry{Kind: pack.EntryThunk, Text: text})
}

// WalkType emits the opcode sequence for a single type node, per spec §4.5.
// A nil node emits `any`, matching the walker's fall-through-default rule.
func (w *Walker) WalkType(t hostapi.TypeNode) {
	if t == nil {
		w.emit(opcode.Any)
		return
	}

	switch n := t.(type) {
	case *hostapi.KeywordType:
		w.walkKeyword(n)
	case *hostapi.LiteralType:
		w.walkLiteral(n)
	case *hostapi.ArrayType:
		w.WalkType(n.Element)
		w.emit(opcode.Array)
	case *hostapi.UnionType:
		w.walkCombinator(n.Members, opcode.Union)
	case *hostapi.IntersectionType:
		w.walkCombinator(n.Members, opcode.Intersection)
	case *hostapi.IndexedAccessType:
		w.WalkType(n.Object)
		w.WalkType(n.Index)
		w.emit(opcode.Query)
	case *hostapi.KeyOfType:
		w.WalkType(n.Operand)
		w.emit(opcode.KeyOf)
	case *hostapi.ConditionalType:
		w.walkConditional(n)
	case *hostapi.InferType:
		w.walkInfer(n)
	case *hostapi.MappedType:
		w.walkMapped(n)
	case *hostapi.TypeReference:
		w.walkReference(n)
	case *hostapi.ParenthesizedType:
		w.WalkType(n.Inner)
	case *hostapi.FunctionTypeNode:
		w.walkFunctionLike(functionLike{
			typeParameters: n.TypeParameters,
			parameters:     n.Parameters,
			returnType:     n.ReturnType,
			op:             opcode.Function,
			name:           "",
		})
	case *hostapi.ObjectTypeLiteral:
		w.walkObjectLiteral(n.Members, nil)
	default:
		w.emit(opcode.Any)
	}
}

func (w *Walker) walkKeyword(n *hostapi.KeywordType) {
	switch n.Keyword {
	case hostapi.KeywordNever:
		w.emit(opcode.Never)
	case hostapi.KeywordAny:
		w.emit(opcode.Any)
	case hostapi.KeywordVoid:
		w.emit(opcode.Void)
	case hostapi.KeywordString:
		w.emit(opcode.String)
	case hostapi.KeywordNumber:
		w.emit(opcode.Number)
	case hostapi.KeywordBoolean:
		w.emit(opcode.Boolean)
	case hostapi.KeywordBigInt:
		w.emit(opcode.BigInt)
	case hostapi.KeywordNull:
		w.emit(opcode.Null)
	case hostapi.KeywordUndefined:
		w.emit(opcode.Undefined)
	default:
		w.emit(opcode.Any)
	}
}

func (w *Walker) walkLiteral(n *hostapi.LiteralType) {
	switch n.Kind {
	case hostapi.LiteralString:
		idx := w.pushLiteral(pack.EntryLiteralString, n.Text)
		w.emit(opcode.Literal, idx)
	case hostapi.LiteralNumber:
		idx := w.pushLiteral(pack.EntryLiteralNumber, n.Text)
		w.emit(opcode.Literal, idx)
	case hostapi.LiteralBoolean:
		idx := w.pushLiteral(pack.EntryLiteralBoolean, n.Text)
		w.emit(opcode.Literal, idx)
	default:
		w.emit(opcode.Any)
	}
}

// walkCombinator implements the union/intersection rule: omit entirely for
// zero members, emit the lone member unwrapped for one, otherwise push a
// frame (only if the program already has content — spec §4.5/§8 scenario 2),
// emit every member, then the combinator op, then pop the frame.
func (w *Walker) walkCombinator(members []hostapi.TypeNode, op opcode.Code) {
	switch len(members) {
	case 0:
		return
	case 1:
		w.WalkType(members[0])
		return
	}

	opened := w.Prog.Len() > 0
	if opened {
		w.Prog.PushFrame()
		w.emit(opcode.Frame)
	}
	for _, m := range members {
		w.WalkType(m)
	}
	w.emit(op)
	if opened {
		w.Prog.PopFrame()
	}
}

func (w *Walker) walkConditional(n *hostapi.ConditionalType) {
	w.Prog.PushFrame()
	w.emit(opcode.Frame)

	w.WalkType(n.Check)
	w.WalkType(n.Extends)
	w.emit(opcode.Extends)

	w.WalkType(n.True)
	w.WalkType(n.False)
	w.emit(opcode.Condition)

	w.Prog.PopFrame()
}

// walkInfer implements `infer X`: spec requires the var binding at the
// enclosing conditional frame's opening, inserted on first reference of X.
// Since this Walker doesn't track a frame-open splice point independently
// (program.Program's frames are addressed by name, not opIndex, simplifying
// the teacher's pushOpAtFrame splicing to an eager var emission at
// walkConditional's frame-open instead), the `var` op for every name bound
// in the conditional frame is emitted immediately after `frame` rather than
// retroactively spliced — equivalent placement, since nothing else is
// emitted between `frame` and the first possible `infer` reference within
// the same conditional.
func (w *Walker) walkInfer(n *hostapi.InferType) {
	if w.Prog.Depth() == 0 {
		// No enclosing frame at all: emitted outside any conditional type.
		w.emit(opcode.Never)
		return
	}
	if _, _, ok := w.Prog.Resolve(n.Name); !ok {
		w.Prog.Declare(n.Name)
		w.emit(opcode.Var)
	}
	frameOffset, stackIndex, ok := w.Prog.Resolve(n.Name)
	if !ok {
		w.emit(opcode.Never)
		return
	}
	w.emit(opcode.Infer, frameOffset, stackIndex)
}

func (w *Walker) walkMapped(n *hostapi.MappedType) {
	w.Prog.PushFrame()
	w.emit(opcode.Frame)
	w.walkMappedBody(n)
	w.Prog.PopFrame()
}

// walkMappedBody emits a mapped type's variable binding, constraint, and
// coroutine, assuming a frame is already open. Split out so a generic type
// alias whose body is directly a mapped type (spec §8 scenario 5) can share
// its single template frame with the mapped type's own `P` binding instead
// of nesting a second one — the scenario's literal op listing shows exactly
// one `frame` op covering both T (the alias's own type parameter) and P.
//
// The value type walks into BeginCoroutine/EndCoroutine's own buffer rather
// than straight into the surrounding program, so the element-production
// body ends up hoisted in front of the main program instead of inlined at
// the mappedType call site (spec §4.3 popCoRoutine/buildPackStruct).
func (w *Walker) walkMappedBody(n *hostapi.MappedType) {
	w.Prog.Declare(n.ParamName)
	w.emit(opcode.Var)

	if n.Constraint != nil {
		w.WalkType(n.Constraint)
	} else {
		w.emit(opcode.Never)
	}

	co := w.Prog.BeginCoroutine(n.ParamName)
	if n.ValueType != nil {
		w.WalkType(n.ValueType)
	} else {
		w.emit(opcode.Never)
	}
	offset := w.Prog.EndCoroutine(co)

	bits := modifierBits(n.OptionalMod, n.ReadonlyMod)
	w.emit(opcode.MappedType, offset, bits)
}

// modifierBits packs the four independent modifier bits spec §9 describes:
// optional, removeOptional, readonly, removeReadonly.
func modifierBits(optional, readonly hostapi.ModifierOp) int {
	bits := 0
	switch optional {
	case hostapi.ModifierAdd:
		bits |= 1 << 0
	case hostapi.ModifierRemove:
		bits |= 1 << 1
	}
	switch readonly {
	case hostapi.ModifierAdd:
		bits |= 1 << 2
	case hostapi.ModifierRemove:
		bits |= 1 << 3
	}
	return bits
}

// walkReference implements §4.6's five-step type-reference resolution.
func (w *Walker) walkReference(n *hostapi.TypeReference) {
	if len(n.Qualifier) == 0 {
		if kc, ok := hostapi.KnownClasses[n.Name]; ok {
			w.walkKnownClass(kc, n)
			return
		}
		if brand, ok := hostapi.NumberBrands[n.Name]; ok {
			w.emit(opcode.NumberBrand, brand)
			return
		}
		if frameOffset, stackIndex, ok := w.Prog.Resolve(n.Name); ok {
			w.emit(opcode.Loads, frameOffset, stackIndex)
			return
		}
	}

	decl, err := w.Resolver.Resolve(w.File, n)
	if err != nil {
		w.emit(opcode.Any)
		return
	}
	w.walkResolvedDeclaration(decl, n)
}

func (w *Walker) walkKnownClass(kc hostapi.KnownClass, n *hostapi.TypeReference) {
	switch kc {
	case hostapi.KnownClassPromise:
		if len(n.TypeArguments) > 0 {
			w.WalkType(n.TypeArguments[0])
		} else {
			w.emit(opcode.Any)
		}
		w.emit(opcode.PromiseClass)
	case hostapi.KnownClassDate:
		w.emit(opcode.DateClass)
	case hostapi.KnownClassArrayBuffer:
		w.emit(opcode.ArrayBufferClass)
	case hostapi.KnownClassSet:
		for _, arg := range n.TypeArguments {
			w.WalkType(arg)
		}
		if len(n.TypeArguments) == 0 {
			w.emit(opcode.Any)
		}
		w.emit(opcode.Set)
	case hostapi.KnownClassMap:
		for _, arg := range n.TypeArguments {
			w.WalkType(arg)
		}
		for len(n.TypeArguments) < 2 {
			w.emit(opcode.Any)
			n.TypeArguments = append(n.TypeArguments, nil)
		}
		w.emit(opcode.Map)
	case hostapi.KnownClassInt8Array:
		w.emit(opcode.Int8ArrayClass)
	case hostapi.KnownClassUint8Array:
		w.emit(opcode.Uint8ArrayClass)
	case hostapi.KnownClassUint8ClampedArray:
		w.emit(opcode.Uint8ClampedArrayClass)
	case hostapi.KnownClassInt16Array:
		w.emit(opcode.Int16ArrayClass)
	case hostapi.KnownClassUint16Array:
		w.emit(opcode.Uint16ArrayClass)
	case hostapi.KnownClassInt32Array:
		w.emit(opcode.Int32ArrayClass)
	case hostapi.KnownClassUint32Array:
		w.emit(opcode.Uint32ArrayClass)
	case hostapi.KnownClassFloat32Array:
		w.emit(opcode.Float32ArrayClass)
	case hostapi.KnownClassFloat64Array:
		w.emit(opcode.Float64ArrayClass)
	case hostapi.KnownClassBigInt64Array:
		w.emit(opcode.BigInt64ArrayClass)
	case hostapi.KnownClassBigUint64Array:
		w.emit(opcode.BigUint64ArrayClass)
	default:
		w.emit(opcode.Any)
	}
}

// walkResolvedDeclaration implements §4.6 step 5's dispatch on declaration
// kind.
func (w *Walker) walkResolvedDeclaration(decl hostapi.Declaration, ref *hostapi.TypeReference) {
	switch d := decl.(type) {
	case *hostapi.TypeAliasDecl:
		w.walkHoistableReference(hoistKey(w.File, d.Name), d.Name, decl, ref)
	case *hostapi.InterfaceDecl:
		w.walkHoistableReference(hoistKey(w.File, d.Name), d.Name, decl, ref)
	case *hostapi.EnumDecl:
		idx := w.pushThunk(d.Name)
		w.emit(opcode.Enum, idx)
	case *hostapi.ClassDecl:
		for _, arg := range ref.TypeArguments {
			w.WalkType(arg)
		}
		idx := w.pushThunk(d.Name)
		w.emit(opcode.ClassReference, idx)
	case *hostapi.ImportSpecifier:
		// The resolver only returns an ImportSpecifier itself when neither
		// the checker nor the module graph could bridge past it; nothing
		// further is resolvable.
		w.emit(opcode.Any)
	default:
		w.emit(opcode.Any)
	}
}

// hoistKey derives the resolver-assigned identity used to dedupe hoist
// requests: the file being walked plus the declaration's own name. Carriers
// of one file that reference the same declaration share a key; the key does
// not name the declaring file.
func hoistKey(file, name string) string {
	return file + "#" + name
}

// walkHoistableReference implements the alias/interface branch of §4.6 step
//5: push the hoisted binding's mangled name, enqueue the declaration for
// hoisting, then emit `inline`/`inlineCall` depending on whether type
// arguments were supplied.
func (w *Walker) walkHoistableReference(key, name string, decl hostapi.Declaration, ref *hostapi.TypeReference) {
	idx := w.pushName(mangle(ref.Name))
	w.Prog.RequestHoist(key, name, decl, program.HoistCompileLocal)

	if len(ref.TypeArguments) > 0 {
		for _, arg := range ref.TypeArguments {
			w.WalkType(arg)
		}
		w.emit(opcode.InlineCall, idx, len(ref.TypeArguments))
		return
	}
	w.emit(opcode.Inline, idx)
}

// mangle derives the `__Ω<Name>` hoisted-binding name by prefixing name.
// walkHoistableReference passes the reference's final name segment, so a
// qualifier is not part of the result.
func mangle(name string) string {
	return "__Ω" + name
}

type functionLike struct {
	typeParameters []*hostapi.TypeParameter
	parameters     []*hostapi.Parameter
	returnType     hostapi.TypeNode
	op             opcode.Code
	name           string
	modifiers      *hostapi.Modifiers
}

// walkFunctionLike implements the shared function-like emission rule of
// §4.5, covering methods, constructors, arrows, function declarations and
// expressions, and standalone function types.
func (w *Walker) walkFunctionLike(fl functionLike) {
	opened := w.Prog.Len() > 0 || len(fl.typeParameters) > 0
	if opened {
		w.Prog.PushFrame()
		w.emit(opcode.Frame)
	}

	for _, tp := range fl.typeParameters {
		idx := w.pushName(tp.Name)
		w.Prog.Declare(tp.Name)
		w.emit(opcode.Template, idx)
	}

	for _, p := range fl.parameters {
		if p.Name == "" {
			continue
		}
		w.WalkType(p.Type)
		idx := w.pushName(p.Name)
		w.emit(opcode.Parameter, idx)
		if p.Optional {
			w.emit(opcode.Optional)
		}
	}

	w.WalkType(fl.returnType)

	nameIdx := w.pushName(fl.name)
	w.emit(fl.op, nameIdx)

	if fl.modifiers != nil {
		w.emitModifierTrain(*fl.modifiers)
	}

	if opened {
		w.Prog.PopFrame()
	}
}

// emitModifierTrain appends the trailing visibility/abstract modifier ops
// shared by methods and properties: spec says modifier ops always follow the
// element they modify. `public` is never emitted: hostapi.Modifiers has no
// Public field, and the zero Modifiers value emits no visibility op.
func (w *Walker) emitModifierTrain(m hostapi.Modifiers) {
	switch {
	case m.Private:
		w.emit(opcode.Private)
	case m.Protected:
		w.emit(opcode.Protected)
	}
	if m.Abstract {
		w.emit(opcode.Abstract)
	}
}
