// Package program models the compiler state the type-walker (internal/
// typewalk) threads through a single emission pass: a stack of lexical
// frames binding generic type-parameter names to their positional slot, a
// queue of coroutines for mapped-type element production, and the hoist
// queue (each request tagged with a HoistKind) that lets a cyclic or shared
// type alias/interface become its own
// module-scope program instead of being inlined at every use site.
//
// The frame/enclosing-chain shape mirrors the teacher bytecode compiler's
// Compiler.locals/Compiler.enclosing scope chain, generalized from slot
// indices for local variables to frameOffset/stackIndex pairs addressing a
// named type parameter from however many frames up its binding site sits.
package program

import (
	"golang.org/x/exp/slices"

	"typegen/internal/opcode"
	"typegen/internal/pack"
	"typegen/pkg/hostapi"
)

// Variable is one named binding inside a Frame: a generic type parameter
// (`T` in `Box<T>`) or a mapped-type index variable (`P` in `[P in keyof T]`).
type Variable struct {
	Name string
	Slot int
}

// Frame is one lexical scope pushed while walking into a generic
// declaration, function type, or mapped type. Frames are addressed by
// offset from the current one: frameOffset 0 is the innermost frame,
// frameOffset 1 is its parent, and so on, matching the `loads`/`infer`
// opcodes' (frameOffset, stackIndex) operand pair.
type Frame struct {
	vars []Variable
}

func (f *Frame) declare(name string) int {
	slot := len(f.vars)
	f.vars = append(f.vars, Variable{Name: name, Slot: slot})
	return slot
}

func (f *Frame) resolve(name string) (int, bool) {
	for i := len(f.vars) - 1; i >= 0; i-- {
		if f.vars[i].Name == name {
			return f.vars[i].Slot, true
		}
	}
	return 0, false
}

// Coroutine is a hoisted inline subprogram: the element-production body of a
// mapped type, compiled into its own instruction buffer rather than the main
// one. It is terminated with `return` on close and prepended, along with
// every other completed coroutine, to the front of the program by Finalize;
// the `mappedType` instruction that opened it references it by its eventual
// absolute byte offset in that prepended layout, not by anything in the main
// buffer.
type Coroutine struct {
	pack      *pack.Pack
	paramName string
}

// HoistKind distinguishes why a declaration was queued for its own
// module-scope program instead of being inlined at its use site.
type HoistKind int

const (
	// HoistCompileLocal is the kind internal/typewalk gives every alias or
	// interface it queues, including one resolved from another file.
	// internal/rewrite compiles each queued request, whatever its kind, into
	// its own `__Ω<Name>` program.
	HoistCompileLocal HoistKind = iota
	// HoistEmbedForeign marks a declaration resolved from another file.
	// Nothing in this repository assigns it.
	HoistEmbedForeign
)

// HoistRequest names a declaration queued for hoisting, keyed by a resolver-
// assigned identity so the same declaration is never hoisted twice even if
// multiple carriers reference it (spec's cross-file identity requirement).
// Decl carries the actual resolved declaration so the rewriter can emit its
// program directly, without having to re-resolve Key back to a node.
type HoistRequest struct {
	Key  string
	Name string
	Decl hostapi.Declaration
	Kind HoistKind
}

// Program is the mutable compiler state threaded through one emission pass
// over a source file: the frame stack, the open/completed coroutine stacks,
// the hoist queue, and the underlying instruction pack being built.
type Program struct {
	Pack *pack.Pack

	frames []*Frame

	openCoroutines []*Coroutine // LIFO stack of coroutines currently receiving ops
	completed      []*Coroutine // closed coroutines, in closing order, awaiting Finalize
	mainOffset     int          // absolute byte offset the main program will start at once hoisted

	queued  map[string]bool
	hoisted []HoistRequest
}

// New creates an empty Program writing into a fresh pack. mainOffset starts
// at 2, reserving room for a `jump, mainOffset` prelude that Finalize only
// ends up emitting if a coroutine was actually opened.
func New() *Program {
	return &Program{
		Pack:       pack.New(),
		queued:     map[string]bool{},
		mainOffset: 2,
	}
}

// active returns the buffer that should receive the next emitted op: the
// innermost open coroutine, if any, otherwise the main pack (spec §4.3
// pushOp: "active buffer (top open coroutine, else main)").
func (p *Program) active() *pack.Pack {
	if n := len(p.openCoroutines); n > 0 {
		return p.openCoroutines[n-1].pack
	}
	return p.Pack
}

// Emit appends an instruction to whichever buffer is currently active.
func (p *Program) Emit(op opcode.Code, operands ...int) int {
	return p.active().Emit(op, operands...)
}

// Len reports the instruction count of whichever buffer is currently
// active, used by the walker to decide whether a combinator or declaration
// needs its own frame (an empty active buffer needs none).
func (p *Program) Len() int {
	return p.active().Len()
}

// PushFrame opens a new lexical scope. Callers push the frame and then emit
// a Frame opcode. The walker skips both for a union/intersection while the
// active buffer is still empty, and for a class or function-like form while
// the active buffer is empty and the form has no type parameters.
func (p *Program) PushFrame() *Frame {
	f := &Frame{}
	p.frames = append(p.frames, f)
	return f
}

// PopFrame closes the innermost scope.
func (p *Program) PopFrame() {
	if len(p.frames) == 0 {
		return
	}
	p.frames = p.frames[:len(p.frames)-1]
}

// Declare binds name in the innermost frame and returns its stack slot.
// It panics if no frame is open — a programming error in the caller.
func (p *Program) Declare(name string) int {
	if len(p.frames) == 0 {
		panic("program: Declare called with no open frame")
	}
	return p.frames[len(p.frames)-1].declare(name)
}

// Resolve looks up name starting from the innermost frame outward, returning
// the number of frames up it was found (frameOffset) and its slot within
// that frame (stackIndex).
func (p *Program) Resolve(name string) (frameOffset, stackIndex int, ok bool) {
	for i := len(p.frames) - 1; i >= 0; i-- {
		if slot, found := p.frames[i].resolve(name); found {
			return len(p.frames) - 1 - i, slot, true
		}
	}
	return 0, 0, false
}

// Depth reports how many frames are currently open.
func (p *Program) Depth() int {
	return len(p.frames)
}

// BeginCoroutine implements pushCoRoutine: opens a mapped-type element-
// production subprogram as its own instruction buffer (no `frame` op, since
// the calling convention reserves one implicitly) and makes it the active
// buffer. The caller emits the coroutine body into it via Emit, then calls
// EndCoroutine.
func (p *Program) BeginCoroutine(paramName string) *Coroutine {
	co := &Coroutine{pack: pack.New(), paramName: paramName}
	p.openCoroutines = append(p.openCoroutines, co)
	return co
}

// EndCoroutine implements popCoRoutine: closes co by appending `return`,
// pops it off the open-coroutine stack, records it for Finalize to prepend,
// advances the main offset by co's own wire length, and returns the
// absolute byte offset co will occupy once hoisted — the mappedType
// instruction's operand.
func (p *Program) EndCoroutine(co *Coroutine) int {
	co.pack.Emit(opcode.Return)
	p.openCoroutines = p.openCoroutines[:len(p.openCoroutines)-1]

	startOffset := p.mainOffset
	p.mainOffset += co.pack.ByteLen()
	p.completed = append(p.completed, co)
	return startOffset
}

// Finalize implements buildPackStruct: prepends every completed coroutine's
// instructions, in closing order, to the front of the main program, then —
// only if at least one coroutine exists — prepends `jump, mainOffset` ahead
// of them so a companion runtime skips straight past them to the main
// program. Each mappedType call site was already emitted against the
// absolute offset EndCoroutine reserved for its coroutine, so only the
// jump's own target needs back-patching once the final layout is known.
// Safe to call more than once: a Program with no coroutines is a no-op, and
// one that already has them prepended has none left to add.
func (p *Program) Finalize() {
	if len(p.completed) == 0 {
		return
	}

	prelude := []pack.Instruction{{Op: opcode.Jump, Operands: []int{0}}}
	for _, co := range p.completed {
		prelude = append(prelude, co.pack.Instructions...)
	}
	p.completed = nil

	p.Pack.Instructions = append(prelude, p.Pack.Instructions...)
	p.Pack.PatchOperand(0, 0, p.mainOffset)
}

// RequestHoist queues a declaration for a standalone program, keyed by a
// resolver-assigned identity. Returns false if this key was already queued,
// so the caller knows not to hoist (and thus not to emit) it twice.
func (p *Program) RequestHoist(key, name string, decl hostapi.Declaration, kind HoistKind) bool {
	if p.queued[key] {
		return false
	}
	p.queued[key] = true
	p.hoisted = append(p.hoisted, HoistRequest{Key: key, Name: name, Decl: decl, Kind: kind})
	return true
}

// DrainHoists returns and clears the queued hoist requests. The rewriter
// calls this in a loop until it returns empty, since emitting one hoisted
// declaration's program can itself reference further declarations. The
// returned slice is a clone, so it stays valid regardless of what further
// RequestHoist calls do to the Program's own backing slice.
func (p *Program) DrainHoists() []HoistRequest {
	out := slices.Clone(p.hoisted)
	p.hoisted = nil
	return out
}
