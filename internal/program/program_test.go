package program

import (
	"testing"

	"typegen/internal/opcode"
	"typegen/pkg/hostapi"
)

func TestFrameDeclareAndResolve(t *testing.T) {
	p := New()
	p.PushFrame()
	slot := p.Declare("T")

	if slot != 0 {
		t.Fatalf("Declare(\"T\") = %d, want 0", slot)
	}

	frameOffset, stackIndex, ok := p.Resolve("T")
	if !ok {
		t.Fatal("Resolve(\"T\") did not find the declared variable")
	}
	if frameOffset != 0 || stackIndex != 0 {
		t.Errorf("Resolve(\"T\") = (%d, %d), want (0, 0)", frameOffset, stackIndex)
	}
}

func TestResolveAcrossNestedFrames(t *testing.T) {
	p := New()
	p.PushFrame()
	p.Declare("T") // outer frame, slot 0

	p.PushFrame()
	p.Declare("P") // inner frame, slot 0

	frameOffset, stackIndex, ok := p.Resolve("T")
	if !ok {
		t.Fatal("Resolve(\"T\") should find the outer frame's binding from the inner frame")
	}
	if frameOffset != 1 || stackIndex != 0 {
		t.Errorf("Resolve(\"T\") = (%d, %d), want (1, 0)", frameOffset, stackIndex)
	}

	if _, _, ok := p.Resolve("missing"); ok {
		t.Error("Resolve(\"missing\") should not resolve an undeclared name")
	}
}

func TestResolveInnerShadowsOuter(t *testing.T) {
	p := New()
	p.PushFrame()
	p.Declare("T")

	p.PushFrame()
	p.Declare("T")

	frameOffset, _, ok := p.Resolve("T")
	if !ok {
		t.Fatal("Resolve(\"T\") failed")
	}
	if frameOffset != 0 {
		t.Errorf("Resolve(\"T\") frameOffset = %d, want 0 (innermost shadows outer)", frameOffset)
	}
}

func TestPopFrameOnEmptyStackIsNoop(t *testing.T) {
	p := New()
	p.PopFrame() // must not panic
	if p.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0", p.Depth())
	}
}

func TestDeclareWithNoOpenFramePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected Declare to panic with no open frame")
		}
	}()
	p := New()
	p.Declare("T")
}

func TestDepthTracksPushAndPop(t *testing.T) {
	p := New()
	if p.Depth() != 0 {
		t.Fatalf("Depth() = %d, want 0", p.Depth())
	}
	p.PushFrame()
	p.PushFrame()
	if p.Depth() != 2 {
		t.Fatalf("Depth() = %d, want 2", p.Depth())
	}
	p.PopFrame()
	if p.Depth() != 1 {
		t.Fatalf("Depth() = %d, want 1", p.Depth())
	}
}

func TestCoroutineBodyIsBufferedSeparatelyFromMain(t *testing.T) {
	p := New()
	p.Pack.Emit(opcode.Frame)
	p.Pack.Emit(opcode.Var)

	co := p.BeginCoroutine("P")
	p.Emit(opcode.Loads, 0, 0)

	// While the coroutine is open, ops land in its own buffer, not the main
	// one: the main pack still shows only the two instructions emitted
	// before BeginCoroutine.
	if p.Pack.Len() != 2 {
		t.Errorf("main pack len while coroutine open = %d, want 2 (coroutine body must not leak into it)", p.Pack.Len())
	}

	offset := p.EndCoroutine(co)
	if offset != 2 {
		t.Errorf("EndCoroutine offset = %d, want 2 (first coroutine lands right after the jump prelude)", offset)
	}
	if len(p.openCoroutines) != 0 {
		t.Errorf("openCoroutines still holds entries after EndCoroutine: %v", p.openCoroutines)
	}
}

func TestFinalizePrependsCoroutineAndJumpPrelude(t *testing.T) {
	p := New()
	p.Pack.Emit(opcode.Frame)
	p.Pack.Emit(opcode.Var)

	co := p.BeginCoroutine("P")
	p.Emit(opcode.Loads, 0, 0)
	offset := p.EndCoroutine(co)

	p.Emit(opcode.MappedType, offset, 0)
	p.Finalize()

	ops := make([]opcode.Code, len(p.Pack.Instructions))
	for i, inst := range p.Pack.Instructions {
		ops[i] = inst.Op
	}
	want := []opcode.Code{opcode.Jump, opcode.Loads, opcode.Return, opcode.Frame, opcode.Var, opcode.MappedType}
	if len(ops) != len(want) {
		t.Fatalf("ops = %v, want %v", ops, want)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Errorf("ops[%d] = %s, want %s (full: %v)", i, ops[i], want[i], ops)
		}
	}

	// jump + the coroutine's loads(2 operands) + return = 2 + 3 + 1 = 6 bytes.
	if got := p.Pack.Instructions[0].Operands[0]; got != 6 {
		t.Errorf("jump target = %d, want 6", got)
	}
	if got := p.Pack.Instructions[len(p.Pack.Instructions)-1].Operands[0]; got != 2 {
		t.Errorf("mappedType offset = %d, want 2 (the coroutine's own post-hoist start)", got)
	}
}

func TestFinalizeIsNoopWithoutCoroutines(t *testing.T) {
	p := New()
	p.Pack.Emit(opcode.Never)
	p.Finalize()

	if len(p.Pack.Instructions) != 1 || p.Pack.Instructions[0].Op != opcode.Never {
		t.Errorf("Finalize altered a coroutine-free program: %v", p.Pack.Instructions)
	}
}

func TestRequestHoistDedupesByKey(t *testing.T) {
	p := New()
	decl := &hostapi.TypeAliasDecl{Name: "Box"}

	first := p.RequestHoist("file.ts#Box", "Box", decl, HoistCompileLocal)
	second := p.RequestHoist("file.ts#Box", "Box", decl, HoistCompileLocal)

	if !first {
		t.Error("first RequestHoist call should return true")
	}
	if second {
		t.Error("second RequestHoist call with the same key should return false")
	}

	drained := p.DrainHoists()
	if len(drained) != 1 {
		t.Fatalf("DrainHoists() = %d requests, want 1", len(drained))
	}
	if drained[0].Decl != hostapi.Declaration(decl) {
		t.Errorf("DrainHoists()[0].Decl = %v, want the original declaration", drained[0].Decl)
	}
}

func TestDrainHoistsClearsQueue(t *testing.T) {
	p := New()
	decl := &hostapi.TypeAliasDecl{Name: "Box"}
	p.RequestHoist("file.ts#Box", "Box", decl, HoistCompileLocal)

	first := p.DrainHoists()
	if len(first) != 1 {
		t.Fatalf("first DrainHoists() = %d, want 1", len(first))
	}

	second := p.DrainHoists()
	if len(second) != 0 {
		t.Fatalf("second DrainHoists() = %d, want 0 (queue should be empty)", len(second))
	}
}
