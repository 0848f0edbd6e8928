// Package pack implements the wire encoding of a type-bytecode program: an
// opcode/operand stream packed into printable ASCII, alongside a sidecar
// stack of the literal and identifier values the stream can't encode inline.
// Unlike the teacher compiler's bytecode serializer, the format has no magic
// number or version header and no binary container: the emitted payload is
// printable text embedded directly into rewritten source text rather than
// written to its own file.
package pack

import (
	"fmt"
	"strings"

	"typegen/internal/opcode"
)

// Entry is one element of a pack's stack sidecar: a value the opcode stream
// references by index instead of encoding inline, because it doesn't fit in
// a 6-bit operand (a string, a number, a live-binding thunk, or a qualified
// name).
type Entry struct {
	Kind EntryKind
	// Text holds the entry's rendering for EntryLiteralString, EntryName, and
	// EntryThunk. For EntryLiteralNumber it holds the canonical source
	// rendering of the number (preserving e.g. "1e3" vs "1000").
	Text string
	Bool bool
}

// EntryKind distinguishes the shapes a stack Entry can take.
type EntryKind int

const (
	// EntryLiteralString is a quoted string literal value.
	EntryLiteralString EntryKind = iota
	// EntryLiteralNumber is a numeric literal value, rendered verbatim.
	EntryLiteralNumber
	// EntryLiteralBoolean is `true` or `false`.
	EntryLiteralBoolean
	// EntryName is a bare identifier or doc string too long to pack inline
	// (a property/parameter/template name, a description string).
	EntryName
	// EntryThunk is a live-binding arrow function wrapping an expression
	// whose value can only be observed at runtime (a class reference, a
	// default-value initializer, an enum reference).
	EntryThunk
)

func (k EntryKind) String() string {
	switch k {
	case EntryLiteralString:
		return "string"
	case EntryLiteralNumber:
		return "number"
	case EntryLiteralBoolean:
		return "boolean"
	case EntryName:
		return "name"
	case EntryThunk:
		return "thunk"
	default:
		return "unknown"
	}
}

// Instruction is one opcode plus its fixed-arity operands.
type Instruction struct {
	Op       opcode.Code
	Operands []int
}

// Pack is the complete encoded program: the opcode/operand stream and the
// sidecar stack its operands index into.
type Pack struct {
	Instructions []Instruction
	Stack        []Entry
}

// New returns an empty Pack ready to receive instructions.
func New() *Pack {
	return &Pack{}
}

// Push appends a literal-or-name value to the stack and returns its index,
// for use as an operand in a subsequent Emit call.
func (p *Pack) Push(e Entry) int {
	p.Stack = append(p.Stack, e)
	return len(p.Stack) - 1
}

// Emit appends an instruction. It panics if the operand count doesn't match
// the opcode's fixed arity — a programming error in the caller (internal/
// typewalk or internal/program), never a property of user input.
func (p *Pack) Emit(op opcode.Code, operands ...int) int {
	if len(operands) != op.Arity() {
		panic(fmt.Sprintf("pack: %s expects %d operands, got %d", op, op.Arity(), len(operands)))
	}
	p.Instructions = append(p.Instructions, Instruction{Op: op, Operands: operands})
	return len(p.Instructions) - 1
}

// Len reports the current instruction count, used by callers that need to
// patch a Jump operand to point past instructions not yet emitted.
func (p *Pack) Len() int {
	return len(p.Instructions)
}

// ByteLen reports the total wire-encoded length, in bytes, of the
// instructions emitted so far: one byte per opcode plus one per operand,
// matching what Encode will actually produce. Used to compute the absolute
// offset a hoisted coroutine will occupy once prepended to another pack's
// instruction stream, where an instruction count alone would undercount by
// every operand byte.
func (p *Pack) ByteLen() int {
	n := 0
	for _, inst := range p.Instructions {
		n += 1 + len(inst.Operands)
	}
	return n
}

// PatchOperand overwrites one operand of an already-emitted instruction, used
// to back-patch a Jump's target once the hoisted coroutines it skips have
// all been emitted.
func (p *Pack) PatchOperand(instructionIndex, operandIndex, value int) {
	p.Instructions[instructionIndex].Operands[operandIndex] = value
}

// chrBase is the encoding base: every packed byte is chr(v+33), keeping the
// wire form within the printable ASCII range ('!' through '`' for the 6-bit
// values 0-63) so it
// can be embedded directly in rewritten source text without escaping.
const chrBase = 33

// encodeByte renders one 6-bit value (an opcode or an operand byte) as a
// single printable-ASCII rune.
func encodeByte(v int) byte {
	return byte(v + chrBase)
}

// decodeByte is encodeByte's inverse.
func decodeByte(b byte) int {
	return int(b) - chrBase
}

// Encode serializes the instruction stream to its printable-ASCII wire form.
// Decoding is opcode-directed: each opcode's own Arity tells the reader how
// many following bytes are operands, so an operand byte is never mistaken
// for the next opcode.
func (p *Pack) Encode() string {
	var b strings.Builder
	for _, inst := range p.Instructions {
		b.WriteByte(encodeByte(int(inst.Op)))
		for _, operand := range inst.Operands {
			b.WriteByte(encodeByte(operand))
		}
	}
	return b.String()
}

// Decode parses a wire-encoded opcode stream back into instructions. It does
// not reconstruct the stack sidecar, which travels separately (see
// internal/rewrite's payload attachment).
func Decode(wire string) ([]Instruction, error) {
	var out []Instruction
	bytes := []byte(wire)
	i := 0
	for i < len(bytes) {
		op := opcode.Code(decodeByte(bytes[i]))
		i++
		arity := op.Arity()
		if i+arity > len(bytes) {
			return nil, fmt.Errorf("pack: truncated stream at instruction %d (opcode %s wants %d operands)", len(out), op, arity)
		}
		operands := make([]int, arity)
		for j := 0; j < arity; j++ {
			operands[j] = decodeByte(bytes[i])
			i++
		}
		out = append(out, Instruction{Op: op, Operands: operands})
	}
	return out, nil
}
