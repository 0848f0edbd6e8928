package pack

import (
	"fmt"
	"io"
)

// Disassembler renders a Pack as human-readable text, the same shape as the
// teacher compiler's bytecode disassembler: one line per instruction with
// its offset, mnemonic, and resolved operands.
type Disassembler struct {
	writer io.Writer
	pack   *Pack
}

// NewDisassembler creates a disassembler for pck, writing to w.
func NewDisassembler(pck *Pack, w io.Writer) *Disassembler {
	return &Disassembler{writer: w, pack: pck}
}

// Disassemble prints the stack sidecar followed by the full instruction
// stream.
func (d *Disassembler) Disassemble() {
	fmt.Fprintf(d.writer, "Stack: %d entries, Instructions: %d\n\n", len(d.pack.Stack), len(d.pack.Instructions))

	if len(d.pack.Stack) > 0 {
		fmt.Fprintf(d.writer, "Stack:\n")
		for i, e := range d.pack.Stack {
			fmt.Fprintf(d.writer, "  [%04d] %s %q\n", i, e.Kind, e.Text)
		}
		fmt.Fprintf(d.writer, "\n")
	}

	fmt.Fprintf(d.writer, "Program:\n")
	for offset := range d.pack.Instructions {
		d.DisassembleInstruction(offset)
	}
}

// DisassembleInstruction prints a single instruction at offset, resolving
// any operand that indexes the stack sidecar to its value.
func (d *Disassembler) DisassembleInstruction(offset int) {
	if offset < 0 || offset >= len(d.pack.Instructions) {
		fmt.Fprintf(d.writer, "invalid offset: %d\n", offset)
		return
	}
	inst := d.pack.Instructions[offset]
	fmt.Fprintf(d.writer, "%04d %-16s", offset, inst.Op.String())
	for _, operand := range inst.Operands {
		fmt.Fprintf(d.writer, " %d", operand)
	}
	if resolved := d.resolveStackOperand(inst); resolved != "" {
		fmt.Fprintf(d.writer, "  ; %s", resolved)
	}
	fmt.Fprintln(d.writer)
}

// resolveStackOperand looks up the stack-indexed operand of opcodes known to
// reference the sidecar, for disassembly annotation only.
func (d *Disassembler) resolveStackOperand(inst Instruction) string {
	if len(inst.Operands) == 0 {
		return ""
	}
	idx := inst.Operands[0]
	if idx < 0 || idx >= len(d.pack.Stack) {
		return ""
	}
	switch inst.Op.String() {
	case "literal", "property", "propertySignature", "method", "function",
		"parameter", "defaultValue", "description", "template",
		"classReference", "inline", "enum":
		return d.pack.Stack[idx].Text
	default:
		return ""
	}
}
