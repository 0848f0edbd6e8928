// Package opcode defines the closed instruction set the type-to-bytecode
// walker (internal/typewalk) emits and the pack structure (internal/pack)
// serializes: a tagged repertoire of primitive types, structural builders,
// algebraic combinators, generics/references, conditional/inference control,
// mapped-type coroutine control, and well-known built-in classes.
//
// Every opcode has a fixed, closed arity of 0, 1, or 2 inline operands,
// enumerated once in arities below. The total opcode count is kept at or
// under 64 so opcode values and operand bytes share one 6-bit encoding space
// (internal/pack) without ambiguity — decoding is always opcode-directed, so
// an operand byte is never mistaken for the next opcode.
package opcode

// Code identifies a single type-bytecode instruction.
type Code byte

const (
	// ---- Primitive types ----
	Never Code = iota
	Any
	Void
	String
	Number
	NumberBrand // arity 1: brand id (integer, int8, int16, ...)
	Boolean
	BigInt
	Null
	Undefined

	// ---- Literal types ----
	Literal // arity 1: stack index of the literal value

	// ---- Structural builders ----
	Array
	Set
	Map
	Class
	ObjectLiteral

	// ---- Members ----
	Property          // arity 1: name stack index
	PropertySignature // arity 1: name stack index
	Method            // arity 1: name stack index ("constructor" for ctors, also covers interface method signatures)
	Function          // arity 1: name stack index
	Parameter         // arity 1: name stack index
	IndexSignature

	// ---- Member modifiers ----
	Optional
	Readonly
	Public
	Private
	Protected
	Abstract
	DefaultValue // arity 1: stack index of an arrow thunk around the initializer
	Description  // arity 1: stack index of the doc-comment text

	// ---- Algebraic combinators ----
	Union
	Intersection

	// ---- Generics and references ----
	Template       // arity 1: name stack index
	ClassReference // arity 1: stack index of a live-binding thunk
	Inline         // arity 1: hoisted-binding stack index
	InlineCall     // arity 2: hoisted-binding stack index, arity of supplied type arguments
	Loads          // arity 2: frameOffset, stackIndex
	Var

	// ---- Conditional / inference ----
	Extends
	Condition
	Infer // arity 2: frameOffset, stackIndex
	Jump  // arity 1: absolute offset to skip past hoisted coroutines

	// ---- Mapped types ----
	MappedType // arity 2: coroutine start offset, modifier bitset

	// ---- Operators ----
	KeyOf
	Query

	// ---- Control ----
	Frame
	Return

	// ---- Enums ----
	Enum // arity 1: stack index of an arrow thunk returning the live enum binding

	// ---- Well-known classes ----
	DateClass
	PromiseClass
	ArrayBufferClass
	Int8ArrayClass
	Uint8ArrayClass
	Uint8ClampedArrayClass
	Int16ArrayClass
	Uint16ArrayClass
	Int32ArrayClass
	Uint32ArrayClass
	Float32ArrayClass
	Float64ArrayClass
	BigInt64ArrayClass
	BigUint64ArrayClass

	numCodes
)

// MaxOpcodes is the packing ceiling: opcode values and operand bytes share
// the same 6-bit encoding space (internal/pack), so the repertoire must stay
// within this many distinct values.
const MaxOpcodes = 64

func init() {
	if numCodes > MaxOpcodes {
		panic("opcode: instruction set exceeds the 64-value packing ceiling")
	}
}

// Arity returns the number of inline integer operands that follow this
// opcode in the stream. Operand values share the opcode's 6-bit encoding
// space but are never mistaken for an opcode because decoding is
// opcode-directed (internal/pack).
func (c Code) Arity() int {
	switch c {
	case NumberBrand, Literal, Property, PropertySignature, Method, Function,
		Parameter, DefaultValue, Description, Template, ClassReference, Inline,
		Jump, Enum:
		return 1
	case InlineCall, Loads, Infer, MappedType:
		return 2
	default:
		return 0
	}
}

var names = [...]string{
	Never: "never", Any: "any", Void: "void", String: "string", Number: "number",
	NumberBrand: "numberBrand", Boolean: "boolean", BigInt: "bigint", Null: "null",
	Undefined: "undefined", Literal: "literal", Array: "array", Set: "set",
	Map: "map", Class: "class", ObjectLiteral: "objectLiteral", Property: "property",
	PropertySignature: "propertySignature", Method: "method", Function: "function",
	Parameter: "parameter", IndexSignature: "indexSignature", Optional: "optional",
	Readonly: "readonly", Public: "public", Private: "private", Protected: "protected",
	Abstract: "abstract", DefaultValue: "defaultValue", Description: "description",
	Union: "union", Intersection: "intersection", Template: "template",
	ClassReference: "classReference", Inline: "inline", InlineCall: "inlineCall",
	Loads: "loads", Var: "var", Extends: "extends", Condition: "condition",
	Infer: "infer", Jump: "jump", MappedType: "mappedType", KeyOf: "keyof",
	Query: "query", Frame: "frame", Return: "return", Enum: "enum",
	DateClass: "date", PromiseClass: "promise", ArrayBufferClass: "arrayBuffer",
	Int8ArrayClass: "int8Array", Uint8ArrayClass: "uint8Array",
	Uint8ClampedArrayClass: "uint8ClampedArray", Int16ArrayClass: "int16Array",
	Uint16ArrayClass: "uint16Array", Int32ArrayClass: "int32Array",
	Uint32ArrayClass: "uint32Array", Float32ArrayClass: "float32Array",
	Float64ArrayClass: "float64Array", BigInt64ArrayClass: "bigInt64Array",
	BigUint64ArrayClass: "bigUint64Array",
}

// String returns the mnemonic used by the disassembler (internal/pack).
func (c Code) String() string {
	if int(c) < len(names) && names[c] != "" {
		return names[c]
	}
	return "UNKNOWN"
}
