package hostapi

import "strings"

// TypeNode is any node that occurs in type position. The instruction-set
// walker (internal/typewalk) dispatches on the concrete type of a TypeNode
// the same way the teacher's bytecode compiler dispatches on ast.Expression
// concrete types.
type TypeNode interface {
	Node
	typeNode()
}

// Keyword enumerates the primitive keyword types.
type Keyword int

const (
	KeywordNever Keyword = iota
	KeywordAny
	KeywordVoid
	KeywordString
	KeywordNumber
	KeywordBoolean
	KeywordBigInt
	KeywordNull
	KeywordUndefined
)

func (k Keyword) String() string {
	switch k {
	case KeywordNever:
		return "never"
	case KeywordAny:
		return "any"
	case KeywordVoid:
		return "void"
	case KeywordString:
		return "string"
	case KeywordNumber:
		return "number"
	case KeywordBoolean:
		return "boolean"
	case KeywordBigInt:
		return "bigint"
	case KeywordNull:
		return "null"
	case KeywordUndefined:
		return "undefined"
	default:
		return "unknown"
	}
}

// KeywordType is a primitive keyword type such as `string` or `never`.
type KeywordType struct {
	At      Position
	Keyword Keyword
}

func (k *KeywordType) Pos() Position  { return k.At }
func (k *KeywordType) String() string { return k.Keyword.String() }
func (k *KeywordType) typeNode()      {}

// LiteralKind distinguishes the kinds of literal a LiteralType can wrap.
type LiteralKind int

const (
	LiteralString LiteralKind = iota
	LiteralNumber
	LiteralBoolean
)

// LiteralType represents a literal type such as `"a"`, `42`, or `true`.
// A bare `null` literal is represented as KeywordType{Keyword: KeywordNull}
// instead, per spec §4.5.
type LiteralType struct {
	At     Position
	Text   string // source rendering, used for the stack entry string/number
	Kind   LiteralKind
	Number float64
	Bool   bool
}

func (l *LiteralType) Pos() Position { return l.At }
func (l *LiteralType) String() string {
	switch l.Kind {
	case LiteralString:
		return "\"" + l.Text + "\""
	default:
		return l.Text
	}
}
func (l *LiteralType) typeNode() {}

// ArrayType represents `T[]`.
type ArrayType struct {
	At      Position
	Element TypeNode
}

func (a *ArrayType) Pos() Position  { return a.At }
func (a *ArrayType) String() string { return a.Element.String() + "[]" }
func (a *ArrayType) typeNode()      {}

// UnionType represents `T1 | T2 | ... | Tn`.
type UnionType struct {
	At      Position
	Members []TypeNode
}

func (u *UnionType) Pos() Position { return u.At }
func (u *UnionType) String() string {
	parts := make([]string, len(u.Members))
	for i, m := range u.Members {
		parts[i] = m.String()
	}
	return strings.Join(parts, " | ")
}
func (u *UnionType) typeNode() {}

// IntersectionType represents `T1 & T2 & ... & Tn`.
type IntersectionType struct {
	At      Position
	Members []TypeNode
}

func (it *IntersectionType) Pos() Position { return it.At }
func (it *IntersectionType) String() string {
	parts := make([]string, len(it.Members))
	for i, m := range it.Members {
		parts[i] = m.String()
	}
	return strings.Join(parts, " & ")
}
func (it *IntersectionType) typeNode() {}

// IndexedAccessType represents `T[K]`.
type IndexedAccessType struct {
	At     Position
	Object TypeNode
	Index  TypeNode
}

func (ia *IndexedAccessType) Pos() Position { return ia.At }
func (ia *IndexedAccessType) String() string {
	return ia.Object.String() + "[" + ia.Index.String() + "]"
}
func (ia *IndexedAccessType) typeNode() {}

// KeyOfType represents `keyof T`.
type KeyOfType struct {
	At      Position
	Operand TypeNode
}

func (k *KeyOfType) Pos() Position  { return k.At }
func (k *KeyOfType) String() string { return "keyof " + k.Operand.String() }
func (k *KeyOfType) typeNode()      {}

// ConditionalType represents `Check extends Extends ? True : False`.
type ConditionalType struct {
	At      Position
	Check   TypeNode
	Extends TypeNode
	True    TypeNode
	False   TypeNode
}

func (c *ConditionalType) Pos() Position { return c.At }
func (c *ConditionalType) String() string {
	return c.Check.String() + " extends " + c.Extends.String() + " ? " + c.True.String() + " : " + c.False.String()
}
func (c *ConditionalType) typeNode() {}

// InferType represents `infer X` appearing within the Extends clause of a
// ConditionalType.
type InferType struct {
	At   Position
	Name string
}

func (i *InferType) Pos() Position  { return i.At }
func (i *InferType) String() string { return "infer " + i.Name }
func (i *InferType) typeNode()      {}

// ModifierOp describes what a mapped type does to the `?`/`readonly`
// modifier of its source property: leave it, add it, or strip it with `-`.
type ModifierOp int

const (
	ModifierUnchanged ModifierOp = iota
	ModifierAdd
	ModifierRemove
)

// MappedType represents `{ [P in Constraint]?: ValueType }` and its
// `readonly`/`-readonly`/`-?` variants.
type MappedType struct {
	At            Position
	ParamName     string
	Constraint    TypeNode
	ValueType     TypeNode
	OptionalMod   ModifierOp
	ReadonlyMod   ModifierOp
}

func (m *MappedType) Pos() Position { return m.At }
func (m *MappedType) String() string {
	return "{ [" + m.ParamName + " in " + m.Constraint.String() + "]: " + m.ValueType.String() + " }"
}
func (m *MappedType) typeNode() {}

// TypeReference represents a named type usage, e.g. `Box<string>` or
// `A.B.Thing`. Qualifier holds any leading qualification (`A.B`); Name is
// the final segment.
type TypeReference struct {
	At            Position
	Qualifier     []string
	Name          string
	TypeArguments []TypeNode
}

func (r *TypeReference) Pos() Position { return r.At }
func (r *TypeReference) String() string {
	name := r.Name
	if len(r.Qualifier) > 0 {
		name = strings.Join(r.Qualifier, ".") + "." + name
	}
	if len(r.TypeArguments) == 0 {
		return name
	}
	parts := make([]string, len(r.TypeArguments))
	for i, a := range r.TypeArguments {
		parts[i] = a.String()
	}
	return name + "<" + strings.Join(parts, ", ") + ">"
}
func (r *TypeReference) typeNode() {}

// ParenthesizedType represents a type wrapped in parentheses purely for
// grouping; it carries no semantics of its own.
type ParenthesizedType struct {
	At    Position
	Inner TypeNode
}

func (p *ParenthesizedType) Pos() Position  { return p.At }
func (p *ParenthesizedType) String() string { return "(" + p.Inner.String() + ")" }
func (p *ParenthesizedType) typeNode()      {}

// FunctionTypeNode represents a standalone function type, e.g.
// `(x: number) => boolean`.
type FunctionTypeNode struct {
	At             Position
	TypeParameters []*TypeParameter
	Parameters     []*Parameter
	ReturnType     TypeNode
}

func (f *FunctionTypeNode) Pos() Position { return f.At }
func (f *FunctionTypeNode) String() string {
	parts := make([]string, len(f.Parameters))
	for i, p := range f.Parameters {
		parts[i] = p.String()
	}
	ret := "void"
	if f.ReturnType != nil {
		ret = f.ReturnType.String()
	}
	return "(" + strings.Join(parts, ", ") + ") => " + ret
}
func (f *FunctionTypeNode) typeNode() {}

// ObjectTypeLiteral represents an inline object type / type-literal, e.g.
// `{ v: T }`.
type ObjectTypeLiteral struct {
	At      Position
	Members []Member
}

func (o *ObjectTypeLiteral) Pos() Position { return o.At }
func (o *ObjectTypeLiteral) String() string {
	parts := make([]string, len(o.Members))
	for i, m := range o.Members {
		parts[i] = m.String()
	}
	return "{ " + strings.Join(parts, "; ") + " }"
}
func (o *ObjectTypeLiteral) typeNode() {}

// TypeParameter represents a single generic type parameter, e.g. `T` in
// `Box<T>` or `T extends string` constrained form.
type TypeParameter struct {
	At         Position
	Name       string
	Constraint TypeNode
}

func (t *TypeParameter) Pos() Position { return t.At }
func (t *TypeParameter) String() string {
	if t.Constraint == nil {
		return t.Name
	}
	return t.Name + " extends " + t.Constraint.String()
}

// Parameter represents a single function/method parameter.
type Parameter struct {
	At       Position
	Name     string
	Type     TypeNode
	Optional bool
}

func (p *Parameter) Pos() Position { return p.At }
func (p *Parameter) String() string {
	suffix := ""
	if p.Optional {
		suffix = "?"
	}
	if p.Type == nil {
		return p.Name + suffix
	}
	return p.Name + suffix + ": " + p.Type.String()
}
