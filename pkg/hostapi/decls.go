package hostapi

// Declaration is any node the declaration resolver (internal/resolve) can
// resolve a symbol to: a class, interface, type alias, enum, function, or
// an import specifier (which the resolver bridges through).
type Declaration interface {
	Node
	declNode()
}

// Carrier is any node the tree rewriter (internal/rewrite) can attach an
// encoded `__type` payload to: classes, function declarations, and function
// expressions/arrows.
type Carrier interface {
	Node
	carrierNode()
}

// ClassDecl represents a class declaration or class expression.
type ClassDecl struct {
	At             Position
	Name           string
	TypeParameters []*TypeParameter
	Extends        *TypeReference
	Implements     []*TypeReference
	Members        []Member
	Doc            string
	IsExpression   bool
}

func (c *ClassDecl) Pos() Position      { return c.At }
func (c *ClassDecl) String() string     { return "class " + c.Name }
func (c *ClassDecl) DocComment() string { return c.Doc }
func (c *ClassDecl) declNode()          {}
func (c *ClassDecl) carrierNode()       {}

// InterfaceDecl represents an interface declaration, possibly extending
// multiple parent interfaces (merged per spec §4.5).
type InterfaceDecl struct {
	At             Position
	Name           string
	TypeParameters []*TypeParameter
	Extends        []*TypeReference
	Members        []Member
	Doc            string
}

func (i *InterfaceDecl) Pos() Position      { return i.At }
func (i *InterfaceDecl) String() string     { return "interface " + i.Name }
func (i *InterfaceDecl) DocComment() string { return i.Doc }
func (i *InterfaceDecl) declNode()          {}

// TypeAliasDecl represents `type Name<T...> = Type;`.
type TypeAliasDecl struct {
	At             Position
	Name           string
	TypeParameters []*TypeParameter
	Type           TypeNode
	Doc            string
}

func (t *TypeAliasDecl) Pos() Position      { return t.At }
func (t *TypeAliasDecl) String() string     { return "type " + t.Name + " = " + t.Type.String() }
func (t *TypeAliasDecl) DocComment() string { return t.Doc }
func (t *TypeAliasDecl) declNode()          {}

// EnumDecl represents an enum declaration. Reflection never encodes an
// enum's members, only a live reference to the runtime enum object
// (spec §4.6 step 5, `enum` op).
type EnumDecl struct {
	At      Position
	Name    string
	Members []string
	Doc     string
}

func (e *EnumDecl) Pos() Position      { return e.At }
func (e *EnumDecl) String() string     { return "enum " + e.Name }
func (e *EnumDecl) DocComment() string { return e.Doc }
func (e *EnumDecl) declNode()          {}

// FunctionDecl represents a named function declaration. It is both a
// Declaration (something a TypeReference can resolve to, for `typeof`-style
// usage) and a Carrier (it receives a trailing `Fn.__type = ...` assignment).
type FunctionDecl struct {
	At             Position
	Name           string
	TypeParameters []*TypeParameter
	Parameters     []*Parameter
	ReturnType     TypeNode
	Doc            string
}

func (f *FunctionDecl) Pos() Position      { return f.At }
func (f *FunctionDecl) String() string     { return "function " + f.Name }
func (f *FunctionDecl) DocComment() string { return f.Doc }
func (f *FunctionDecl) declNode()          {}
func (f *FunctionDecl) carrierNode()       {}

// FunctionExpression represents an anonymous `function (...) {}` expression
// or an arrow function `(...) => ...`. It is a Carrier only: the rewriter
// replaces it with `Object.assign(fn, { __type: ... })`.
type FunctionExpression struct {
	At             Position
	IsArrow        bool
	TypeParameters []*TypeParameter
	Parameters     []*Parameter
	ReturnType     TypeNode
}

func (f *FunctionExpression) Pos() Position  { return f.At }
func (f *FunctionExpression) String() string { return "(...) => ..." }
func (f *FunctionExpression) carrierNode()   {}

// ImportSpecifier binds a local name to an export of another module.
// Synthetic is a flag for the host's dead-import elimination; the resolver
// and rewriter in this repository walk through imports without setting it.
type ImportSpecifier struct {
	At             Position
	LocalName      string
	ImportedName   string
	ModuleSpecifier string
	Synthetic      bool
}

func (i *ImportSpecifier) Pos() Position  { return i.At }
func (i *ImportSpecifier) String() string { return "import " + i.LocalName }
func (i *ImportSpecifier) declNode()      {}

// NamedReExport represents `export { a, b as c } from "m"`.
type NamedReExport struct {
	At              Position
	ModuleSpecifier string
	Specifiers      []ReExportSpecifier
}

// ReExportSpecifier is one entry of a NamedReExport: PropertyName is the
// name as exported by the origin module, ExportedName is the name this
// re-export binds it to (honoring `as`).
type ReExportSpecifier struct {
	PropertyName string
	ExportedName string
}

func (r *NamedReExport) Pos() Position  { return r.At }
func (r *NamedReExport) String() string { return "export {...} from " + r.ModuleSpecifier }

// StarReExport represents `export * from "m"`.
type StarReExport struct {
	At              Position
	ModuleSpecifier string
}

func (s *StarReExport) Pos() Position  { return s.At }
func (s *StarReExport) String() string { return "export * from " + s.ModuleSpecifier }

// SourceFile is the root of a host AST tree for one file.
type SourceFile struct {
	FileName       string
	Statements     []Node
	Imports        []*ImportSpecifier
	NamedReExports []*NamedReExport
	StarReExports  []*StarReExport
}

func (s *SourceFile) Pos() Position  { return Position{Line: 1, Column: 1} }
func (s *SourceFile) String() string { return s.FileName }

var (
	_ Declaration = (*ClassDecl)(nil)
	_ Declaration = (*InterfaceDecl)(nil)
	_ Declaration = (*TypeAliasDecl)(nil)
	_ Declaration = (*EnumDecl)(nil)
	_ Declaration = (*FunctionDecl)(nil)
	_ Declaration = (*ImportSpecifier)(nil)
	_ Carrier     = (*ClassDecl)(nil)
	_ Carrier     = (*FunctionDecl)(nil)
	_ Carrier     = (*FunctionExpression)(nil)
)
