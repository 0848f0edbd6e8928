package hostapi

// Member is any member of a class, interface, or object type literal:
// a property, a method, a constructor, or an index signature.
type Member interface {
	Node
	MemberName() string
	memberNode()
}

// Modifiers carries the member-modifier bits spec §4.5 says always trail the
// element they modify in the emitted program.
type Modifiers struct {
	Optional  bool
	Readonly  bool
	Static    bool
	Abstract  bool
	Private   bool
	Protected bool
}

// PropertySignature is a property appearing in an interface or object type
// literal (no initializer, no visibility).
type PropertySignature struct {
	At       Position
	Name     string
	Type     TypeNode
	Doc      string
	Optional bool
	Readonly bool
}

func (p *PropertySignature) Pos() Position      { return p.At }
func (p *PropertySignature) String() string     { return p.Name + ": " + p.Type.String() }
func (p *PropertySignature) MemberName() string { return p.Name }
func (p *PropertySignature) memberNode()        {}
func (p *PropertySignature) DocComment() string { return p.Doc }

// Property is a field declared on a class, with full modifiers and an
// optional initializer expression used as the `defaultValue` operand.
type Property struct {
	At          Position
	Name        string
	Type        TypeNode
	Initializer Node
	Doc         string
	Modifiers   Modifiers
}

func (p *Property) Pos() Position      { return p.At }
func (p *Property) String() string     { return p.Name + ": " + p.Type.String() }
func (p *Property) MemberName() string { return p.Name }
func (p *Property) memberNode()        {}
func (p *Property) DocComment() string { return p.Doc }

// MethodSignature is a method appearing in an interface or object type
// literal (no body).
type MethodSignature struct {
	At             Position
	Name           string
	TypeParameters []*TypeParameter
	Parameters     []*Parameter
	ReturnType     TypeNode
	Doc            string
	Optional       bool
}

func (m *MethodSignature) Pos() Position      { return m.At }
func (m *MethodSignature) String() string     { return m.Name + "(...)" }
func (m *MethodSignature) MemberName() string { return m.Name }
func (m *MethodSignature) memberNode()        {}
func (m *MethodSignature) DocComment() string { return m.Doc }

// Method is a method declared on a class, with a body (not modeled — out of
// scope, this transformer never walks executable code) and full modifiers.
type Method struct {
	At             Position
	Name string
	TypeParameters []*TypeParameter
	Parameters     []*Parameter
	ReturnType     TypeNode
	Doc            string
	Modifiers      Modifiers
	IsConstructor  bool
}

func (m *Method) Pos() Position  { return m.At }
func (m *Method) String() string { return m.Name + "(...)" }
func (m *Method) MemberName() string {
	if m.IsConstructor {
		return "constructor"
	}
	return m.Name
}
func (m *Method) memberNode()        {}
func (m *Method) DocComment() string { return m.Doc }

// IndexSignature represents `[key: K]: V`.
type IndexSignature struct {
	At        Position
	KeyType   TypeNode
	ValueType TypeNode
}

func (i *IndexSignature) Pos() Position      { return i.At }
func (i *IndexSignature) String() string     { return "[key: " + i.KeyType.String() + "]: " + i.ValueType.String() }
func (i *IndexSignature) MemberName() string { return "" }
func (i *IndexSignature) memberNode()        {}
