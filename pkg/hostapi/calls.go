package hostapi

// OpaqueExpr stands in for a runtime expression this transformer never
// inspects (argument values, property initializers that aren't literals).
// Only its source rendering matters for rewriting call sites around it.
type OpaqueExpr struct {
	At   Position
	Text string
}

func (o *OpaqueExpr) Pos() Position  { return o.At }
func (o *OpaqueExpr) String() string { return o.Text }

// CallExpression represents a call site. It is the node the rewriter
// (internal/rewrite) inspects for the recognized auto-type helpers
// (typeOf/valuesOf/propertiesOf) and for ReceiveType<X> parameter
// injection. CalleeName is used to recognize the auto-type helpers by
// name; for any other call, the resolver is asked to resolve the call
// expression itself (as a name occurrence) to the callee's declaration.
type CallExpression struct {
	At            Position
	CalleeName    string
	TypeArguments []TypeNode
	Arguments     []Node
}

func (c *CallExpression) Pos() Position  { return c.At }
func (c *CallExpression) String() string { return c.CalleeName + "(...)" }

// AutoTypeHelpers is the closed set of call-site names the rewriter
// recognizes unconditionally, independent of what they resolve to.
var AutoTypeHelpers = map[string]bool{
	"typeOf":       true,
	"valuesOf":     true,
	"propertiesOf": true,
}
