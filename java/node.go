package java

// NodeKind enumerates the node variants the analysis distinguishes.
// Everything else a source file contains maps to KindOther, which is only
// descended through.
type NodeKind int

const (
	KindOther NodeKind = iota
	KindTypeDecl
	KindFieldDecl
	KindVariableFragment
	KindMethodDecl
	KindName
	KindConstructorCall
	KindSuperConstructorCall
)

func (k NodeKind) String() string {
	switch k {
	case KindTypeDecl:
		return "type-declaration"
	case KindFieldDecl:
		return "field-declaration"
	case KindVariableFragment:
		return "variable-fragment"
	case KindMethodDecl:
		return "method-declaration"
	case KindName:
		return "name"
	case KindConstructorCall:
		return "constructor-invocation"
	case KindSuperConstructorCall:
		return "super-constructor-invocation"
	}
	return "other"
}

// Node is one node of a resolved parse tree.
//
// Declaration-site names (a type's name, a fragment's name, parameter names)
// live in the Name field of the declaration node itself and do not appear as
// child KindName nodes. The one exception is a method declaration, whose own
// name is also its first child as a KindName node bound to the method:
// reference walking needs that token to exist so it can skip it.
type Node struct {
	Kind NodeKind

	// Name is the simple name of a declaration or name reference.
	Name string

	// Doc is the raw doc comment attached to a declaration, "" when absent.
	Doc string

	// Static, Final and Constructor mirror declaration modifiers. Arity is
	// the declared parameter count of a method.
	Static      bool
	Final       bool
	Constructor bool
	Arity       int

	// Binding is the resolved identity of this node, nil when unresolved.
	Binding Binding

	Children []*Node
}

// TypeBinding returns the node's binding as a type binding, or nil.
func (n *Node) TypeBinding() *TypeBinding {
	b, _ := n.Binding.(*TypeBinding)
	return b
}

// MethodBinding returns the node's binding as a method binding, or nil.
func (n *Node) MethodBinding() *MethodBinding {
	b, _ := n.Binding.(*MethodBinding)
	return b
}

// VariableBinding returns the node's binding as a variable binding, or nil.
func (n *Node) VariableBinding() *VariableBinding {
	b, _ := n.Binding.(*VariableBinding)
	return b
}

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Diagnostic is a warning or error attached to a unit, produced either by
// the upstream parser or by the analysis itself.
type Diagnostic struct {
	Severity Severity
	File     string
	Line     int
	Message  string
}

// ResolvedUnit is one source file's parsed, type-resolved tree plus the
// diagnostics its parse produced. The caller owns it; the analysis only
// reads it and holds no state across calls.
type ResolvedUnit struct {
	File        string
	Root        *Node
	Diagnostics []Diagnostic
}
