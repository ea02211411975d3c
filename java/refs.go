package java

// ReferenceKind classifies how a symbol was used at the referencing site.
type ReferenceKind string

const (
	RefMethodCall      ReferenceKind = "method-call"
	RefConstructorCall ReferenceKind = "constructor-call"
	RefFieldAccess     ReferenceKind = "field-access"
)

// Reference describes one use of a symbol somewhere in a unit.
type Reference struct {
	Kind   ReferenceKind
	Symbol string
}

// CollectReferences walks one unit depth-first in pre-order and returns a
// record for every resolvable symbol use, in traversal order. Unresolved
// names degrade to the Sentinel or to silence per the naming rules; the walk
// of a unit never fails on bad input. The only possible error is a
// traversal-consistency failure, which aborts this unit alone.
//
// The result is a pure function of the unit, so a walk may be rerun per
// unit at will. Nothing is deduplicated here; counting is the accountant's
// job downstream.
func CollectReferences(unit *ResolvedUnit) ([]Reference, error) {
	if unit == nil || unit.Root == nil {
		return nil, nil
	}
	var refs []Reference
	err := Walk(unit.Root, Visitor{
		Pre: func(n *Node, ancestors []*Node) error {
			switch n.Kind {
			case KindName:
				if ref, ok := nameReference(n, ancestors); ok {
					refs = append(refs, ref)
				}
			case KindConstructorCall, KindSuperConstructorCall:
				// Always emitted; a nil binding renders whole-symbol "???".
				refs = append(refs, Reference{
					Kind:   RefConstructorCall,
					Symbol: MethodName(n.MethodBinding()),
				})
			}
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return refs, nil
}

func nameReference(n *Node, ancestors []*Node) (Reference, bool) {
	switch b := n.Binding.(type) {
	case *MethodBinding:
		// The method's own name token at its declaration is not a use.
		if parent := parentOf(ancestors); parent != nil && parent.Kind == KindMethodDecl {
			return Reference{}, false
		}
		return Reference{Kind: RefMethodCall, Symbol: MethodName(b)}, true
	case *VariableBinding:
		sym, ok := VariableName(b)
		if !ok {
			return Reference{}, false
		}
		return Reference{Kind: RefFieldAccess, Symbol: sym}, true
	}
	return Reference{}, false
}

func parentOf(ancestors []*Node) *Node {
	if len(ancestors) == 0 {
		return nil
	}
	return ancestors[len(ancestors)-1]
}
