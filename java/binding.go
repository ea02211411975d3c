package java

// Binding is the resolved semantic identity the resolution pass attaches to
// a node. A nil Binding means "unresolved", which is a resolution-layer
// fact; how an unresolved binding renders is the namer's concern (see
// Sentinel).
type Binding interface {
	binding()
}

// TypeBinding identifies a resolved type. Primitives carry the keyword in
// Name; arrays carry their element type in Elem; everything else carries the
// qualified name in Name.
type TypeBinding struct {
	Name      string
	Primitive bool
	Elem      *TypeBinding
}

// MethodBinding identifies a resolved method or constructor.
//
// Params deliberately distinguishes two states: a nil slice means no
// parameter information was available at all, while a nil entry means that
// one parameter's type could not be resolved. The two must stay
// distinguishable in rendered names.
type MethodBinding struct {
	DeclaringClass *TypeBinding
	Name           string
	Params         []*TypeBinding
	Constructor    bool
}

// VariableBinding identifies a resolved variable. DeclaringClass is nil for
// locals and parameters; only members carry a declaring type.
type VariableBinding struct {
	DeclaringClass *TypeBinding
	Name           string
}

func (*TypeBinding) binding()     {}
func (*MethodBinding) binding()   {}
func (*VariableBinding) binding() {}
