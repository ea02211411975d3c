package java

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Sentinel is the rendered placeholder for "binding could not be resolved".
// It is a formatting artifact, not a symbol: no real program contains it as
// a qualified name, and downstream consumers must never treat it as one.
const Sentinel = "???"

// TypeName renders a type binding as a canonical name: the keyword for
// primitives, the element name followed by "[]" per array dimension, the
// qualified name otherwise. A nil binding renders as Sentinel.
//
// Names are pure functions of resolved names, never of node position or
// traversal order, so identical symbols render identically across
// independent scans.
func TypeName(b *TypeBinding) string {
	switch {
	case b == nil:
		return Sentinel
	case b.Primitive:
		return b.Name
	case b.Elem != nil:
		return TypeName(b.Elem) + "[]"
	default:
		return b.Name
	}
}

// MethodName renders a method binding as DeclaringClass::name(p1,p2). The
// parameter list renders as the literal "null" when no parameter information
// exists at all, which keeps it distinguishable from a present list with an
// unresolvable entry (that entry renders as Sentinel). A nil binding renders
// as Sentinel alone.
func MethodName(b *MethodBinding) string {
	if b == nil {
		return Sentinel
	}
	params := "null"
	if b.Params != nil {
		names := make([]string, len(b.Params))
		for i, p := range b.Params {
			names[i] = TypeName(p)
		}
		params = strings.Join(names, ",")
	}
	return TypeName(b.DeclaringClass) + "::" + b.Name + "(" + params + ")"
}

// VariableName renders a variable binding as DeclaringClass::name. The
// second return is false for unresolved bindings and for locals and
// parameters (no declaring type): those produce no name at all rather than
// a sentinel, because local references are never emitted as records.
func VariableName(b *VariableBinding) (string, bool) {
	if b == nil || b.DeclaringClass == nil {
		return "", false
	}
	return TypeName(b.DeclaringClass) + "::" + b.Name, true
}

// PropertyKey maps a single-argument setter name onto its property key:
// setMaxRetries becomes maxRetries. The second return is false when the
// method is not a property writer: wrong prefix, nothing after "set", a
// non-uppercase rune after "set", or an arity other than one.
func PropertyKey(name string, arity int) (string, bool) {
	if arity != 1 || !strings.HasPrefix(name, "set") || len(name) <= 3 {
		return "", false
	}
	r, size := utf8.DecodeRuneInString(name[3:])
	if !unicode.IsUpper(r) {
		return "", false
	}
	return string(unicode.ToLower(r)) + name[3+size:], true
}
