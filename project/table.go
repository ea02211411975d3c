package project

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/dhamidi/javascan/java"
)

// nameContext is the import environment of one source file.
type nameContext struct {
	pkg       string
	imports   map[string]string // simple name -> qualified name
	wildcards []string          // package prefixes from .* imports
}

// methodInfo describes one declared method or constructor.
type methodInfo struct {
	name        string
	constructor bool
	rawParams   []string            // parameter types as written, nil when the parse had none
	params      []*java.TypeBinding // resolved by resolveAll, entries nil when unresolvable
}

// classInfo describes one declared type together with the file context
// needed to resolve names appearing in its members.
type classInfo struct {
	qualified string
	simple    string
	ctx       nameContext
	superRaw  string            // superclass as written, "" when none
	super     string            // qualified superclass, "" when not a project type
	fields    map[string]string // field name -> declared type as written
	methods   []*methodInfo
}

// symbolTable is the project-wide view of declared types. The loader fills
// it from every parsed file before converting any file, so cross-file
// references resolve regardless of parse order. Anything not in the table
// (external dependencies, missing classpath) simply stays unresolved.
type symbolTable struct {
	classes  map[string]*classInfo
	bySimple map[string][]string
}

func newSymbolTable() *symbolTable {
	return &symbolTable{
		classes:  make(map[string]*classInfo),
		bySimple: make(map[string][]string),
	}
}

func (t *symbolTable) addFile(root *sitter.Node, source []byte) {
	ctx := fileContext(root, source)
	for i := 0; i < int(root.NamedChildCount()); i++ {
		t.addDecl(root.NamedChild(i), source, ctx, "")
	}
}

func (t *symbolTable) addDecl(n *sitter.Node, source []byte, ctx nameContext, enclosing string) {
	if !isTypeDecl(n.Type()) {
		return
	}
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	simple := text(nameNode, source)
	qualified := simple
	switch {
	case enclosing != "":
		qualified = enclosing + "." + simple
	case ctx.pkg != "":
		qualified = ctx.pkg + "." + simple
	}

	ci := &classInfo{
		qualified: qualified,
		simple:    simple,
		ctx:       ctx,
		fields:    make(map[string]string),
	}
	if sup := n.ChildByFieldName("superclass"); sup != nil {
		ci.superRaw = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text(sup, source)), "extends"))
	}
	if body := n.ChildByFieldName("body"); body != nil {
		t.addMembers(ci, body, source, ctx, qualified)
	}
	t.classes[qualified] = ci
	t.bySimple[simple] = append(t.bySimple[simple], qualified)
}

func (t *symbolTable) addMembers(ci *classInfo, body *sitter.Node, source []byte, ctx nameContext, qualified string) {
	for i := 0; i < int(body.NamedChildCount()); i++ {
		member := body.NamedChild(i)
		switch member.Type() {
		case "field_declaration":
			fieldType := ""
			if tn := member.ChildByFieldName("type"); tn != nil {
				fieldType = text(tn, source)
			}
			for j := 0; j < int(member.NamedChildCount()); j++ {
				decl := member.NamedChild(j)
				if decl.Type() != "variable_declarator" {
					continue
				}
				if name := decl.ChildByFieldName("name"); name != nil {
					ci.fields[text(name, source)] = fieldType
				}
			}
		case "method_declaration", "constructor_declaration":
			m := &methodInfo{constructor: member.Type() == "constructor_declaration"}
			if name := member.ChildByFieldName("name"); name != nil {
				m.name = text(name, source)
			}
			m.rawParams = paramTypes(member, source)
			ci.methods = append(ci.methods, m)
		case "enum_body_declarations":
			t.addMembers(ci, member, source, ctx, qualified)
		}
		if isTypeDecl(member.Type()) {
			t.addDecl(member, source, ctx, qualified)
		}
	}
}

// resolveAll resolves member signatures and superclasses once every file has
// been registered. Unresolvable entries stay nil.
func (t *symbolTable) resolveAll() {
	for _, ci := range t.classes {
		if ci.superRaw != "" {
			if b := t.resolve(ci.superRaw, ci.ctx); b != nil && !b.Primitive && b.Elem == nil {
				if _, ok := t.classes[b.Name]; ok {
					ci.super = b.Name
				}
			}
		}
		for _, m := range ci.methods {
			if m.rawParams == nil {
				continue
			}
			m.params = make([]*java.TypeBinding, len(m.rawParams))
			for i, raw := range m.rawParams {
				m.params[i] = t.resolve(raw, ci.ctx)
			}
		}
	}
}

var primitives = map[string]bool{
	"boolean": true, "byte": true, "char": true, "short": true,
	"int": true, "long": true, "float": true, "double": true, "void": true,
}

// javaLang lists types usable without an import. Only the common ones: an
// unlisted type resolves to nothing, which is the degradation the analysis
// is built for.
var javaLang = map[string]bool{
	"Object": true, "String": true, "CharSequence": true, "StringBuilder": true,
	"Boolean": true, "Byte": true, "Character": true, "Short": true,
	"Integer": true, "Long": true, "Float": true, "Double": true,
	"Number": true, "Void": true, "Class": true, "Math": true,
	"System": true, "Thread": true, "Runnable": true, "Iterable": true,
	"Comparable": true, "Throwable": true, "Error": true, "Exception": true,
	"RuntimeException": true, "IllegalArgumentException": true,
	"IllegalStateException": true, "NullPointerException": true,
	"UnsupportedOperationException": true,
}

// resolve turns a type as written into a binding: generics erased, array
// suffixes counted, the scalar resolved against primitives, imports, the
// file's package, wildcard imports, java.lang and finally a unique simple
// name anywhere in the project. Returns nil when nothing matches.
func (t *symbolTable) resolve(raw string, ctx nameContext) *java.TypeBinding {
	name := strings.TrimSpace(raw)
	if name == "" {
		return nil
	}
	if i := strings.IndexByte(name, '<'); i >= 0 {
		suffix := strings.Repeat("[]", strings.Count(name[i:], "[]"))
		name = strings.TrimSpace(name[:i]) + suffix
	}
	depth := 0
	for strings.HasSuffix(name, "[]") {
		name = strings.TrimSpace(strings.TrimSuffix(name, "[]"))
		depth++
	}
	b := t.resolveScalar(name, ctx)
	for i := 0; i < depth && b != nil; i++ {
		b = &java.TypeBinding{Elem: b}
	}
	return b
}

func (t *symbolTable) resolveScalar(name string, ctx nameContext) *java.TypeBinding {
	if primitives[name] {
		return &java.TypeBinding{Name: name, Primitive: true}
	}
	if q, ok := ctx.imports[name]; ok {
		return &java.TypeBinding{Name: q}
	}
	if ctx.pkg != "" {
		if _, ok := t.classes[ctx.pkg+"."+name]; ok {
			return &java.TypeBinding{Name: ctx.pkg + "." + name}
		}
	}
	if _, ok := t.classes[name]; ok {
		return &java.TypeBinding{Name: name}
	}
	if strings.Contains(name, ".") {
		// Already qualified, or Outer.Inner relative to the package.
		if _, ok := t.classes[ctx.pkg+"."+name]; ok && ctx.pkg != "" {
			return &java.TypeBinding{Name: ctx.pkg + "." + name}
		}
		return &java.TypeBinding{Name: name}
	}
	for _, w := range ctx.wildcards {
		if _, ok := t.classes[w+"."+name]; ok {
			return &java.TypeBinding{Name: w + "." + name}
		}
	}
	if javaLang[name] {
		return &java.TypeBinding{Name: "java.lang." + name}
	}
	if qs := t.bySimple[name]; len(qs) == 1 {
		return &java.TypeBinding{Name: qs[0]}
	}
	return nil
}

// findMethod looks a method up in the class and its known superclass chain,
// preferring an exact arity match among overloads. Ambiguous overloads stay
// unresolved rather than guessed.
func (t *symbolTable) findMethod(ci *classInfo, name string, argc int) (*classInfo, *methodInfo) {
	seen := make(map[string]bool)
	for c := ci; c != nil && !seen[c.qualified]; c = t.classes[c.super] {
		seen[c.qualified] = true
		var candidates []*methodInfo
		for _, m := range c.methods {
			if !m.constructor && m.name == name {
				candidates = append(candidates, m)
			}
		}
		for _, m := range candidates {
			if len(m.rawParams) == argc {
				return c, m
			}
		}
		if len(candidates) == 1 {
			return c, candidates[0]
		}
		if len(candidates) > 1 {
			return nil, nil
		}
	}
	return nil, nil
}

func (t *symbolTable) findConstructor(ci *classInfo, argc int) *methodInfo {
	var candidates []*methodInfo
	for _, m := range ci.methods {
		if m.constructor {
			candidates = append(candidates, m)
		}
	}
	for _, m := range candidates {
		if len(m.rawParams) == argc {
			return m
		}
	}
	if len(candidates) == 1 {
		return candidates[0]
	}
	return nil
}

// findField returns the class in the superclass chain that declares the
// field, plus the field's declared type as written in that class's file.
func (t *symbolTable) findField(ci *classInfo, name string) (*classInfo, string, bool) {
	seen := make(map[string]bool)
	for c := ci; c != nil && !seen[c.qualified]; c = t.classes[c.super] {
		seen[c.qualified] = true
		if ft, ok := c.fields[name]; ok {
			return c, ft, true
		}
	}
	return nil, "", false
}

func (t *symbolTable) methodBinding(c *classInfo, m *methodInfo) *java.MethodBinding {
	return &java.MethodBinding{
		DeclaringClass: &java.TypeBinding{Name: c.qualified},
		Name:           m.name,
		Params:         m.params,
		Constructor:    m.constructor,
	}
}

func fileContext(root *sitter.Node, source []byte) nameContext {
	ctx := nameContext{imports: make(map[string]string)}
	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		switch child.Type() {
		case "package_declaration":
			for j := 0; j < int(child.NamedChildCount()); j++ {
				c := child.NamedChild(j)
				if c.Type() == "identifier" || c.Type() == "scoped_identifier" {
					ctx.pkg = text(c, source)
				}
			}
		case "import_declaration":
			addImport(&ctx, child, source)
		}
	}
	return ctx
}

func addImport(ctx *nameContext, n *sitter.Node, source []byte) {
	stmt := strings.TrimSpace(text(n, source))
	stmt = strings.TrimSuffix(stmt, ";")
	stmt = strings.TrimSpace(strings.TrimPrefix(stmt, "import"))
	if strings.HasPrefix(stmt, "static ") {
		// Static imports bring in members, not types.
		return
	}
	if strings.HasSuffix(stmt, ".*") {
		ctx.wildcards = append(ctx.wildcards, strings.TrimSuffix(stmt, ".*"))
		return
	}
	if i := strings.LastIndexByte(stmt, '.'); i >= 0 {
		ctx.imports[stmt[i+1:]] = stmt
	}
}

func paramTypes(decl *sitter.Node, source []byte) []string {
	params := decl.ChildByFieldName("parameters")
	if params == nil {
		return nil
	}
	out := make([]string, 0, params.NamedChildCount())
	for i := 0; i < int(params.NamedChildCount()); i++ {
		p := params.NamedChild(i)
		switch p.Type() {
		case "formal_parameter", "spread_parameter":
			if tn := p.ChildByFieldName("type"); tn != nil {
				out = append(out, text(tn, source))
			} else {
				out = append(out, "")
			}
		}
	}
	return out
}

func text(n *sitter.Node, source []byte) string {
	return string(source[n.StartByte():n.EndByte()])
}
