package project

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/dhamidi/javascan/java"
)

func isTypeDecl(kind string) bool {
	switch kind {
	case "class_declaration", "interface_declaration", "enum_declaration",
		"record_declaration", "annotation_type_declaration":
		return true
	}
	return false
}

// converter turns one tree-sitter parse into a resolved unit. It carries the
// enclosing-class stack and the local-variable environment of the method
// being converted; anything it cannot resolve stays unbound rather than
// failing. Missing resolution is the normal operating mode, not an error.
type converter struct {
	file   string
	source []byte
	table  *symbolTable
	ctx    nameContext

	classes []*classInfo      // enclosing types, innermost last
	locals  map[string]string // local/parameter name -> declared type as written
	diags   []java.Diagnostic
}

func convertUnit(file string, root *sitter.Node, source []byte, table *symbolTable) *java.ResolvedUnit {
	c := &converter{
		file:   file,
		source: source,
		table:  table,
		ctx:    fileContext(root, source),
	}
	c.collectParseErrors(root)
	return &java.ResolvedUnit{
		File:        file,
		Root:        c.compilationUnit(root),
		Diagnostics: c.diags,
	}
}

func (c *converter) text(n *sitter.Node) string { return text(n, c.source) }

func (c *converter) collectParseErrors(n *sitter.Node) {
	if !n.HasError() {
		return
	}
	if n.Type() == "ERROR" || n.IsMissing() {
		c.diags = append(c.diags, java.Diagnostic{
			Severity: java.SeverityError,
			File:     c.file,
			Line:     int(n.StartPoint().Row) + 1,
			Message:  "syntax error",
		})
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c.collectParseErrors(n.Child(i))
	}
}

func (c *converter) compilationUnit(root *sitter.Node) *java.Node {
	unit := &java.Node{Kind: java.KindOther}
	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		if isTypeDecl(child.Type()) {
			unit.Children = append(unit.Children, c.typeDecl(child))
		}
	}
	return unit
}

func (c *converter) typeDecl(n *sitter.Node) *java.Node {
	simple := ""
	if nameNode := n.ChildByFieldName("name"); nameNode != nil {
		simple = c.text(nameNode)
	}
	qualified := c.qualify(simple)

	decl := &java.Node{
		Kind: java.KindTypeDecl,
		Name: simple,
		Doc:  c.docFor(n),
	}
	ci := c.table.classes[qualified]
	if ci != nil {
		decl.Binding = &java.TypeBinding{Name: qualified}
	}

	c.classes = append(c.classes, ci)
	if body := n.ChildByFieldName("body"); body != nil {
		c.members(decl, body)
	}
	c.classes = c.classes[:len(c.classes)-1]
	return decl
}

func (c *converter) qualify(simple string) string {
	if ci := c.currentClass(); ci != nil {
		return ci.qualified + "." + simple
	}
	if c.ctx.pkg != "" {
		return c.ctx.pkg + "." + simple
	}
	return simple
}

func (c *converter) currentClass() *classInfo {
	for i := len(c.classes) - 1; i >= 0; i-- {
		if c.classes[i] != nil {
			return c.classes[i]
		}
	}
	return nil
}

func (c *converter) currentClassBinding() *java.TypeBinding {
	if ci := c.currentClass(); ci != nil {
		return &java.TypeBinding{Name: ci.qualified}
	}
	return nil
}

func (c *converter) members(decl *java.Node, body *sitter.Node) {
	for i := 0; i < int(body.NamedChildCount()); i++ {
		member := body.NamedChild(i)
		switch {
		case isTypeDecl(member.Type()):
			decl.Children = append(decl.Children, c.typeDecl(member))
		case member.Type() == "field_declaration":
			decl.Children = append(decl.Children, c.fieldDecl(member))
		case member.Type() == "method_declaration" || member.Type() == "constructor_declaration":
			decl.Children = append(decl.Children, c.methodDecl(member))
		case member.Type() == "enum_body_declarations":
			c.members(decl, member)
		case member.Type() == "static_initializer" || member.Type() == "block":
			if child := c.expr(member); child != nil {
				decl.Children = append(decl.Children, child)
			}
		}
	}
}

func (c *converter) fieldDecl(n *sitter.Node) *java.Node {
	static, final := modifiers(n)
	decl := &java.Node{
		Kind:   java.KindFieldDecl,
		Doc:    c.docFor(n),
		Static: static,
		Final:  final,
	}
	owner := c.currentClassBinding()
	for i := 0; i < int(n.NamedChildCount()); i++ {
		d := n.NamedChild(i)
		if d.Type() != "variable_declarator" {
			continue
		}
		fragment := &java.Node{Kind: java.KindVariableFragment}
		if name := d.ChildByFieldName("name"); name != nil {
			fragment.Name = c.text(name)
		}
		if owner != nil && fragment.Name != "" {
			fragment.Binding = &java.VariableBinding{DeclaringClass: owner, Name: fragment.Name}
		}
		if value := d.ChildByFieldName("value"); value != nil {
			if e := c.expr(value); e != nil {
				fragment.Children = append(fragment.Children, e)
			}
		}
		decl.Children = append(decl.Children, fragment)
	}
	return decl
}

func (c *converter) methodDecl(n *sitter.Node) *java.Node {
	static, final := modifiers(n)
	ctor := n.Type() == "constructor_declaration"
	name := ""
	if nn := n.ChildByFieldName("name"); nn != nil {
		name = c.text(nn)
	}
	raw := paramTypes(n, c.source)

	decl := &java.Node{
		Kind:        java.KindMethodDecl,
		Name:        name,
		Doc:         c.docFor(n),
		Static:      static,
		Final:       final,
		Constructor: ctor,
		Arity:       len(raw),
	}

	var binding *java.MethodBinding
	if ci := c.currentClass(); ci != nil {
		if ctor {
			if m := c.table.findConstructor(ci, len(raw)); m != nil {
				binding = c.table.methodBinding(ci, m)
			}
		} else if dc, m := c.table.findMethod(ci, name, len(raw)); m != nil {
			binding = c.table.methodBinding(dc, m)
		}
	}
	if binding != nil {
		decl.Binding = binding
	}

	// The declaration's own name token, bound to the method itself. The
	// reference walker recognizes it by its parent and skips it: only uses
	// count.
	nameChild := &java.Node{Kind: java.KindName, Name: name}
	if binding != nil {
		nameChild.Binding = binding
	}
	decl.Children = append(decl.Children, nameChild)

	outer := c.locals
	c.locals = make(map[string]string)
	if params := n.ChildByFieldName("parameters"); params != nil {
		for i := 0; i < int(params.NamedChildCount()); i++ {
			c.declareParameter(params.NamedChild(i))
		}
	}
	if body := n.ChildByFieldName("body"); body != nil {
		c.collectLocals(body)
		if e := c.expr(body); e != nil {
			decl.Children = append(decl.Children, e)
		}
	}
	c.locals = outer
	return decl
}

func (c *converter) declareParameter(p *sitter.Node) {
	if p.Type() != "formal_parameter" && p.Type() != "spread_parameter" {
		return
	}
	tpe := ""
	if tn := p.ChildByFieldName("type"); tn != nil {
		tpe = c.text(tn)
	}
	if nn := p.ChildByFieldName("name"); nn != nil {
		c.locals[c.text(nn)] = tpe
		return
	}
	// Spread parameters keep their name in a variable_declarator.
	for i := 0; i < int(p.NamedChildCount()); i++ {
		d := p.NamedChild(i)
		if d.Type() == "variable_declarator" {
			if nn := d.ChildByFieldName("name"); nn != nil {
				c.locals[c.text(nn)] = tpe
			}
		}
	}
}

// collectLocals records every local declared anywhere in a method body
// before the body converts. Java requires declaration before use, so the
// flat pre-pass only errs towards treating a shadowed field as a local,
// which suppresses a record instead of inventing one.
func (c *converter) collectLocals(n *sitter.Node) {
	if isTypeDecl(n.Type()) {
		return
	}
	switch n.Type() {
	case "local_variable_declaration":
		tpe := ""
		if tn := n.ChildByFieldName("type"); tn != nil {
			tpe = c.text(tn)
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			d := n.NamedChild(i)
			if d.Type() != "variable_declarator" {
				continue
			}
			if nn := d.ChildByFieldName("name"); nn != nil {
				c.locals[c.text(nn)] = tpe
			}
		}
	case "enhanced_for_statement", "catch_formal_parameter", "resource":
		tpe := ""
		if tn := n.ChildByFieldName("type"); tn != nil {
			tpe = c.text(tn)
		}
		if nn := n.ChildByFieldName("name"); nn != nil {
			c.locals[c.text(nn)] = tpe
		}
	case "lambda_expression":
		if pn := n.ChildByFieldName("parameters"); pn != nil {
			c.declareLambdaParams(pn)
		}
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c.collectLocals(n.NamedChild(i))
	}
}

func (c *converter) declareLambdaParams(pn *sitter.Node) {
	if pn.Type() == "identifier" {
		c.locals[c.text(pn)] = ""
		return
	}
	for i := 0; i < int(pn.NamedChildCount()); i++ {
		p := pn.NamedChild(i)
		switch p.Type() {
		case "identifier":
			c.locals[c.text(p)] = ""
		case "formal_parameter", "spread_parameter":
			c.declareParameter(p)
		case "inferred_parameters":
			c.declareLambdaParams(p)
		}
	}
}

// expr converts an expression or statement subtree. It returns nil for
// subtrees carrying nothing the analysis looks at.
func (c *converter) expr(n *sitter.Node) *java.Node {
	switch n.Type() {
	case "identifier":
		return c.identifier(n)
	case "field_access":
		return c.fieldAccess(n)
	case "method_invocation":
		return c.methodInvocation(n)
	case "explicit_constructor_invocation":
		return c.constructorInvocation(n)
	case "object_creation_expression":
		return c.objectCreation(n)
	case "line_comment", "block_comment":
		return nil
	}
	if isTypeDecl(n.Type()) {
		// Local classes get the full declaration treatment.
		return c.typeDecl(n)
	}
	node := &java.Node{Kind: java.KindOther}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if child := c.expr(n.NamedChild(i)); child != nil {
			node.Children = append(node.Children, child)
		}
	}
	if len(node.Children) == 0 {
		return nil
	}
	return node
}

func (c *converter) identifier(n *sitter.Node) *java.Node {
	name := c.text(n)
	node := &java.Node{Kind: java.KindName, Name: name}
	if _, ok := c.locals[name]; ok {
		// Locals resolve but carry no declaring type, so they never render.
		node.Binding = &java.VariableBinding{Name: name}
		return node
	}
	if ci := c.currentClass(); ci != nil {
		if owner, _, ok := c.table.findField(ci, name); ok {
			node.Binding = &java.VariableBinding{
				DeclaringClass: &java.TypeBinding{Name: owner.qualified},
				Name:           name,
			}
			return node
		}
	}
	if b := c.table.resolveScalar(name, c.ctx); b != nil {
		node.Binding = b
	}
	return node
}

func (c *converter) fieldAccess(n *sitter.Node) *java.Node {
	object := n.ChildByFieldName("object")
	fieldNode := n.ChildByFieldName("field")

	node := &java.Node{Kind: java.KindOther}
	if object != nil {
		if o := c.expr(object); o != nil {
			node.Children = append(node.Children, o)
		}
	}
	if fieldNode != nil && fieldNode.Type() == "identifier" {
		name := c.text(fieldNode)
		ref := &java.Node{Kind: java.KindName, Name: name}
		if owner := c.receiverClass(object); owner != nil {
			if dc, _, ok := c.table.findField(owner, name); ok {
				ref.Binding = &java.VariableBinding{
					DeclaringClass: &java.TypeBinding{Name: dc.qualified},
					Name:           name,
				}
			}
		}
		node.Children = append(node.Children, ref)
	}
	if len(node.Children) == 0 {
		return nil
	}
	return node
}

func (c *converter) methodInvocation(n *sitter.Node) *java.Node {
	object := n.ChildByFieldName("object")
	nameNode := n.ChildByFieldName("name")
	args := n.ChildByFieldName("arguments")

	node := &java.Node{Kind: java.KindOther}
	if object != nil {
		if o := c.expr(object); o != nil {
			node.Children = append(node.Children, o)
		}
	}
	argc := 0
	if args != nil {
		argc = int(args.NamedChildCount())
	}
	if nameNode != nil {
		name := c.text(nameNode)
		ref := &java.Node{Kind: java.KindName, Name: name}
		if owner := c.receiverClass(object); owner != nil {
			if dc, m := c.table.findMethod(owner, name, argc); m != nil {
				ref.Binding = c.table.methodBinding(dc, m)
			}
		}
		node.Children = append(node.Children, ref)
	}
	if args != nil {
		if a := c.expr(args); a != nil {
			node.Children = append(node.Children, a)
		}
	}
	if len(node.Children) == 0 {
		return nil
	}
	return node
}

func (c *converter) constructorInvocation(n *sitter.Node) *java.Node {
	kind := java.KindConstructorCall
	target := c.currentClass()
	if cn := n.ChildByFieldName("constructor"); cn != nil && cn.Type() == "super" {
		kind = java.KindSuperConstructorCall
		if target != nil {
			target = c.table.classes[target.super]
		}
	}
	args := n.ChildByFieldName("arguments")
	argc := 0
	if args != nil {
		argc = int(args.NamedChildCount())
	}

	node := &java.Node{Kind: kind}
	if target != nil {
		if m := c.table.findConstructor(target, argc); m != nil {
			node.Binding = c.table.methodBinding(target, m)
		} else {
			// The class is known but no declared constructor matches
			// (implicit default constructor, unusual arity): keep the class
			// and admit the missing parameter information.
			node.Binding = &java.MethodBinding{
				DeclaringClass: &java.TypeBinding{Name: target.qualified},
				Name:           target.simple,
				Constructor:    true,
			}
		}
	}
	if args != nil {
		if a := c.expr(args); a != nil {
			node.Children = append(node.Children, a)
		}
	}
	return node
}

// objectCreation converts new-expressions. A creation site always yields a
// constructor-call node: when the created type is outside the project the
// node simply stays unbound.
func (c *converter) objectCreation(n *sitter.Node) *java.Node {
	args := n.ChildByFieldName("arguments")
	argc := 0
	if args != nil {
		argc = int(args.NamedChildCount())
	}

	node := &java.Node{Kind: java.KindConstructorCall}
	if tn := n.ChildByFieldName("type"); tn != nil {
		if target := c.classForType(c.text(tn), c.ctx); target != nil {
			if m := c.table.findConstructor(target, argc); m != nil {
				node.Binding = c.table.methodBinding(target, m)
			} else {
				node.Binding = &java.MethodBinding{
					DeclaringClass: &java.TypeBinding{Name: target.qualified},
					Name:           target.simple,
					Constructor:    true,
				}
			}
		}
	}
	if args != nil {
		if a := c.expr(args); a != nil {
			node.Children = append(node.Children, a)
		}
	}
	// Anonymous class bodies still get walked for uses.
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() == "class_body" {
			if b := c.expr(child); b != nil {
				node.Children = append(node.Children, b)
			}
		}
	}
	return node
}

// receiverClass decides which class a member access resolves against: the
// enclosing class for implicit and this receivers, the declared type of a
// local or field for simple-name receivers, or the named class itself for
// static-style access. Chained or computed receivers stay unresolved.
func (c *converter) receiverClass(object *sitter.Node) *classInfo {
	if object == nil {
		return c.currentClass()
	}
	switch object.Type() {
	case "this":
		return c.currentClass()
	case "identifier":
		name := c.text(object)
		if tpe, ok := c.locals[name]; ok {
			return c.classForType(tpe, c.ctx)
		}
		if ci := c.currentClass(); ci != nil {
			if owner, tpe, ok := c.table.findField(ci, name); ok {
				return c.classForType(tpe, owner.ctx)
			}
		}
		if b := c.table.resolveScalar(name, c.ctx); b != nil && !b.Primitive {
			return c.table.classes[b.Name]
		}
	}
	return nil
}

func (c *converter) classForType(tpe string, ctx nameContext) *classInfo {
	b := c.table.resolve(tpe, ctx)
	if b == nil || b.Primitive || b.Elem != nil {
		return nil
	}
	return c.table.classes[b.Name]
}

func (c *converter) docFor(n *sitter.Node) string {
	prev := n.PrevNamedSibling()
	if prev == nil || prev.Type() != "block_comment" {
		return ""
	}
	raw := c.text(prev)
	if !strings.HasPrefix(raw, "/**") {
		return ""
	}
	return raw
}

func modifiers(n *sitter.Node) (static, final bool) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() != "modifiers" {
			continue
		}
		for j := 0; j < int(child.ChildCount()); j++ {
			switch child.Child(j).Type() {
			case "static":
				static = true
			case "final":
				final = true
			}
		}
	}
	return static, final
}
