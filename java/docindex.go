package java

import (
	"errors"
	"fmt"

	"github.com/dhamidi/javascan/java/javadoc"
)

// ClassKey is the reserved member key for a type's own doc comment.
const ClassKey = ":class"

// TypeDocIndex maps a member key to normalized documentation for exactly one
// type declaration. Member keys are field fragment names and property keys
// derived from single-argument setters; ClassKey holds the type-level doc.
// A key is present only when its declaration carries a doc comment.
type TypeDocIndex map[string]string

// BuildDocIndex visits every type declaration in every unit, nested types
// included, and returns the aggregate index keyed by qualified type name
// plus the diagnostics the build produced.
//
// Units are processed in order and every type declaration is indexed
// independently: when the same qualified name occurs more than once
// (duplicate or partial parses) the last declaration processed wins.
//
// A type declaration without a resolved binding cannot key the aggregate
// map; it is skipped with a diagnostic and the scan continues. A malformed
// doc comment aborts the build: delimiters are an upstream guarantee, so a
// violation is a collaborator bug, not input to tolerate.
func BuildDocIndex(units []*ResolvedUnit) (map[string]TypeDocIndex, []Diagnostic, error) {
	b := docIndexBuilder{index: make(map[string]TypeDocIndex)}
	for _, unit := range units {
		if unit == nil || unit.Root == nil {
			continue
		}
		err := Walk(unit.Root, Visitor{
			Pre: func(n *Node, _ []*Node) error {
				if n.Kind != KindTypeDecl {
					return nil
				}
				return b.typeDecl(unit, n)
			},
		})
		if errors.Is(err, ErrTraversal) {
			// A broken walk poisons this unit only; the rest still index.
			b.diags = append(b.diags, Diagnostic{
				Severity: SeverityError,
				File:     unit.File,
				Message:  err.Error(),
			})
			continue
		}
		if err != nil {
			return nil, b.diags, err
		}
	}
	return b.index, b.diags, nil
}

// docIndexBuilder threads the accumulators through the traversal so their
// ownership stays with the build call, never with shared package state.
type docIndexBuilder struct {
	index map[string]TypeDocIndex
	diags []Diagnostic
}

func (b *docIndexBuilder) typeDecl(unit *ResolvedUnit, decl *Node) error {
	binding := decl.TypeBinding()
	if binding == nil {
		b.diags = append(b.diags, Diagnostic{
			Severity: SeverityWarning,
			File:     unit.File,
			Message:  fmt.Sprintf("type %s has no resolved binding, skipping documentation index", decl.Name),
		})
		return nil
	}

	index := make(TypeDocIndex)
	if decl.Doc != "" {
		if err := b.entry(unit, index, ClassKey, decl.Doc); err != nil {
			return err
		}
	}
	for _, member := range decl.Children {
		switch member.Kind {
		case KindFieldDecl:
			// Static and final fields carry no configuration semantics.
			if member.Static || member.Final || member.Doc == "" {
				continue
			}
			for _, fragment := range member.Children {
				if fragment.Kind != KindVariableFragment {
					continue
				}
				if err := b.entry(unit, index, fragment.Name, member.Doc); err != nil {
					return err
				}
			}
		case KindMethodDecl:
			if member.Static || member.Constructor || member.Doc == "" {
				continue
			}
			key, ok := PropertyKey(member.Name, member.Arity)
			if !ok {
				continue
			}
			if err := b.entry(unit, index, key, member.Doc); err != nil {
				return err
			}
		}
	}
	b.index[TypeName(binding)] = index
	return nil
}

func (b *docIndexBuilder) entry(unit *ResolvedUnit, index TypeDocIndex, key, raw string) error {
	prose, err := javadoc.Normalize(raw)
	if err != nil {
		if errors.Is(err, javadoc.ErrNoProse) {
			b.diags = append(b.diags, Diagnostic{
				Severity: SeverityWarning,
				File:     unit.File,
				Message:  fmt.Sprintf("doc comment for %s has no prose", key),
			})
			return nil
		}
		return fmt.Errorf("doc comment for %s in %s: %w", key, unit.File, err)
	}
	index[key] = prose
	return nil
}
