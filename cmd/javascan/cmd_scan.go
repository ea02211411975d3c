package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/javascan/java"
	"github.com/dhamidi/javascan/java/javadoc"
	"github.com/dhamidi/javascan/project"
)

var log = commonlog.GetLogger("javascan.cmd")

func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan a project and print references and captured documentation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(rootArg(args))
		},
	}
}

func runScan(root string) error {
	units, err := project.Load(root)
	if err != nil {
		return fmt.Errorf("load project: %w", err)
	}

	for _, unit := range units {
		fmt.Printf("File: %s\n", unit.File)
		for _, d := range unit.Diagnostics {
			logDiagnostic(d)
		}

		refs, err := java.CollectReferences(unit)
		if err != nil {
			log.Errorf("collect references in %s: %v", unit.File, err)
			continue
		}
		for _, ref := range refs {
			fmt.Printf("  Ref %s\n", ref.Symbol)
		}

		if err := printDocCapture(unit); err != nil {
			log.Errorf("document capture in %s: %v", unit.File, err)
		}
	}
	return nil
}

// printDocCapture prints one Field line per field fragment and one Method
// line per method declaration, each followed by its documentation when the
// declaration carries any.
func printDocCapture(unit *java.ResolvedUnit) error {
	return java.Walk(unit.Root, java.Visitor{
		Pre: func(n *java.Node, _ []*java.Node) error {
			switch n.Kind {
			case java.KindFieldDecl:
				for _, fragment := range n.Children {
					if fragment.Kind != java.KindVariableFragment {
						continue
					}
					sym, ok := java.VariableName(fragment.VariableBinding())
					if !ok {
						fmt.Printf("  UNRESOLVED Field %s\n", fragment.Name)
						continue
					}
					fmt.Printf("  Field %s %s\n", sym, docText(n.Doc))
				}
			case java.KindMethodDecl:
				fmt.Printf("  Method %s %s\n", java.MethodName(n.MethodBinding()), docText(n.Doc))
			}
			return nil
		},
	})
}

// docText renders a doc comment for diagnostics: normalized prose when the
// comment normalizes, the raw text otherwise, continuation lines indented.
func docText(raw string) string {
	if raw == "" {
		return ""
	}
	prose, err := javadoc.Normalize(raw)
	if err != nil {
		prose = strings.TrimSpace(raw)
	}
	return strings.ReplaceAll(prose, "\n", "\n    ")
}

func logDiagnostic(d java.Diagnostic) {
	switch d.Severity {
	case java.SeverityError:
		log.Errorf("%s:%d: %s", d.File, d.Line, d.Message)
	case java.SeverityWarning:
		log.Warningf("%s: %s", d.File, d.Message)
	default:
		log.Infof("%s: %s", d.File, d.Message)
	}
}
