package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/javascan/java"
	"github.com/dhamidi/javascan/project"
)

func newRefsCmd() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "refs [path]",
		Short: "Print one line per symbol reference in the project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRefs(rootArg(args), java.ReferenceKind(kind))
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "",
		"only print references of this kind (method-call, constructor-call, field-access)")

	return cmd
}

func runRefs(root string, kind java.ReferenceKind) error {
	units, err := project.Load(root)
	if err != nil {
		return fmt.Errorf("load project: %w", err)
	}
	for _, unit := range units {
		refs, err := java.CollectReferences(unit)
		if err != nil {
			log.Errorf("collect references in %s: %v", unit.File, err)
			continue
		}
		for _, ref := range refs {
			if kind != "" && ref.Kind != kind {
				continue
			}
			fmt.Printf("Ref %s\n", ref.Symbol)
		}
	}
	return nil
}
