package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/javascan/java"
	"github.com/dhamidi/javascan/project"
)

func newDocCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doc [path]",
		Short: "Print the per-type documentation index as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoc(rootArg(args))
		},
	}
}

func runDoc(root string) error {
	units, err := project.Load(root)
	if err != nil {
		return fmt.Errorf("load project: %w", err)
	}
	index, diags, err := java.BuildDocIndex(units)
	if err != nil {
		return fmt.Errorf("build doc index: %w", err)
	}
	for _, d := range diags {
		logDiagnostic(d)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(index); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
