package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

func main() {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:   "javascan",
		Short: "Best-effort reference and javadoc scanner for Java projects",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(verbosity, nil)
		},
	}
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity")

	rootCmd.AddCommand(newScanCmd())
	rootCmd.AddCommand(newRefsCmd())
	rootCmd.AddCommand(newDocCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// rootArg returns the project root from an optional positional argument,
// defaulting to the working directory as a development convenience.
func rootArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}
