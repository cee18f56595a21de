package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"mirwalk/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "mirwalk",
	Short: "MIR control-flow graph explorer",
	Long:  `mirwalk loads mid-level IR dumps and explores their control-flow graphs, borrows, and lifetimes`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(exploreCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("trace", "off", "trace level (off|phase|function|debug)")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Bool("no-cache", false, "bypass the analysis result cache")
	rootCmd.PersistentFlags().Bool("spans", false, "append source locations to rendered instructions")
	rootCmd.PersistentFlags().Int("alloc-depth", 0, "allocation provenance depth (0 = config default)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
