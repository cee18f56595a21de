package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mirwalk/internal/driver"
	"mirwalk/internal/mir"
)

var inspectRaw bool

func init() {
	inspectCmd.Flags().BoolVar(&inspectRaw, "raw", false, "dump raw MIR instead of the summary")
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <dump.json>",
	Short: "Summarize a MIR dump without analyzing it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := driver.Load(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if inspectRaw {
			return mir.DumpModule(out, m)
		}

		if !isTerminal(os.Stdout) {
			color.NoColor = true
		}
		nameColor := color.New(color.FgCyan, color.Bold)
		countColor := color.New(color.FgYellow)

		fmt.Fprintf(out, "module %s\n", nameColor.Sprint(m.Name))
		fmt.Fprintf(out, "  %s function(s)\n", countColor.Sprint(len(m.Funcs)))
		fmt.Fprintf(out, "  %s type(s), %s alloc(s), %s span(s), %s symbol(s)\n",
			countColor.Sprint(len(m.Meta.Types)),
			countColor.Sprint(len(m.Meta.Allocs)),
			countColor.Sprint(len(m.Meta.Spans)),
			countColor.Sprint(len(m.Meta.Funcs)))
		for _, f := range m.Funcs {
			fmt.Fprintf(out, "  fn %s: %d block(s), %d local(s)\n",
				nameColor.Sprint(f.Name), len(f.Blocks), len(f.Locals))
		}
		return nil
	},
}
