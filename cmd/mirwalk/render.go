package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"mirwalk/internal/config"
	"mirwalk/internal/emit"
	"mirwalk/internal/explore"
)

var (
	renderFormat string
	renderFn     string
	renderOut    string
)

func init() {
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "", "output format (markdown|json|mermaid|dot|ascii)")
	renderCmd.Flags().StringVar(&renderFn, "fn", "", "function to render for per-function formats")
	renderCmd.Flags().StringVarP(&renderOut, "output", "o", "", "write to file instead of stdout")
}

var renderCmd = &cobra.Command{
	Use:   "render <dump.json>",
	Short: "Render a MIR dump into a report or diagram",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := runPipeline(cmd, args[0])
		if err != nil {
			return err
		}

		format := strings.ToLower(renderFormat)
		if format == "" {
			cfg, err := config.Load(".")
			if err != nil {
				return err
			}
			format = cfg.Output.Format
		}

		text, err := renderAs(out, format)
		if err != nil {
			return err
		}
		if renderOut != "" {
			return os.WriteFile(renderOut, []byte(text), 0o644)
		}
		fmt.Fprint(cmd.OutOrStdout(), text)
		return nil
	},
}

func renderAs(m *explore.Module, format string) (string, error) {
	switch format {
	case "markdown":
		return emit.Markdown(m), nil
	case "json":
		return emit.JSON(m)
	case "mermaid", "dot", "ascii":
		fn, err := pickFunction(m, renderFn)
		if err != nil {
			return "", err
		}
		switch format {
		case "mermaid":
			return emit.Mermaid(fn), nil
		case "dot":
			return emit.Dot(fn), nil
		default:
			return emit.ASCII(fn), nil
		}
	default:
		return "", fmt.Errorf("unsupported format %q (must be markdown|json|mermaid|dot|ascii)", format)
	}
}
