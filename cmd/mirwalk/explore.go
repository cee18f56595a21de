package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"mirwalk/internal/emit"
	"mirwalk/internal/ui"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

func shouldUseTUI(mode uiMode) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return isTerminal(os.Stdout)
	}
}

var exploreUI string

func init() {
	exploreCmd.Flags().StringVar(&exploreUI, "ui", "auto", "interactive mode (auto|on|off)")
}

var exploreCmd = &cobra.Command{
	Use:   "explore <dump.json>",
	Short: "Walk a MIR control-flow graph interactively",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := runPipeline(cmd, args[0])
		if err != nil {
			return err
		}
		mode, err := readUIMode(exploreUI)
		if err != nil {
			return err
		}
		if shouldUseTUI(mode) {
			return ui.Run(out)
		}
		// No terminal: fall back to the markdown report.
		fmt.Fprint(cmd.OutOrStdout(), emit.Markdown(out))
		return nil
	},
}
