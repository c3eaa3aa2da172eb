package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/anthill/internal/cli"
	"github.com/aretw0/anthill/internal/presentation/tui"
)

var replayCmd = &cobra.Command{
	Use:   "replay <match-id>",
	Short: "Print a recorded match",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadMatch(cmd, args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		format, _ := cmd.Flags().GetString("format")
		switch format {
		case "yaml":
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(m); err != nil {
				return fmt.Errorf("encode match: %w", err)
			}
			return enc.Close()
		case "markdown":
			md := tui.MatchMarkdown(m)
			if cli.IsTerminal(out) {
				render, err := tui.NewRenderer()
				if err != nil {
					return err
				}
				if md, err = render(md); err != nil {
					return err
				}
			}
			_, err := fmt.Fprint(out, md)
			return err
		default:
			return fmt.Errorf("unknown format %q (want yaml or markdown)", format)
		}
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().StringP("format", "f", "markdown", "Output format: yaml or markdown")
}
