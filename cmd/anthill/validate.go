package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/anthill/internal/cli"
	"github.com/aretw0/anthill/internal/presentation/tui"
)

var validateCmd = &cobra.Command{
	Use:   "validate [transcript]",
	Short: "Check an engine transcript against the protocol",
	Long: `Drives the transcript through the turn loop with the idle bot and reports the
first fatal error. Reads stdin when no file is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := cmd.InOrStdin()
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}

		outcome, err := cli.Validate(cmd.Context(), in, cfg.Protocol.StrictSetup, logger)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		summary := cli.Summary(outcome)
		out := cmd.OutOrStdout()
		if cli.IsTerminal(out) {
			if render, err := tui.NewRenderer(); err == nil {
				if s, err := render(summary); err == nil {
					summary = s
				}
			}
		}
		fmt.Fprint(out, summary)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().Bool("strict", false, "Treat malformed setup lines as fatal")
}
