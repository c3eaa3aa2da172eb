package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/anthill"
	"github.com/aretw0/anthill/internal/cli"
	"github.com/aretw0/anthill/internal/presentation/tui"
	"github.com/aretw0/anthill/pkg/agents"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play one game on stdin/stdout",
	Long: `Runs the turn loop with a built-in bot. The engine writes to stdin and reads
the orders from stdout; logs and the banner go to stderr.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		quiet, _ := cmd.Flags().GetBool("quiet")
		stderr := cmd.ErrOrStderr()
		if !quiet && cli.IsTerminal(stderr) {
			tui.PrintBanner(stderr, cli.ColorProfile(stderr))
			fmt.Fprintf(stderr, "anthill %s, agent %q\n", strings.TrimSpace(anthill.Version), cfg.Agent.Name)
		}

		opts := cli.PlayOptions{
			Config: cfg,
			Logger: logger,
			In:     cmd.InOrStdin(),
			Out:    cmd.OutOrStdout(),
		}
		if path, _ := cmd.Flags().GetString("transcript"); path != "" {
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("create transcript: %w", err)
			}
			defer f.Close()
			opts.Transcript = f
		}

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		res, err := cli.Play(sigCtx, opts)
		if err != nil {
			if sig := sigCtx.Signal(); sig != nil {
				logger.Info("interrupted", "signal", sig.String())
			}
			return err
		}
		if res.MatchID != "" {
			logger.Info("match recorded", "match_id", res.MatchID, "backend", cfg.Record.Backend)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().String("agent", "", fmt.Sprintf("Bot to play with %v", agents.Builtin().Names()))
	playCmd.Flags().Bool("strict", false, "Treat malformed setup lines as fatal")
	playCmd.Flags().String("record", "", "Record the match in this directory (file backend)")
	playCmd.Flags().String("transcript", "", "Copy the engine input to this file")
	playCmd.Flags().String("metrics-textfile", "", "Write Prometheus metrics to this file at the end")
	playCmd.Flags().Int("keep-worlds", 0, "Keep world snapshots of the last N turns only (0 keeps all)")
	playCmd.Flags().BoolP("quiet", "q", false, "Do not print the banner")
}
