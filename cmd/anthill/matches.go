package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/anthill/internal/cli"
	"github.com/aretw0/anthill/internal/config"
	"github.com/aretw0/anthill/pkg/domain"
	"github.com/aretw0/anthill/pkg/ports"
)

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "Manage recorded matches",
	Long:  `List and remove matches kept in the configured store (--backend, --store-path).`,
}

var matchesLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List recorded matches",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(store ports.MatchStore) error {
			ids, err := store.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list matches: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(ids) == 0 {
				fmt.Fprintln(out, "No recorded matches found.")
				return nil
			}
			for _, id := range ids {
				fmt.Fprintln(out, "- "+id)
			}
			return nil
		})
	},
}

var matchesRmCmd = &cobra.Command{
	Use:   "rm <match-id>...",
	Short: "Remove one or more matches",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(store ports.MatchStore) error {
			var errs []error
			for _, id := range args {
				if err := store.Delete(cmd.Context(), id); err != nil {
					errs = append(errs, fmt.Errorf("remove %q: %w", id, err))
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed match '%s'\n", id)
			}
			return errors.Join(errs...)
		})
	},
}

func init() {
	rootCmd.AddCommand(matchesCmd)
	matchesCmd.AddCommand(matchesLsCmd)
	matchesCmd.AddCommand(matchesRmCmd)
}

// withStore opens the configured store for one command. Commands that read
// recorded matches need a persistent backend.
func withStore(fn func(ports.MatchStore) error) error {
	switch cfg.Record.Backend {
	case "", config.BackendNone, config.BackendMemory:
		return fmt.Errorf("no persistent match store configured (backend %q); use --backend", cfg.Record.Backend)
	}
	store, closeFn, err := cli.OpenStore(cfg.Record, logger)
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(store)
}

// loadMatch reads one match from the configured store.
func loadMatch(cmd *cobra.Command, id string) (*domain.Match, error) {
	var m *domain.Match
	err := withStore(func(store ports.MatchStore) error {
		var err error
		m, err = store.Load(cmd.Context(), id)
		return err
	})
	return m, err
}
