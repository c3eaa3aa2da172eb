package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/anthill/internal/cli"
	"github.com/aretw0/anthill/internal/config"
)

var (
	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "anthill",
	Short: "Anthill drives bots for the Ants turn protocol",
	Long: `Anthill speaks the line protocol of the Ants AI Challenge on stdin/stdout.
It plays games with a built-in bot, validates engine transcripts and keeps
recorded matches for replay.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
		applyFlags(cmd, &cfg)
		if err := cfg.Validate(); err != nil {
			return err
		}
		logger, err = cli.NewLogger(cfg.Log, cmd.ErrOrStderr())
		return err
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil && !cli.IsInterrupted(err) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(cli.ExitCode(err))
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "YAML configuration file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json")
	rootCmd.PersistentFlags().String("backend", "", "Match store: none, memory, file, redis or sqlite")
	rootCmd.PersistentFlags().String("store-path", "", "Directory (file) or database (sqlite) of the match store")
	rootCmd.PersistentFlags().String("redis-addr", "", "Redis address for the redis backend")
}

// applyFlags lets explicitly set flags win over the configuration file.
func applyFlags(cmd *cobra.Command, c *config.Config) {
	str := func(name string, dst *string) {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			*dst = f.Value.String()
		}
	}
	str("log-level", &c.Log.Level)
	str("log-format", &c.Log.Format)
	str("backend", &c.Record.Backend)
	str("store-path", &c.Record.Path)
	str("redis-addr", &c.Record.Redis.Addr)
	str("agent", &c.Agent.Name)
	str("metrics-textfile", &c.Metrics.Textfile)

	if f := cmd.Flags().Lookup("record"); f != nil && f.Changed {
		c.Record.Backend = "file"
		c.Record.Path = f.Value.String()
	}
	if f := cmd.Flags().Lookup("strict"); f != nil && f.Changed {
		c.Protocol.StrictSetup, _ = cmd.Flags().GetBool("strict")
	}
	if f := cmd.Flags().Lookup("keep-worlds"); f != nil && f.Changed {
		c.Record.KeepWorlds, _ = cmd.Flags().GetInt("keep-worlds")
	}
}
