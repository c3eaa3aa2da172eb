package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/anthill"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of anthill",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "anthill version %s\n", strings.TrimSpace(anthill.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
