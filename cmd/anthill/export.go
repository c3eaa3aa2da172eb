package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/anthill/pkg/adapters/parquet"
)

var exportCmd = &cobra.Command{
	Use:   "export <match-id>",
	Short: "Write a recorded match as a parquet file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadMatch(cmd, args[0])
		if err != nil {
			return err
		}

		outPath, _ := cmd.Flags().GetString("out")
		if outPath == "" {
			outPath = m.ID + ".parquet"
		}
		if err := parquet.Export(outPath, m); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d turns to %s\n", len(m.Turns), outPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("out", "o", "", "Output file (default <match-id>.parquet)")
}
