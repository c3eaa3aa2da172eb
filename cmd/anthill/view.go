package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/aretw0/anthill/internal/cli"
	"github.com/aretw0/anthill/internal/presentation/tui"
)

var viewCmd = &cobra.Command{
	Use:   "view <match-id>",
	Short: "Step through a recorded match in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadMatch(cmd, args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		viewer := tui.NewViewer(m, cli.ColorProfile(out))
		p := tea.NewProgram(viewer,
			tea.WithContext(cmd.Context()),
			tea.WithInput(cmd.InOrStdin()),
			tea.WithOutput(out),
			tea.WithAltScreen(),
		)
		_, err = p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
