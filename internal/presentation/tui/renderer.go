package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/aretw0/anthill/pkg/domain"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() (func(string) (string, error), error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return nil, fmt.Errorf("create markdown renderer: %w", err)
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}, nil
}

// MatchMarkdown summarizes a recorded match as markdown.
func MatchMarkdown(m *domain.Match) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Match `%s`\n\n", m.ID)

	status := "unfinished"
	if m.Finished() {
		status = "finished"
	}
	b.WriteString("| | |\n|---|---|\n")
	if m.Agent != "" {
		fmt.Fprintf(&b, "| Agent | %s |\n", m.Agent)
	}
	fmt.Fprintf(&b, "| Status | %s |\n", status)
	fmt.Fprintf(&b, "| Map | %d x %d |\n", m.Params.Rows, m.Params.Cols)
	fmt.Fprintf(&b, "| Turns recorded | %d of %d |\n", len(m.Turns), m.Params.Turns)
	fmt.Fprintf(&b, "| Turn time | %s |\n", m.Params.TurnTime())
	if !m.StartedAt.IsZero() {
		fmt.Fprintf(&b, "| Started | %s |\n", m.StartedAt.Format("2006-01-02 15:04:05 MST"))
	}
	if !m.EndedAt.IsZero() {
		fmt.Fprintf(&b, "| Duration | %s |\n", m.EndedAt.Sub(m.StartedAt).Round(time.Millisecond))
	}

	if m.Score != nil {
		b.WriteString("\n## Score\n\n| Player | Score |\n|---|---|\n")
		leaders := map[int]bool{}
		for _, p := range m.Score.Leaders() {
			leaders[p] = true
		}
		for player, score := range m.Score.PerPlayer {
			mark := ""
			if leaders[player] {
				mark = " 🏆"
			}
			fmt.Fprintf(&b, "| %d%s | %d |\n", player, mark, score)
		}
	}

	if len(m.Turns) > 0 {
		var orders int
		var slowest domain.TurnRecord
		for _, t := range m.Turns {
			orders += len(t.Orders)
			if t.Elapsed > slowest.Elapsed {
				slowest = t
			}
		}
		b.WriteString("\n## Turns\n\n")
		fmt.Fprintf(&b, "- Orders sent: %d\n", orders)
		fmt.Fprintf(&b, "- Slowest turn: %d (%s)\n", slowest.Turn, slowest.Elapsed)
	}
	return b.String()
}
