package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/anthill/pkg/domain"
)

func sampleMatch() *domain.Match {
	w := sampleWorld()
	return &domain.Match{
		ID:     "m1",
		Agent:  "random",
		Params: domain.GameParameters{Rows: 3, Cols: 4, Turns: 2, TurnTimeMs: 1000},
		Turns: []domain.TurnRecord{
			{Turn: 1, World: w, Orders: domain.Orders{domain.Pos(2, 0).Order(domain.North)}, Elapsed: 3 * time.Millisecond},
			{Turn: 2, World: nil},
			{Turn: 3, World: w, Elapsed: 9 * time.Millisecond},
		},
		Final:     w,
		Score:     &domain.Score{PerPlayer: []uint64{3, 1}},
		StartedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		EndedAt:   time.Date(2026, 1, 2, 3, 4, 6, 0, time.UTC),
	}
}

func press(t *testing.T, m tea.Model, keys ...tea.KeyMsg) (Viewer, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		m, cmd = m.Update(k)
	}
	v, ok := m.(Viewer)
	require.True(t, ok)
	return v, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestViewer_Navigation(t *testing.T) {
	v := NewViewer(sampleMatch(), termenv.Ascii)
	require.Equal(t, 3, v.Frames(), "dropped snapshot skipped, final added")

	v, _ = press(t, v, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, v.Index())

	v, _ = press(t, v, runes("l"), runes("l"), runes("l"))
	assert.Equal(t, 2, v.Index(), "stops at last frame")

	v, _ = press(t, v, runes("h"))
	assert.Equal(t, 1, v.Index())

	v, _ = press(t, v, runes("g"))
	assert.Equal(t, 0, v.Index())

	v, _ = press(t, v, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 0, v.Index(), "stops at first frame")

	v, _ = press(t, v, runes("G"))
	assert.Equal(t, 2, v.Index())
}

func TestViewer_Quit(t *testing.T) {
	v := NewViewer(sampleMatch(), termenv.Ascii)

	_, cmd := press(t, v, runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = press(t, v, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestViewer_View(t *testing.T) {
	v := NewViewer(sampleMatch(), termenv.Ascii)

	out := v.View()
	assert.Contains(t, out, "turn 1/2")
	assert.Contains(t, out, "a*..\n%.x.\na.1.\n")
	assert.Contains(t, out, "(2,0)→north")

	v, _ = press(t, v, runes("G"))
	out = v.View()
	assert.Contains(t, out, "end")
	assert.Contains(t, out, "score: [3 1]")
	assert.Contains(t, out, "changes: food +0 -0  ants +0 -0  dead 1")
}

func TestViewer_NoFrames(t *testing.T) {
	v := NewViewer(&domain.Match{ID: "empty"}, termenv.Ascii)

	assert.Zero(t, v.Frames())
	assert.Contains(t, v.View(), "no recorded snapshots")

	v, _ = press(t, v, runes("G"))
	assert.Equal(t, 0, v.Index())
}

func TestMatchMarkdown(t *testing.T) {
	md := MatchMarkdown(sampleMatch())

	assert.Contains(t, md, "# Match `m1`")
	assert.Contains(t, md, "| Agent | random |")
	assert.Contains(t, md, "| Status | finished |")
	assert.Contains(t, md, "| Turns recorded | 3 of 2 |")
	assert.Contains(t, md, "| Duration | 1s |")
	assert.Contains(t, md, "| 0 🏆 | 3 |")
	assert.Contains(t, md, "| 1 | 1 |")
	assert.Contains(t, md, "- Orders sent: 1")
	assert.Contains(t, md, "- Slowest turn: 3 (9ms)")
}

func TestMatchMarkdown_Unfinished(t *testing.T) {
	md := MatchMarkdown(&domain.Match{ID: "m2"})

	assert.Contains(t, md, "| Status | unfinished |")
	assert.NotContains(t, md, "## Score")
	assert.NotContains(t, md, "## Turns")
}

func TestNewRenderer(t *testing.T) {
	render, err := NewRenderer()
	require.NoError(t, err)

	out, err := render("# hello")
	require.NoError(t, err)
	assert.Contains(t, out, "hello")
}
