package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"

	"github.com/aretw0/anthill/pkg/domain"
)

// Viewer is a bubbletea model that steps through the turns of a recorded match.
// The last frame is the final snapshot when the match finished.
type Viewer struct {
	match   *domain.Match
	frames  []frame
	index   int
	profile termenv.Profile
}

type frame struct {
	title  string
	world  *domain.WorldState
	orders domain.Orders
	diff   *domain.WorldDiff
}

// NewViewer builds a viewer over m. Turns whose snapshot was dropped are skipped.
func NewViewer(m *domain.Match, p termenv.Profile) Viewer {
	v := Viewer{match: m, profile: p}
	var prev *domain.WorldState
	for _, t := range m.Turns {
		if t.World == nil {
			prev = nil
			continue
		}
		f := frame{
			title:  fmt.Sprintf("turn %d/%d", t.Turn, m.Params.Turns),
			world:  t.World,
			orders: t.Orders,
		}
		if prev != nil {
			f.diff = domain.Diff(prev, t.World)
		}
		v.frames = append(v.frames, f)
		prev = t.World
	}
	if m.Final != nil {
		f := frame{title: "end", world: m.Final}
		if prev != nil {
			f.diff = domain.Diff(prev, m.Final)
		}
		v.frames = append(v.frames, f)
	}
	return v
}

// Frames returns how many snapshots can be shown.
func (v Viewer) Frames() int { return len(v.frames) }

// Index returns the frame on screen.
func (v Viewer) Index() int { return v.index }

func (v Viewer) Init() tea.Cmd { return nil }

func (v Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return v, tea.Quit
	case "right", "l", "n", " ":
		if v.index < len(v.frames)-1 {
			v.index++
		}
	case "left", "h", "p":
		if v.index > 0 {
			v.index--
		}
	case "g", "home":
		v.index = 0
	case "G", "end":
		v.index = max(len(v.frames)-1, 0)
	}
	return v, nil
}

func (v Viewer) View() string {
	if len(v.frames) == 0 {
		return fmt.Sprintf("match %s has no recorded snapshots\n\nq to quit\n", v.match.ID)
	}
	f := v.frames[v.index]

	var b strings.Builder
	fmt.Fprintf(&b, "match %s  %s  [%d/%d]\n\n", v.match.ID, f.title, v.index+1, len(v.frames))
	b.WriteString(RenderGrid(v.match.Params, f.world, v.profile))
	b.WriteByte('\n')
	if len(f.orders) > 0 {
		parts := make([]string, 0, len(f.orders))
		for _, o := range f.orders {
			parts = append(parts, fmt.Sprintf("%s→%s", o.Pos, o.Dir))
		}
		fmt.Fprintf(&b, "orders: %s\n", strings.Join(parts, " "))
	}
	if f.diff != nil {
		b.WriteString(diffLine(f.diff))
	}
	if f.title == "end" && v.match.Score != nil {
		fmt.Fprintf(&b, "score: %v\n", v.match.Score.PerPlayer)
	}
	b.WriteString("\n←/→ step  g/G first/last  q quit\n")
	return b.String()
}

// diffLine summarizes what changed since the previous frame.
func diffLine(d *domain.WorldDiff) string {
	if d.Empty() {
		return "changes: none\n"
	}
	var added, removed, dead int
	for _, ps := range d.AntsAdded {
		added += len(ps)
	}
	for _, ps := range d.AntsRemoved {
		removed += len(ps)
	}
	for _, n := range d.Deaths {
		dead += n
	}
	return fmt.Sprintf("changes: food +%d -%d  ants +%d -%d  dead %d\n",
		len(d.FoodAdded), len(d.FoodRemoved), added, removed, dead)
}
