package tui

import (
	"strings"

	"github.com/muesli/termenv"

	"github.com/aretw0/anthill/pkg/domain"
)

// Cell symbols used by RenderGrid.
const (
	SymbolLand    = '.'
	SymbolWater   = '%'
	SymbolFood    = '*'
	SymbolDeadAnt = 'x'
)

var ownerColors = []string{"#ef4444", "#3b82f6", "#22c55e", "#eab308", "#a855f7", "#06b6d4", "#f97316", "#ec4899"}

type cell struct {
	symbol rune
	owner  int
}

// RenderGrid draws the snapshot as text, one line per map row. Live ants are
// letters (a for player 0, b for player 1, ...), hills are the owner's digit.
// When params carry no size, the grid is just large enough for the snapshot.
// Colors follow the profile; termenv.Ascii gives plain text.
func RenderGrid(params domain.GameParameters, world *domain.WorldState, p termenv.Profile) string {
	rows, cols := gridSize(params, world)
	if rows == 0 || cols == 0 {
		return ""
	}

	grid := make([][]cell, rows)
	for r := range grid {
		grid[r] = make([]cell, cols)
		for c := range grid[r] {
			grid[r][c] = cell{symbol: SymbolLand, owner: -1}
		}
	}
	put := func(pos domain.Position, symbol rune, owner int) {
		if int(pos.Row) < rows && int(pos.Col) < cols {
			grid[pos.Row][pos.Col] = cell{symbol: symbol, owner: owner}
		}
	}

	// Later layers win: an ant standing on its hill shows as the ant.
	if world != nil {
		for _, pos := range world.Water {
			put(pos, SymbolWater, -1)
		}
		for _, pos := range world.Food {
			put(pos, SymbolFood, -1)
		}
		for owner, hills := range world.Hills {
			for _, pos := range hills {
				put(pos, hillSymbol(owner), owner)
			}
		}
		for owner, dead := range world.DeadAnts {
			for _, pos := range dead {
				put(pos, SymbolDeadAnt, owner)
			}
		}
		for owner, live := range world.LiveAnts {
			for _, pos := range live {
				put(pos, antSymbol(owner), owner)
			}
		}
	}

	var b strings.Builder
	for _, line := range grid {
		for _, c := range line {
			s := p.String(string(c.symbol))
			switch {
			case c.owner >= 0:
				s = s.Foreground(p.Color(ownerColors[c.owner%len(ownerColors)]))
			case c.symbol == SymbolWater:
				s = s.Foreground(p.Color("#1d4ed8"))
			case c.symbol == SymbolFood:
				s = s.Foreground(p.Color("#fde047"))
			}
			b.WriteString(s.String())
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func antSymbol(owner int) rune {
	if owner < 26 {
		return rune('a' + owner)
	}
	return '?'
}

func hillSymbol(owner int) rune {
	if owner < 10 {
		return rune('0' + owner)
	}
	return '#'
}

func gridSize(params domain.GameParameters, world *domain.WorldState) (int, int) {
	if params.Rows > 0 && params.Cols > 0 {
		b := params.Bounds()
		return int(b.Row), int(b.Col)
	}
	rows, cols := 0, 0
	grow := func(ps []domain.Position) {
		for _, p := range ps {
			rows = max(rows, int(p.Row)+1)
			cols = max(cols, int(p.Col)+1)
		}
	}
	if world != nil {
		grow(world.Water)
		grow(world.Food)
		for _, group := range [][][]domain.Position{world.Hills, world.DeadAnts, world.LiveAnts} {
			for _, ps := range group {
				grow(ps)
			}
		}
	}
	return rows, cols
}
