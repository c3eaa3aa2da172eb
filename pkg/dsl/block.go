package dsl

import (
	"strconv"

	"github.com/aretw0/anthill/pkg/domain"
)

// Block provides a fluent API for the records of one world snapshot.
type Block struct {
	lines []string
}

func (b *Block) cell(tag string, row, col uint16) *Block {
	b.lines = append(b.lines, tag+" "+strconv.Itoa(int(row))+" "+strconv.Itoa(int(col)))
	return b
}

func (b *Block) owned(tag string, row, col uint16, owner uint8) *Block {
	b.lines = append(b.lines, tag+" "+strconv.Itoa(int(row))+" "+strconv.Itoa(int(col))+" "+strconv.Itoa(int(owner)))
	return b
}

// Food adds an "f" record.
func (b *Block) Food(row, col uint16) *Block { return b.cell(domain.TagFood, row, col) }

// Water adds a "w" record.
func (b *Block) Water(row, col uint16) *Block { return b.cell(domain.TagWater, row, col) }

// Ant adds an "a" record.
func (b *Block) Ant(row, col uint16, owner uint8) *Block {
	return b.owned(domain.TagLiveAnt, row, col, owner)
}

// DeadAnt adds a "d" record.
func (b *Block) DeadAnt(row, col uint16, owner uint8) *Block {
	return b.owned(domain.TagDeadAnt, row, col, owner)
}

// Hill adds an "h" record.
func (b *Block) Hill(row, col uint16, owner uint8) *Block {
	return b.owned(domain.TagHill, row, col, owner)
}

// Raw adds a line verbatim, for malformed input.
func (b *Block) Raw(line string) *Block {
	b.lines = append(b.lines, line)
	return b
}

// World adds every record of w: water, food, hills, dead ants, then live ants,
// each per owner in ascending order.
func (b *Block) World(w *domain.WorldState) *Block {
	if w == nil {
		return b
	}
	for _, p := range w.Water {
		b.Water(p.Row, p.Col)
	}
	for _, p := range w.Food {
		b.Food(p.Row, p.Col)
	}
	for owner, ps := range w.Hills {
		for _, p := range ps {
			b.Hill(p.Row, p.Col, uint8(owner))
		}
	}
	for owner, ps := range w.DeadAnts {
		for _, p := range ps {
			b.DeadAnt(p.Row, p.Col, uint8(owner))
		}
	}
	for owner, ps := range w.LiveAnts {
		for _, p := range ps {
			b.Ant(p.Row, p.Col, uint8(owner))
		}
	}
	return b
}
