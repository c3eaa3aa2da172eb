package domain

import "fmt"

// Position is a cell on the world map. The upper left corner is (0,0).
// Row is comparable to the Y axis and Col to the X axis.
type Position struct {
	Row uint16 `json:"row" yaml:"row"`
	Col uint16 `json:"col" yaml:"col"`
}

// Pos is shorthand for a Position literal.
func Pos(row, col uint16) Position {
	return Position{Row: row, Col: col}
}

// Order pairs the position with a direction.
func (p Position) Order(dir Direction) Order {
	return Order{Pos: p, Dir: dir}
}

// Less orders positions by row, then column.
func (p Position) Less(other Position) bool {
	if p.Row != other.Row {
		return p.Row < other.Row
	}
	return p.Col < other.Col
}

// Compare returns -1, 0 or +1 following Less. Suitable for slices.SortFunc.
func (p Position) Compare(other Position) int {
	switch {
	case p.Less(other):
		return -1
	case other.Less(p):
		return 1
	default:
		return 0
	}
}

// Within reports whether p lies inside [0,bounds.Row) x [0,bounds.Col).
func (p Position) Within(bounds Position) bool {
	return p.Row < bounds.Row && p.Col < bounds.Col
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}
