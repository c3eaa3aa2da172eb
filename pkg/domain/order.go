package domain

import "fmt"

// Direction is the movement requested for an ant.
type Direction uint8

const (
	// Stay means "do not send an order for this ant". It is never put on the wire.
	Stay Direction = iota
	North
	East
	South
	West
)

var directionLetters = [...]byte{Stay: '-', North: 'N', East: 'E', South: 'S', West: 'W'}

// Directions lists the four moving directions in wire order.
var Directions = []Direction{North, East, South, West}

// Letter returns the wire letter (N, E, S, W). Stay has no wire letter and returns '-'.
func (d Direction) Letter() byte {
	if int(d) < len(directionLetters) {
		return directionLetters[d]
	}
	return '?'
}

// Reverse returns the opposite direction. Stay is its own reverse.
func (d Direction) Reverse() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		return d
	}
}

// Valid reports whether d is one of the declared directions.
func (d Direction) Valid() bool {
	return d <= West
}

func (d Direction) String() string {
	switch d {
	case Stay:
		return "stay"
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
}

// MarshalText encodes the wire letter, or "-" for Stay.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid direction %d", uint8(d))
	}
	return []byte{d.Letter()}, nil
}

// UnmarshalText accepts what MarshalText produces.
func (d *Direction) UnmarshalText(text []byte) error {
	if string(text) == "-" {
		*d = Stay
		return nil
	}
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDirection maps a wire letter to a moving direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "N":
		return North, nil
	case "E":
		return East, nil
	case "S":
		return South, nil
	case "W":
		return West, nil
	default:
		return Stay, fmt.Errorf("unknown direction %q", s)
	}
}

// Order is a move instruction for the ant standing at Pos.
type Order struct {
	Pos Position  `json:"pos" yaml:"pos"`
	Dir Direction `json:"dir" yaml:"dir"`
}

// Orders is the list an agent returns for one turn. Wire order equals slice order.
type Orders []Order

// TargetPos returns the cell the order moves to, wrapping around the map edges.
// bounds holds the map size (rows, cols); both components must be non-zero.
func (o Order) TargetPos(bounds Position) Position {
	p := o.Pos
	rows, cols := uint32(bounds.Row), uint32(bounds.Col)
	switch o.Dir {
	case North:
		return Pos(uint16((uint32(p.Row)+rows-1)%rows), p.Col)
	case South:
		return Pos(uint16((uint32(p.Row)+1)%rows), p.Col)
	case West:
		return Pos(p.Row, uint16((uint32(p.Col)+cols-1)%cols))
	case East:
		return Pos(p.Row, uint16((uint32(p.Col)+1)%cols))
	default:
		return p
	}
}

// Reverse describes the order as seen from its destination: the order at the
// target position pointing back where it came from.
func (o Order) Reverse(bounds Position) Order {
	return Order{Pos: o.TargetPos(bounds), Dir: o.Dir.Reverse()}
}

func (o Order) String() string {
	return fmt.Sprintf("%s %s", o.Pos, o.Dir)
}

// Moving returns the orders that actually move an ant, dropping Stay entries.
func (orders Orders) Moving() Orders {
	out := make(Orders, 0, len(orders))
	for _, o := range orders {
		if o.Dir != Stay {
			out = append(out, o)
		}
	}
	return out
}
