package domain

// WorldState is the visible snapshot of a single turn. It is rebuilt from scratch
// every turn; nothing carries over from the previous one.
//
// Per-player collections are indexed by the zero-based owner number and grow on
// demand. Gaps are empty slices, never absent. Each collection keeps insertion order.
type WorldState struct {
	Food     []Position   `json:"food,omitempty" yaml:"food,omitempty"`
	Water    []Position   `json:"water,omitempty" yaml:"water,omitempty"`
	LiveAnts [][]Position `json:"live_ants,omitempty" yaml:"live_ants,omitempty"`
	DeadAnts [][]Position `json:"dead_ants,omitempty" yaml:"dead_ants,omitempty"`
	Hills    [][]Position `json:"hills,omitempty" yaml:"hills,omitempty"`
}

// NewWorldState returns an empty snapshot.
func NewWorldState() *WorldState {
	return &WorldState{}
}

// AddFood records a food cell.
func (w *WorldState) AddFood(p Position) {
	w.Food = append(w.Food, p)
}

// AddWater records an impassable cell.
func (w *WorldState) AddWater(p Position) {
	w.Water = append(w.Water, p)
}

// AddLiveAnt records a live ant owned by player.
func (w *WorldState) AddLiveAnt(p Position, player uint8) {
	w.LiveAnts = appendFor(w.LiveAnts, player, p)
}

// AddDeadAnt records a dead ant owned by player.
func (w *WorldState) AddDeadAnt(p Position, player uint8) {
	w.DeadAnts = appendFor(w.DeadAnts, player, p)
}

// AddHill records a hill owned by player.
func (w *WorldState) AddHill(p Position, player uint8) {
	w.Hills = appendFor(w.Hills, player, p)
}

// MaxPlayerCount is the longest of the three per-player collections, i.e. one more
// than the highest owner index seen.
func (w *WorldState) MaxPlayerCount() int {
	return max(len(w.LiveAnts), len(w.DeadAnts), len(w.Hills))
}

// LiveAntsFor returns player's live ants. Unknown players yield an empty slice.
func (w *WorldState) LiveAntsFor(player uint8) []Position {
	return entryFor(w.LiveAnts, player)
}

// DeadAntsFor returns player's dead ants. Unknown players yield an empty slice.
func (w *WorldState) DeadAntsFor(player uint8) []Position {
	return entryFor(w.DeadAnts, player)
}

// HillsFor returns player's hills. Unknown players yield an empty slice.
func (w *WorldState) HillsFor(player uint8) []Position {
	return entryFor(w.Hills, player)
}

// Clone performs a deep copy of the snapshot.
func (w *WorldState) Clone() *WorldState {
	if w == nil {
		return nil
	}
	return &WorldState{
		Food:     clonePositions(w.Food),
		Water:    clonePositions(w.Water),
		LiveAnts: clonePerPlayer(w.LiveAnts),
		DeadAnts: clonePerPlayer(w.DeadAnts),
		Hills:    clonePerPlayer(w.Hills),
	}
}

// appendFor grows perPlayer with empty entries up to and including player, then appends p.
func appendFor(perPlayer [][]Position, player uint8, p Position) [][]Position {
	for len(perPlayer) <= int(player) {
		perPlayer = append(perPlayer, []Position{})
	}
	perPlayer[player] = append(perPlayer[player], p)
	return perPlayer
}

func entryFor(perPlayer [][]Position, player uint8) []Position {
	if int(player) >= len(perPlayer) {
		return []Position{}
	}
	return clonePositions(perPlayer[player])
}

func clonePositions(in []Position) []Position {
	if in == nil {
		return nil
	}
	out := make([]Position, len(in))
	copy(out, in)
	return out
}

func clonePerPlayer(in [][]Position) [][]Position {
	if in == nil {
		return nil
	}
	out := make([][]Position, len(in))
	for i := range in {
		out[i] = make([]Position, len(in[i]))
		copy(out[i], in[i])
	}
	return out
}
