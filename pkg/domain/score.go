package domain

// Score holds the final score of every player, indexed by owner number.
type Score struct {
	PerPlayer []uint64 `json:"per_player" yaml:"per_player"`
}

// Of returns player's score, or 0 when the player is unknown.
func (s Score) Of(player int) uint64 {
	if player < 0 || player >= len(s.PerPlayer) {
		return 0
	}
	return s.PerPlayer[player]
}

// Leaders returns the indexes sharing the highest score, ascending.
func (s Score) Leaders() []int {
	var best uint64
	var leaders []int
	for i, v := range s.PerPlayer {
		switch {
		case len(leaders) == 0 || v > best:
			best = v
			leaders = []int{i}
		case v == best:
			leaders = append(leaders, i)
		}
	}
	return leaders
}
