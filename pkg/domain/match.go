package domain

import (
	"slices"
	"time"
)

// TurnRecord is one recorded exchange: what the bot saw and what it answered.
type TurnRecord struct {
	Turn    int           `json:"turn" yaml:"turn"`
	World   *WorldState   `json:"world" yaml:"world"`
	Orders  Orders        `json:"orders,omitempty" yaml:"orders,omitempty"`
	Elapsed time.Duration `json:"elapsed" yaml:"elapsed"`
}

// Match is a recorded game, as persisted by a MatchStore.
type Match struct {
	ID        string         `json:"id" yaml:"id"`
	Agent     string         `json:"agent,omitempty" yaml:"agent,omitempty"`
	Params    GameParameters `json:"params" yaml:"params"`
	Turns     []TurnRecord   `json:"turns,omitempty" yaml:"turns,omitempty"`
	Final     *WorldState    `json:"final,omitempty" yaml:"final,omitempty"`
	Score     *Score         `json:"score,omitempty" yaml:"score,omitempty"`
	StartedAt time.Time      `json:"started_at" yaml:"started_at"`
	EndedAt   time.Time      `json:"ended_at,omitempty" yaml:"ended_at,omitempty"`
}

// Finished reports whether the end block was received.
func (m *Match) Finished() bool {
	return m.Score != nil
}

// Clone returns a deep copy. Stores use it to keep callers from sharing memory
// with what was persisted.
func (m *Match) Clone() *Match {
	if m == nil {
		return nil
	}
	c := *m
	if m.Turns != nil {
		c.Turns = make([]TurnRecord, len(m.Turns))
		for i, t := range m.Turns {
			t.World = t.World.Clone()
			t.Orders = slices.Clone(t.Orders)
			c.Turns[i] = t
		}
	}
	c.Final = m.Final.Clone()
	if m.Score != nil {
		c.Score = &Score{PerPlayer: slices.Clone(m.Score.PerPlayer)}
	}
	return &c
}
