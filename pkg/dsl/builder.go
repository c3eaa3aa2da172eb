package dsl

import (
	"strconv"
	"strings"

	"github.com/aretw0/anthill/pkg/domain"
	"github.com/aretw0/anthill/pkg/protocol"
)

// Builder manages the transcript construction.
type Builder struct {
	setup []string
	turns []*Block
	end   *Block
	score []uint64
}

// New creates an empty transcript: "turn 0" and "ready" with nothing between.
func New() *Builder {
	return &Builder{}
}

// Param appends one setup line.
func (b *Builder) Param(key string, value int64) *Builder {
	return b.RawParam(key + " " + strconv.FormatInt(value, 10))
}

// RawParam appends a setup line verbatim, for malformed input.
func (b *Builder) RawParam(line string) *Builder {
	b.setup = append(b.setup, line)
	return b
}

// Params appends the nine setup lines of p in the engine's order.
func (b *Builder) Params(p domain.GameParameters) *Builder {
	return b.
		Param(domain.ParamLoadTime, p.LoadTimeMs).
		Param(domain.ParamTurnTime, p.TurnTimeMs).
		Param(domain.ParamRows, p.Rows).
		Param(domain.ParamCols, p.Cols).
		Param(domain.ParamTurns, p.Turns).
		Param(domain.ParamViewRadius2, p.ViewRadius2).
		Param(domain.ParamAttackRadius2, p.AttackRadius2).
		Param(domain.ParamSpawnRadius2, p.SpawnRadius2).
		Param(domain.ParamPlayerSeed, p.PlayerSeed)
}

// Turn appends the next turn. fill may be nil for an empty snapshot.
func (b *Builder) Turn(fill func(*Block)) *Builder {
	t := &Block{}
	if fill != nil {
		fill(t)
	}
	b.turns = append(b.turns, t)
	return b
}

// Turns appends n empty turns.
func (b *Builder) Turns(n int) *Builder {
	for range n {
		b.Turn(nil)
	}
	return b
}

// End sets the end block. The player count is len(score).
func (b *Builder) End(score []uint64, fill func(*Block)) *Builder {
	b.end = &Block{}
	b.score = score
	if fill != nil {
		fill(b.end)
	}
	return b
}

// Lines renders the transcript. Without End the stream stops after the last
// turn, as when the engine dies.
func (b *Builder) Lines() []string {
	lines := []string{domain.KeywordTurn + " 0"}
	lines = append(lines, b.setup...)
	lines = append(lines, domain.KeywordReady)

	for i, t := range b.turns {
		lines = append(lines, domain.KeywordTurn+" "+strconv.Itoa(i+1))
		lines = append(lines, t.lines...)
		lines = append(lines, domain.KeywordGo)
	}

	if b.end != nil {
		score := make([]string, 0, len(b.score)+1)
		score = append(score, domain.KeywordScore)
		for _, v := range b.score {
			score = append(score, strconv.FormatUint(v, 10))
		}
		lines = append(lines,
			domain.KeywordEnd,
			domain.KeywordPlayers+" "+strconv.Itoa(len(b.score)),
			strings.Join(score, " "),
		)
		lines = append(lines, b.end.lines...)
		lines = append(lines, domain.KeywordGo)
	}
	return lines
}

// String renders the transcript as newline-terminated text.
func (b *Builder) String() string {
	return strings.Join(b.Lines(), "\n") + "\n"
}

// Source renders the transcript as a line source for a protocol.Decoder.
func (b *Builder) Source() *protocol.SliceSource {
	return protocol.NewSliceSource(b.Lines()...)
}
