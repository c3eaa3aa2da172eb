package domain

import (
	"fmt"
	"strconv"
	"time"
)

// GameParameters is the configuration sent once in the turn-0 block.
// Fields keep their zero value when the engine omits or garbles them.
type GameParameters struct {
	// LoadTimeMs is the time given to the bot to start up after "ready".
	LoadTimeMs int64 `json:"loadtime" yaml:"loadtime"`
	// TurnTimeMs is the time given to the bot each turn.
	TurnTimeMs    int64 `json:"turntime" yaml:"turntime"`
	Rows          int64 `json:"rows" yaml:"rows"`
	Cols          int64 `json:"cols" yaml:"cols"`
	Turns         int64 `json:"turns" yaml:"turns"`
	ViewRadius2   int64 `json:"viewradius2" yaml:"viewradius2"`
	AttackRadius2 int64 `json:"attackradius2" yaml:"attackradius2"`
	// SpawnRadius2 is the food gathering radius; the name is historical.
	SpawnRadius2 int64 `json:"spawnradius2" yaml:"spawnradius2"`
	// PlayerSeed seeds the bot PRNG so games can be reproduced.
	PlayerSeed int64 `json:"player_seed" yaml:"player_seed"`
}

// Put assigns the field named by key. Unknown keys return ErrUnknownParameter and
// non-integer values return ErrInvalidParameter; in both cases p is unchanged.
func (p *GameParameters) Put(key, value string) error {
	field := p.field(key)
	if field == nil {
		return fmt.Errorf("%w: %q (value %q)", ErrUnknownParameter, key, value)
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %s=%q", ErrInvalidParameter, key, value)
	}
	*field = n
	return nil
}

func (p *GameParameters) field(key string) *int64 {
	switch key {
	case ParamLoadTime:
		return &p.LoadTimeMs
	case ParamTurnTime:
		return &p.TurnTimeMs
	case ParamRows:
		return &p.Rows
	case ParamCols:
		return &p.Cols
	case ParamTurns:
		return &p.Turns
	case ParamViewRadius2:
		return &p.ViewRadius2
	case ParamAttackRadius2:
		return &p.AttackRadius2
	case ParamSpawnRadius2:
		return &p.SpawnRadius2
	case ParamPlayerSeed:
		return &p.PlayerSeed
	default:
		return nil
	}
}

// Bounds returns the map size as a Position, for Order.TargetPos.
// Values outside the uint16 range are clamped.
func (p GameParameters) Bounds() Position {
	return Pos(clampUint16(p.Rows), clampUint16(p.Cols))
}

// LoadTime returns the start-up budget.
func (p GameParameters) LoadTime() time.Duration {
	return time.Duration(p.LoadTimeMs) * time.Millisecond
}

// TurnTime returns the per-turn budget.
func (p GameParameters) TurnTime() time.Duration {
	return time.Duration(p.TurnTimeMs) * time.Millisecond
}

func clampUint16(v int64) uint16 {
	switch {
	case v < 0:
		return 0
	case v > 0xFFFF:
		return 0xFFFF
	default:
		return uint16(v)
	}
}
