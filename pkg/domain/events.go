package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventSetup     EventType = "setup"
	EventTurnStart EventType = "turn_start"
	EventTurnEnd   EventType = "turn_end"
	EventGameEnd   EventType = "game_end"
	EventError     EventType = "error"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// SetupEvent is emitted after the agent prepared for the game.
type SetupEvent struct {
	EventBase
	Params  GameParameters `json:"params"`
	Elapsed time.Duration  `json:"elapsed"`
}

// TurnEvent represents the start or end of a turn exchange.
// Orders and Elapsed are only set on turn end.
type TurnEvent struct {
	EventBase
	Turn    int            `json:"turn"`
	Params  GameParameters `json:"params"`
	World   *WorldState    `json:"world"`
	Orders  Orders         `json:"orders,omitempty"`
	Elapsed time.Duration  `json:"elapsed,omitempty"`
}

// GameEndEvent is emitted after the agent saw the end block.
type GameEndEvent struct {
	EventBase
	Turns  int            `json:"turns"`
	Params GameParameters `json:"params"`
	World  *WorldState    `json:"world"`
	Score  Score          `json:"score"`
	// Elapsed is the time spent in Agent.AtEnd.
	Elapsed time.Duration `json:"elapsed,omitempty"`
}

// ErrorEvent is emitted when the turn loop aborts.
type ErrorEvent struct {
	EventBase
	Turn int   `json:"turn"`
	Err  error `json:"-"`
}

// LifecycleHooks defines callbacks for turn loop observability.
// Hooks run synchronously on the driver goroutine; nil hooks are skipped.
type LifecycleHooks struct {
	OnSetup     func(context.Context, *SetupEvent)
	OnTurnStart func(context.Context, *TurnEvent)
	OnTurnEnd   func(context.Context, *TurnEvent)
	OnGameEnd   func(context.Context, *GameEndEvent)
	OnError     func(context.Context, *ErrorEvent)
}
