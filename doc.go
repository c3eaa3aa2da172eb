/*
Package anthill is a client library for the Ants AI Challenge turn protocol.

The game engine runs a bot as a child process and talks to it over standard input and
output with a line-oriented text protocol. Anthill decodes that stream into typed values,
drives a bot through its three callbacks and writes the orders back, so a bot only has to
implement ports.Agent.

# Concept

A game is one pass over the input:

  - "turn 0" carries the game parameters and ends with "ready". The bot's Prepare is called
    and the driver answers "go".
  - "turn N" carries the visible world and ends with "go". MakeTurn is called and its orders
    are written as "o <row> <col> <N|E|S|W>" lines followed by "go".
  - "end" carries the player count, the score and the final world. AtEnd is called and the
    loop stops.

A malformed world record, an unexpected keyword or a truncated stream aborts the game with
a *domain.ProtocolError. A malformed setup line is only a warning unless the runner is
configured with protocol.SetupStrict.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/aretw0/anthill"
		"github.com/aretw0/anthill/pkg/agents"
	)

	func main() {
		if _, err := anthill.Play(context.Background(), agents.NewRandomWalk()); err != nil {
			log.Fatal(err)
		}
	}

# Packages

  - pkg/domain: positions, orders, parameters, world snapshots, scores and errors.
  - pkg/protocol: the decoder and encoder for the wire format.
  - pkg/runner: the turn loop, its options and order interceptors.
  - pkg/agents: ready-made bots.
  - pkg/replay and pkg/adapters: match recording and the stores it writes to.
  - pkg/observability: Prometheus metrics fed by lifecycle hooks.

The anthill command (cmd/anthill) wraps all of this for the terminal.
*/
package anthill
