/*
Package domain contains the value types shared by every layer of anthill.

It defines the entities exchanged with the game engine, such as grid Positions,
move Orders, the fixed GameParameters and the per-turn WorldState. This package is
kept pure and free of external dependencies like I/O or persistence, following
Hexagonal Architecture principles.

# Key Entities

  - Position: A (row, col) cell on the toroidal map.
  - Order: A Position paired with a Direction; knows its wrapped target.
  - GameParameters: Configuration transmitted once in the turn-0 block.
  - WorldState: The visible snapshot of one turn, rebuilt from scratch each turn.
  - Score: Final per-player scores sent with the end block.
  - Match: A recorded game (parameters, turns, outcome) used for replays.
*/
package domain
