/*
Package ports defines the interfaces anthill depends on and the ones it exposes.

These interfaces decouple the turn loop from the code that surrounds it: the agent
that makes decisions, the transport that delivers lines, and the storage backends
that keep recorded matches.

# Key Interfaces

  - Agent: The game logic. Receives parameters, snapshots and the final score.
  - LineSource: A forward-only cursor over input lines (stdin, a transcript, a slice).
  - MatchStore: Persists recorded matches (memory, files, Redis, SQLite).
*/
package ports
