// Package agents contains small ready-made Agent implementations.
//
// They are useful as opponents, as smoke tests for an engine setup, and as
// starting points for real bots. None of them tries to win.
package agents
