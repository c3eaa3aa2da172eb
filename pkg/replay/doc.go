// Package replay records games into a ports.MatchStore.
//
// A Recorder is plugged into the runner through its lifecycle hooks:
//
//	rec := replay.NewRecorder(store, replay.WithAgentName("random"))
//	r := runner.NewRunner(runner.WithLifecycleHooks(rec.Hooks()))
//
// The match is saved after setup, after every turn and at game end, so a crashed
// or killed bot still leaves a readable partial recording behind.
package replay
