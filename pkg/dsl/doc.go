/*
Package dsl builds engine transcripts in Go.

It writes the engine side of the protocol, which is what a bot reads, so tests and tools
can describe a game without hand-writing wire text. Records are emitted in the order they
are added.

Example usage:

	game := dsl.New().
		Params(domain.GameParameters{Rows: 20, Cols: 20, Turns: 500}).
		Turn(func(t *dsl.Block) {
			t.Food(6, 5).Water(7, 6).Ant(10, 8, 0)
		}).
		End([]uint64{1, 0}, func(t *dsl.Block) {
			t.Ant(10, 8, 0)
		})

	outcome, err := runner.NewRunner(
		runner.WithInputHandler(runner.NewTextHandler(strings.NewReader(game.String()), os.Stdout)),
	).Run(ctx, bot)
*/
package dsl
