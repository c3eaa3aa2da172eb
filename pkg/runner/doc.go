/*
Package runner implements the turn loop that sits between the game engine and an Agent.

The Runner is a small state machine (AwaitingSetup -> InTurn -> Ended). It reads one
line at a time from an IOHandler, hands complete blocks to the protocol Decoder,
calls the Agent, and writes the encoded answer back. It never reads ahead of the
block it is processing and imposes no time limits of its own: the engine owns the
clock and kills slow bots.

# Key Components

  - Runner: The state machine. Returns an Outcome and calls Agent.AtEnd.
  - IOHandler: Decouples how lines arrive and leave (stdin/stdout, pipes, buffers).
  - TextHandler: The standard line-based implementation over io.Reader/io.Writer.
  - OrderInterceptor: Middleware applied to the orders before they are sent.

# Usage

	r := runner.NewRunner(
		runner.WithInputHandler(runner.NewTextHandler(os.Stdin, os.Stdout)),
		runner.WithLogger(logger),
	)

	outcome, err := r.Run(ctx, myAgent)
	if err != nil {
		log.Fatal(err)
	}
*/
package runner
