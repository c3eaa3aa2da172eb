package anthill_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/aretw0/anthill"
	"github.com/aretw0/anthill/pkg/agents"
	"github.com/aretw0/anthill/pkg/domain"
)

// ExamplePlayIO plays a one-turn game with a bot that always moves the same ant north.
func ExamplePlayIO() {
	input := strings.Join([]string{
		"turn 0", "rows 20", "cols 20", "ready",
		"turn 1", "a 10 8 0", "go",
		"end", "players 1", "score 1", "a 9 8 0", "go",
	}, "\n")

	bot := &agents.Scripted{Every: domain.Orders{domain.Pos(10, 8).Order(domain.North)}}

	outcome, err := anthill.PlayIO(context.Background(), bot, strings.NewReader(input), os.Stdout)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("turns:", outcome.Turns, "score:", outcome.Score.PerPlayer)

	// Output:
	// go
	// o 10 8 N
	// go
	// turns: 1 score: [1]
}

// ExamplePlayIO_funcs builds a bot from plain functions.
func ExamplePlayIO_funcs() {
	input := "turn 0\nplayer_seed 7\nready\nend\nplayers 2\nscore 0 3\ngo\n"

	bot := agents.Funcs{
		PrepareFunc: func(_ context.Context, p domain.GameParameters) error {
			fmt.Println("seed", p.PlayerSeed)
			return nil
		},
		AtEndFunc: func(_ context.Context, _ domain.GameParameters, _ *domain.WorldState, s domain.Score) error {
			fmt.Println("leaders", s.Leaders())
			return nil
		},
	}

	if _, err := anthill.PlayIO(context.Background(), bot, strings.NewReader(input), os.Stdout); err != nil {
		log.Fatal(err)
	}

	// Output:
	// seed 7
	// go
	// leaders [1]
}
