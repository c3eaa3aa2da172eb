package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/anthill/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunMatchStoreContract runs a suite of tests to verify that a MatchStore implementation
// adheres to the defined interface contract.
func RunMatchStoreContract(t *testing.T, store MatchStore) {
	ctx := context.Background()
	matchID := "contract-test-match-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		match := contractMatch(matchID)

		err := store.Save(ctx, match)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, matchID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, match.ID, loaded.ID)
		assert.Equal(t, match.Params, loaded.Params)
		require.Len(t, loaded.Turns, 2)
		assert.Equal(t, match.Turns[1].Orders, loaded.Turns[1].Orders)
		assert.Equal(t, match.Turns[0].World.LiveAntsFor(0), loaded.Turns[0].World.LiveAntsFor(0))
		assert.Equal(t, match.Turns[0].Elapsed, loaded.Turns[0].Elapsed)
		require.NotNil(t, loaded.Score)
		assert.Equal(t, match.Score.PerPlayer, loaded.Score.PerPlayer)
		assert.True(t, match.StartedAt.Equal(loaded.StartedAt), "StartedAt should survive a round trip")
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		match := contractMatch(matchID)
		match.Turns = append(match.Turns, domain.TurnRecord{Turn: 3, World: domain.NewWorldState()})
		require.NoError(t, store.Save(ctx, match))

		loaded, err := store.Load(ctx, matchID)
		require.NoError(t, err)
		assert.Len(t, loaded.Turns, 3)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+matchID)
		assert.ErrorIs(t, err, domain.ErrMatchNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, contractMatch(matchID))
		require.NoError(t, err)

		err = store.Delete(ctx, matchID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, matchID)
		assert.ErrorIs(t, err, domain.ErrMatchNotFound, "Load after Delete should return ErrMatchNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := matchID + "-1"
		id2 := matchID + "-2"
		_ = store.Save(ctx, contractMatch(id2))
		_ = store.Save(ctx, contractMatch(id1))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
		assert.IsNonDecreasing(t, ids, "List should be sorted")
	})

	if appender, ok := store.(TurnAppender); ok {
		t.Run("AppendTurn", func(t *testing.T) {
			runTurnAppenderContract(t, store, appender, matchID)
		})
	}
}

// runTurnAppenderContract checks AppendTurn against Save and Load.
func runTurnAppenderContract(t *testing.T, store MatchStore, appender TurnAppender, matchID string) {
	ctx := context.Background()
	id := matchID + "-append"
	defer func() { _ = store.Delete(ctx, id) }()

	match := contractMatch(id)
	turns := match.Turns
	match.Turns = nil
	match.Final, match.Score = nil, nil
	require.NoError(t, store.Save(ctx, match))

	for _, turn := range turns {
		require.NoError(t, appender.AppendTurn(ctx, id, turn))
	}

	loaded, err := store.Load(ctx, id)
	require.NoError(t, err)
	require.Len(t, loaded.Turns, len(turns))
	for i, turn := range turns {
		assert.Equal(t, turn.Turn, loaded.Turns[i].Turn)
		assert.Equal(t, turn.Orders, loaded.Turns[i].Orders)
		assert.Equal(t, turn.Elapsed, loaded.Turns[i].Elapsed)
		assert.Equal(t, turn.World.Water, loaded.Turns[i].World.Water)
	}
	assert.False(t, loaded.Finished())

	// A later Save replaces the appended turns.
	full := contractMatch(id)
	full.Turns = full.Turns[:1]
	require.NoError(t, store.Save(ctx, full))
	loaded, err = store.Load(ctx, id)
	require.NoError(t, err)
	assert.Len(t, loaded.Turns, 1)

	err = appender.AppendTurn(ctx, "non-existent-"+id, turns[0])
	assert.ErrorIs(t, err, domain.ErrMatchNotFound)
}

func contractMatch(id string) *domain.Match {
	w1 := domain.NewWorldState()
	w1.AddFood(domain.Pos(6, 5))
	w1.AddLiveAnt(domain.Pos(10, 8), 0)
	w1.AddHill(domain.Pos(7, 12), 1)

	w2 := w1.Clone()
	w2.AddWater(domain.Pos(7, 6))

	return &domain.Match{
		ID:     id,
		Agent:  "contract",
		Params: domain.GameParameters{LoadTimeMs: 3000, TurnTimeMs: 1000, Rows: 20, Cols: 20, Turns: 500, PlayerSeed: 42},
		Turns: []domain.TurnRecord{
			{Turn: 1, World: w1, Orders: domain.Orders{domain.Pos(10, 8).Order(domain.North)}, Elapsed: 3 * time.Millisecond},
			{Turn: 2, World: w2, Orders: domain.Orders{domain.Pos(9, 8).Order(domain.East)}, Elapsed: time.Millisecond},
		},
		Final:     w2,
		Score:     &domain.Score{PerPlayer: []uint64{1, 0}},
		StartedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		EndedAt:   time.Date(2024, 5, 1, 12, 1, 0, 0, time.UTC),
	}
}
