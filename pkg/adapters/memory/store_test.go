package memory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/anthill/pkg/adapters/memory"
	"github.com/aretw0/anthill/pkg/domain"
	"github.com/aretw0/anthill/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunMatchStoreContract(t, store)
}

func TestMemoryStore_Isolation(t *testing.T) {
	store := memory.NewStore()
	match := &domain.Match{ID: "iso", Score: &domain.Score{PerPlayer: []uint64{1}}}
	require.NoError(t, store.Save(t.Context(), match))

	match.Score.PerPlayer[0] = 7
	loaded, err := store.Load(t.Context(), "iso")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), loaded.Score.PerPlayer[0])

	loaded.Score.PerPlayer[0] = 8
	again, err := store.Load(t.Context(), "iso")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), again.Score.PerPlayer[0])
}
