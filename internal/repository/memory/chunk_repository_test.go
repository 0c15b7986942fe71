package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkRepository_AssembleInSequenceOrder(t *testing.T) {
	repo := NewChunkRepository()

	// Deliver out of order; assembly must follow sequence numbers.
	repo.Append("upload-1", 2, []byte("C"))
	repo.Append("upload-1", 0, []byte("A"))
	repo.Append("upload-1", 1, []byte("B"))

	data, err := repo.Assemble("upload-1")
	require.NoError(t, err)
	assert.Equal(t, "ABC", string(data))
}

func TestChunkRepository_DeleteDropsState(t *testing.T) {
	repo := NewChunkRepository()

	repo.Append("upload-2", 0, []byte("payload"))
	require.True(t, repo.Has("upload-2"))

	repo.Delete("upload-2")

	assert.False(t, repo.Has("upload-2"))
	_, err := repo.Assemble("upload-2")
	assert.Error(t, err)
}

func TestChunkRepository_GroupsAreIsolated(t *testing.T) {
	repo := NewChunkRepository()

	repo.Append("a", 0, []byte("first"))
	repo.Append("b", 0, []byte("second"))

	dataA, err := repo.Assemble("a")
	require.NoError(t, err)
	dataB, err := repo.Assemble("b")
	require.NoError(t, err)

	assert.Equal(t, "first", string(dataA))
	assert.Equal(t, "second", string(dataB))
}

func TestChunkRepository_UnknownGroup(t *testing.T) {
	repo := NewChunkRepository()

	_, err := repo.Assemble("missing")
	assert.Error(t, err)
}
