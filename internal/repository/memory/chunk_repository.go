package memory

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

type chunkGroup struct {
	mu     sync.Mutex
	chunks map[int][]byte
}

// ChunkRepository buffers pieces of a chunked upload until the final piece
// arrives. Groups that are never completed expire on their own.
type ChunkRepository struct {
	cache *cache.Cache
}

func NewChunkRepository() *ChunkRepository {
	// Abandoned uploads expire after 1 hour; expired groups are purged
	// every 10 minutes.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &ChunkRepository{
		cache: c,
	}
}

// Append stores one piece of the group under its sequence number. Sequence
// numbers are explicit so out-of-order delivery cannot corrupt reassembly.
func (r *ChunkRepository) Append(groupId string, seq int, data []byte) {
	var group *chunkGroup
	if x, found := r.cache.Get(groupId); found {
		group = x.(*chunkGroup)
	} else {
		group = &chunkGroup{chunks: make(map[int][]byte)}
		r.cache.Set(groupId, group, cache.DefaultExpiration)
	}

	group.mu.Lock()
	defer group.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	group.chunks[seq] = buf
}

// Assemble concatenates the group's pieces in sequence order.
func (r *ChunkRepository) Assemble(groupId string) ([]byte, error) {
	x, found := r.cache.Get(groupId)
	if !found {
		return nil, fmt.Errorf("chunk group %s not found or expired", groupId)
	}
	group := x.(*chunkGroup)

	group.mu.Lock()
	defer group.mu.Unlock()

	seqs := make([]int, 0, len(group.chunks))
	for seq := range group.chunks {
		seqs = append(seqs, seq)
	}
	sort.Ints(seqs)

	var out []byte
	for _, seq := range seqs {
		out = append(out, group.chunks[seq]...)
	}
	return out, nil
}

// Delete drops the group's buffered state.
func (r *ChunkRepository) Delete(groupId string) {
	r.cache.Delete(groupId)
}

// Has reports whether the group still holds buffered chunks.
func (r *ChunkRepository) Has(groupId string) bool {
	_, found := r.cache.Get(groupId)
	return found
}
