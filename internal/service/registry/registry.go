package registry

import (
	"sort"
	"sync"

	"github.com/cespare/xxhash/v2"
)

const DefaultShards = 32

type codeSet map[string]struct{}

type shard struct {
	mu    sync.RWMutex
	games map[string]codeSet // gameID → codes called so far
}

// CallRegistry keeps the codes already called per game. Games are spread
// over independently locked shards so unrelated games rarely contend.
type CallRegistry struct {
	shards []*shard
}

func New(shards int) *CallRegistry {
	if shards <= 0 {
		shards = DefaultShards
	}
	r := &CallRegistry{shards: make([]*shard, shards)}
	for i := range r.shards {
		r.shards[i] = &shard{games: make(map[string]codeSet)}
	}
	return r
}

func (r *CallRegistry) shardFor(gameID string) *shard {
	return r.shards[xxhash.Sum64String(gameID)%uint64(len(r.shards))]
}

// AddIfAbsent records code for the game and reports whether it was new.
// The game's set is created on first use under the same lock, so concurrent
// callers can never install two sets or both observe a fresh add.
func (r *CallRegistry) AddIfAbsent(gameID, code string) bool {
	s := r.shardFor(gameID)
	s.mu.Lock()
	defer s.mu.Unlock()

	codes, exists := s.games[gameID]
	if !exists {
		codes = make(codeSet)
		s.games[gameID] = codes
	}
	if _, called := codes[code]; called {
		return false
	}
	codes[code] = struct{}{}
	return true
}

// List returns a sorted copy of the codes called for the game. Unknown games
// yield an empty, non-nil slice.
func (r *CallRegistry) List(gameID string) []string {
	s := r.shardFor(gameID)
	s.mu.RLock()
	codes := s.games[gameID]
	out := make([]string, 0, len(codes))
	for code := range codes {
		out = append(out, code)
	}
	s.mu.RUnlock()

	sort.Strings(out)
	return out
}

// Clear drops the game's history. The next call recreates it.
func (r *CallRegistry) Clear(gameID string) {
	s := r.shardFor(gameID)
	s.mu.Lock()
	delete(s.games, gameID)
	s.mu.Unlock()
}

// Games returns how many games currently have history.
func (r *CallRegistry) Games() int {
	total := 0
	for _, s := range r.shards {
		s.mu.RLock()
		total += len(s.games)
		s.mu.RUnlock()
	}
	return total
}
