package membership

import (
	"context"
	"sort"
	"sync"
)

// Kind names the flag a store tracks.
type Kind string

const (
	KindLike Kind = "like"
	KindUsed Kind = "used"
)

// Store tracks a set of name uids with toggle semantics.
// Methods take a context and return an error so that a remote-backed
// implementation can satisfy the same contract.
type Store interface {
	Kind() Kind
	Has(ctx context.Context, uid string) (bool, error)
	Toggle(ctx context.Context, uid string) error
}

// MemoryStore implements Store with an in-process set.
type MemoryStore struct {
	kind    Kind
	mu      sync.RWMutex
	members map[string]struct{}
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns a MemoryStore preloaded with the supplied uids.
func NewMemoryStore(kind Kind, seed []string) *MemoryStore {
	members := make(map[string]struct{}, len(seed))
	for _, uid := range seed {
		members[uid] = struct{}{}
	}
	return &MemoryStore{kind: kind, members: members}
}

// Kind reports which flag this store tracks.
func (s *MemoryStore) Kind() Kind {
	return s.kind
}

// Has reports whether uid is currently a member. It never fails.
func (s *MemoryStore) Has(_ context.Context, uid string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.members[uid]
	return ok, nil
}

// Toggle removes uid if present and inserts it otherwise. It never fails.
func (s *MemoryStore) Toggle(_ context.Context, uid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.members[uid]; ok {
		delete(s.members, uid)
		return nil
	}
	s.members[uid] = struct{}{}
	return nil
}

// Members returns the current uids in sorted order.
func (s *MemoryStore) Members() []string {
	s.mu.RLock()
	out := make([]string, 0, len(s.members))
	for uid := range s.members {
		out = append(out, uid)
	}
	s.mu.RUnlock()

	sort.Strings(out)
	return out
}
