package hashring

import (
	"fmt"
	"sort"
	"strconv"
	"sync"

	"conshash/hasher"
)

// Node is the capability set a ring member must provide. String returns the
// node's identity; it must be stable and deterministic, since replica hash
// keys are derived from it on every add and remove. Clone returns an
// independent copy, so later mutation of a caller's node does not affect
// entries already on the ring.
type Node[T any] interface {
	String() string
	Clone() T
}

// Ring implements consistent hashing with virtual nodes. Each physical node
// occupies a fixed number of positions (replicas) on the 64-bit hash circle;
// a key belongs to the node at the first position clockwise from the key's
// hash, wrapping past the top of the space back to the lowest position.
//
// The ring is safe for concurrent use: lookups take a read lock, mutations
// take a write lock.
type Ring[T Node[T]] struct {
	mu       sync.RWMutex
	replicas int
	hash     hasher.Hash64
	keys     []uint64     // sorted ascending
	nodes    map[uint64]T // replica hash -> node copy
}

// New creates an empty ring placing replicas virtual positions per node.
// replicas must be at least 1; a zero-replica ring could never route
// anything, so the misconfiguration is rejected here rather than surfacing
// as permanent lookup misses later. A nil fn selects hasher.XXHash. The
// same fn hashes both node identities and, via Locate, lookup keys.
func New[T Node[T]](replicas int, fn hasher.Hash64) (*Ring[T], error) {
	if replicas < 1 {
		return nil, fmt.Errorf("hashring: replica count must be at least 1, got %d", replicas)
	}
	if fn == nil {
		fn = hasher.XXHash
	}
	return &Ring[T]{
		replicas: replicas,
		hash:     fn,
		keys:     make([]uint64, 0),
		nodes:    make(map[uint64]T),
	}, nil
}

// AddNode places the node's replicas on the ring. Re-adding a present node
// recomputes the same keys and overwrites the same entries, so the call is
// idempotent. If a replica key collides with an entry from a different
// node, the newer node silently overwrites the older one at that position
// (last write wins); the displaced node keeps its remaining replicas. This
// is an accepted limitation, not an error.
func (r *Ring[T]) AddNode(node T) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := node.String()
	for i := 0; i < r.replicas; i++ {
		key := r.replicaKey(id, i)
		if _, exists := r.nodes[key]; !exists {
			// Insert in sorted order
			idx := sort.Search(len(r.keys), func(j int) bool {
				return r.keys[j] >= key
			})
			r.keys = append(r.keys, 0)
			copy(r.keys[idx+1:], r.keys[idx:])
			r.keys[idx] = key
		}
		r.nodes[key] = node.Clone()
	}
}

// AddNodes places each node on the ring, in order.
func (r *Ring[T]) AddNodes(nodes []T) {
	for _, node := range nodes {
		r.AddNode(node)
	}
}

// RemoveNode deletes the node's replica entries. The keys are recomputed
// from the node's identity, so removing an absent node, or removing twice,
// is a no-op. If another node's replica overwrote one of this node's
// positions (see AddNode), removal deletes that colliding entry too: the
// later writer loses the position along with the node it displaced.
func (r *Ring[T]) RemoveNode(node T) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := node.String()
	for i := 0; i < r.replicas; i++ {
		key := r.replicaKey(id, i)
		if _, exists := r.nodes[key]; !exists {
			continue
		}
		delete(r.nodes, key)
		idx := sort.Search(len(r.keys), func(j int) bool {
			return r.keys[j] >= key
		})
		if idx < len(r.keys) && r.keys[idx] == key {
			r.keys = append(r.keys[:idx], r.keys[idx+1:]...)
		}
	}
}

// RemoveNodes deletes each node's replica entries, in order.
func (r *Ring[T]) RemoveNodes(nodes []T) {
	for _, node := range nodes {
		r.RemoveNode(node)
	}
}

// GetNode returns the node owning the given key hash: the entry at the
// smallest stored hash >= keyHash, wrapping around to the smallest stored
// hash when keyHash is greater than every entry. The returned node is a
// clone of the stored copy. Returns (zero, false) only when the ring is
// empty.
//
// The caller must produce keyHash with the same hash function the ring was
// constructed with; Locate does this automatically.
func (r *Ring[T]) GetNode(keyHash uint64) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var zero T
	if len(r.keys) == 0 {
		return zero, false
	}

	idx := sort.Search(len(r.keys), func(i int) bool {
		return r.keys[i] >= keyHash
	})

	// Wrap around if keyHash is greater than all stored hashes
	if idx == len(r.keys) {
		idx = 0
	}

	return r.nodes[r.keys[idx]].Clone(), true
}

// Locate hashes the key with the ring's own hash function and returns the
// owning node, as GetNode.
func (r *Ring[T]) Locate(key string) (T, bool) {
	return r.GetNode(r.hash([]byte(key)))
}

// GetNodes returns up to n distinct nodes starting at the owner of keyHash
// and walking clockwise. The first element, when present, is the node
// GetNode would return. Fewer than n nodes are returned when the ring holds
// fewer distinct members.
func (r *Ring[T]) GetNodes(keyHash uint64, n int) []T {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.keys) == 0 || n <= 0 {
		return []T{}
	}

	idx := sort.Search(len(r.keys), func(i int) bool {
		return r.keys[i] >= keyHash
	})
	if idx == len(r.keys) {
		idx = 0
	}

	seen := make(map[string]bool)
	result := make([]T, 0, n)
	for i := 0; i < len(r.keys) && len(result) < n; i++ {
		node := r.nodes[r.keys[(idx+i)%len(r.keys)]]
		id := node.String()
		if !seen[id] {
			seen[id] = true
			result = append(result, node.Clone())
		}
	}
	return result
}

// Members returns the distinct physical nodes currently on the ring, in no
// particular order.
func (r *Ring[T]) Members() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	members := make([]T, 0)
	for _, node := range r.nodes {
		id := node.String()
		if !seen[id] {
			seen[id] = true
			members = append(members, node.Clone())
		}
	}
	return members
}

// Len returns the number of replica entries stored on the ring. A ring with
// Len() == 0 answers every lookup with no node.
func (r *Ring[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.keys)
}

// replicaKey derives the hash position of the i-th replica of the node
// with the given identity.
func (r *Ring[T]) replicaKey(id string, i int) uint64 {
	return r.hash([]byte(id + strconv.Itoa(i)))
}
