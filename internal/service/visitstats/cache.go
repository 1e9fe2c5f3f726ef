package visitstats

import (
	"sync"

	"github.com/eigenfit/eigenfit-backend-go/internal/domain/visitstats"
)

// snapshotCache holds the latest snapshot per branch. Rebuilds take a
// sequence number before they hit the database; a slow rebuild that
// finishes after a newer one is discarded instead of clobbering fresher
// data.
type snapshotCache struct {
	mu        sync.RWMutex
	snapshots map[string]visitstats.Snapshot
	nextSeq   map[string]uint64
}

func newSnapshotCache() *snapshotCache {
	return &snapshotCache{
		snapshots: make(map[string]visitstats.Snapshot),
		nextSeq:   make(map[string]uint64),
	}
}

// NextSeq issues the sequence number for a rebuild that is about to start.
func (c *snapshotCache) NextSeq(branchID string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextSeq[branchID]++
	return c.nextSeq[branchID]
}

// Store keeps the snapshot only when it is at least as new as the one
// already cached. It reports whether the snapshot was kept.
func (c *snapshotCache) Store(snap visitstats.Snapshot) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cur, ok := c.snapshots[snap.BranchID]; ok && snap.Sequence < cur.Sequence {
		return false
	}
	c.snapshots[snap.BranchID] = snap
	return true
}

func (c *snapshotCache) Get(branchID string) (visitstats.Snapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	snap, ok := c.snapshots[branchID]
	return snap, ok
}
