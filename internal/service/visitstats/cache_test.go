package visitstats

import (
	"testing"

	"github.com/eigenfit/eigenfit-backend-go/internal/domain/visitstats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotCache_SequencesAreMonotonicPerBranch(t *testing.T) {
	t.Parallel()
	c := newSnapshotCache()

	assert.Equal(t, uint64(1), c.NextSeq("b1"))
	assert.Equal(t, uint64(2), c.NextSeq("b1"))
	assert.Equal(t, uint64(1), c.NextSeq("b2"))
}

func TestSnapshotCache_DiscardsStaleSnapshot(t *testing.T) {
	t.Parallel()
	c := newSnapshotCache()

	// Two rebuilds start; the older one finishes last.
	oldSeq := c.NextSeq("b1")
	newSeq := c.NextSeq("b1")

	kept := c.Store(visitstats.Snapshot{BranchID: "b1", Sequence: newSeq, TotalVisits: 20})
	assert.True(t, kept)

	kept = c.Store(visitstats.Snapshot{BranchID: "b1", Sequence: oldSeq, TotalVisits: 5})
	assert.False(t, kept)

	snap, ok := c.Get("b1")
	require.True(t, ok)
	assert.Equal(t, 20, snap.TotalVisits)
	assert.Equal(t, newSeq, snap.Sequence)
}

func TestSnapshotCache_BranchesAreIndependent(t *testing.T) {
	t.Parallel()
	c := newSnapshotCache()

	c.Store(visitstats.Snapshot{BranchID: "b1", Sequence: c.NextSeq("b1"), TotalVisits: 3})
	c.Store(visitstats.Snapshot{BranchID: "b2", Sequence: c.NextSeq("b2"), TotalVisits: 7})

	s1, ok := c.Get("b1")
	require.True(t, ok)
	s2, ok := c.Get("b2")
	require.True(t, ok)

	assert.Equal(t, 3, s1.TotalVisits)
	assert.Equal(t, 7, s2.TotalVisits)
}

func TestSnapshotCache_GetMissingBranch(t *testing.T) {
	t.Parallel()
	c := newSnapshotCache()

	_, ok := c.Get("nope")
	assert.False(t, ok)
}
