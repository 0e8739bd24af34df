package coursegraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddNode(t *testing.T) {
	g := New()

	g.AddNode(1)
	assert.Len(t, g.nodes, 1)

	g.AddNode(1) // idempotent
	assert.Len(t, g.nodes, 1)

	g.AddNode(2)
	assert.Len(t, g.nodes, 2)
}

func TestAddEdge(t *testing.T) {
	t.Run("maintains both directions", func(t *testing.T) {
		g := New()
		g.AddNode(1)
		g.AddNode(2)

		// course 2 requires course 1
		err := g.AddEdge(2, 1)
		require.NoError(t, err)

		assert.Equal(t, []int64{1}, g.Requires(2))
		assert.Equal(t, []int64{2}, g.Dependents(1))
		assert.Empty(t, g.Requires(1))
		assert.Empty(t, g.Dependents(2))
	})

	t.Run("error cases", func(t *testing.T) {
		g := New()
		g.AddNode(1)

		err := g.AddEdge(1, 99)
		assert.ErrorContains(t, err, "prerequisite node not found")

		err = g.AddEdge(99, 1)
		assert.ErrorContains(t, err, "course node not found")

		err = g.AddEdge(1, 1)
		assert.ErrorContains(t, err, "cannot be its own prerequisite")
	})
}

func TestRemoveEdge(t *testing.T) {
	g := New()
	g.AddNode(1)
	g.AddNode(2)
	require.NoError(t, g.AddEdge(2, 1))

	g.RemoveEdge(2, 1)
	assert.Empty(t, g.Requires(2))
	assert.Empty(t, g.Dependents(1))

	// removing a missing edge is a no-op
	g.RemoveEdge(2, 1)
	g.RemoveEdge(99, 1)
}

func TestWouldCreateCycle(t *testing.T) {
	t.Run("self reference is always a cycle", func(t *testing.T) {
		g := New()
		g.AddNode(1)
		assert.True(t, g.WouldCreateCycle(1, 1))
	})

	t.Run("direct cycle", func(t *testing.T) {
		// MAT-201 (2) requires MAT-101 (1); making 2 a prerequisite of 1
		// would close the loop.
		g := FromEdges(map[int64][]int64{2: {1}})

		assert.True(t, g.WouldCreateCycle(1, 2))
		assert.False(t, g.WouldCreateCycle(2, 1))
	})

	t.Run("transitive cycle", func(t *testing.T) {
		// 3 -> 2 -> 1
		g := FromEdges(map[int64][]int64{3: {2}, 2: {1}})

		assert.True(t, g.WouldCreateCycle(1, 3))
		assert.True(t, g.WouldCreateCycle(2, 3))
		assert.False(t, g.WouldCreateCycle(3, 1))
	})

	t.Run("diamond without cycle", func(t *testing.T) {
		// 4 requires 2 and 3, both require 1
		g := FromEdges(map[int64][]int64{4: {2, 3}, 2: {1}, 3: {1}})

		assert.False(t, g.WouldCreateCycle(4, 1))
		assert.True(t, g.WouldCreateCycle(1, 4))
		assert.True(t, g.WouldCreateCycle(2, 4))
	})

	t.Run("unknown candidate has no edges", func(t *testing.T) {
		g := FromEdges(map[int64][]int64{2: {1}})
		assert.False(t, g.WouldCreateCycle(2, 99))
	})

	t.Run("long chain visits nodes once", func(t *testing.T) {
		edges := make(map[int64][]int64)
		for i := int64(2); i <= 200; i++ {
			edges[i] = []int64{i - 1}
		}
		g := FromEdges(edges)

		assert.True(t, g.WouldCreateCycle(1, 200))
		assert.False(t, g.WouldCreateCycle(200, 1))
	})
}

func TestHasDependents(t *testing.T) {
	g := FromEdges(map[int64][]int64{2: {1}})

	assert.True(t, g.HasDependents(1))
	assert.False(t, g.HasDependents(2))
	assert.False(t, g.HasDependents(99))
}
