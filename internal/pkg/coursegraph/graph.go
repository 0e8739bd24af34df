// Package coursegraph maintains the directed prerequisite graph between
// courses. An edge course -> prerequisite means the prerequisite must be
// completed before the course. Both directions of every edge are stored
// explicitly so "what does X require" and "what requires X" are equally
// cheap to answer.
package coursegraph

import (
	"fmt"
	"sort"
	"sync"
)

type node struct {
	id         int64
	requires   map[int64]*node // prerequisites of this course
	dependents map[int64]*node // courses that list this course as prerequisite
}

// Graph is a thread-safe in-memory projection of the prerequisite edges.
type Graph struct {
	mu    sync.RWMutex
	nodes map[int64]*node
}

// New creates an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[int64]*node),
	}
}

// FromEdges builds a graph from a course -> prerequisite ids adjacency map.
// Nodes referenced only as prerequisites are created as well.
func FromEdges(edges map[int64][]int64) *Graph {
	g := New()
	for courseID, prereqIDs := range edges {
		g.AddNode(courseID)
		for _, prereqID := range prereqIDs {
			g.AddNode(prereqID)
			// Edges from the store are already cycle-free.
			_ = g.addEdgeLocked(courseID, prereqID)
		}
	}
	return g
}

// AddNode adds a node with the given id. Adding an existing id is a no-op.
func (g *Graph) AddNode(id int64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.nodes[id]; ok {
		return
	}

	g.nodes[id] = &node{
		id:         id,
		requires:   make(map[int64]*node),
		dependents: make(map[int64]*node),
	}
}

// AddEdge records that courseID has prerequisiteID as a prerequisite,
// updating both endpoints. An error is returned if either node is unknown
// or the edge is a self-reference.
func (g *Graph) AddEdge(courseID, prerequisiteID int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.addEdgeLocked(courseID, prerequisiteID)
}

func (g *Graph) addEdgeLocked(courseID, prerequisiteID int64) error {
	if courseID == prerequisiteID {
		return fmt.Errorf("course %d cannot be its own prerequisite", courseID)
	}

	courseNode, ok := g.nodes[courseID]
	if !ok {
		return fmt.Errorf("course node not found: %d", courseID)
	}

	prereqNode, ok := g.nodes[prerequisiteID]
	if !ok {
		return fmt.Errorf("prerequisite node not found: %d", prerequisiteID)
	}

	courseNode.requires[prerequisiteID] = prereqNode
	prereqNode.dependents[courseID] = courseNode

	return nil
}

// RemoveEdge removes the prerequisite edge from both endpoints. Removing a
// missing edge is a no-op.
func (g *Graph) RemoveEdge(courseID, prerequisiteID int64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if courseNode, ok := g.nodes[courseID]; ok {
		delete(courseNode.requires, prerequisiteID)
	}
	if prereqNode, ok := g.nodes[prerequisiteID]; ok {
		delete(prereqNode.dependents, courseID)
	}
}

// Requires returns the sorted ids of the direct prerequisites of a course.
func (g *Graph) Requires(id int64) []int64 {
	g.mu.RLock()
	defer g.mu.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil
	}
	return sortedKeys(n.requires)
}

// Dependents returns the sorted ids of the courses that directly require
// the given course.
func (g *Graph) Dependents(id int64) []int64 {
	g.mu.RLock()
	defer g.mu.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil
	}
	return sortedKeys(n.dependents)
}

// HasDependents reports whether any course requires the given course.
func (g *Graph) HasDependents(id int64) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	n, ok := g.nodes[id]
	return ok && len(n.dependents) > 0
}

// WouldCreateCycle reports whether adding candidateID as a prerequisite of
// courseID would close a directed cycle. A self-reference is a cycle
// immediately. Otherwise the check walks the candidate's prerequisites
// transitively: if that walk can reach courseID, then courseID would depend
// on something that already depends on courseID. Nodes are visited at most
// once; unknown ids have no edges and terminate the walk.
func (g *Graph) WouldCreateCycle(courseID, candidateID int64) bool {
	if courseID == candidateID {
		return true
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	start, ok := g.nodes[candidateID]
	if !ok {
		return false
	}

	visited := make(map[int64]bool)

	var visit func(n *node) bool
	visit = func(n *node) bool {
		if n.id == courseID {
			return true
		}
		if visited[n.id] {
			return false
		}
		visited[n.id] = true

		for _, prereq := range n.requires {
			if visit(prereq) {
				return true
			}
		}
		return false
	}

	return visit(start)
}

func sortedKeys(m map[int64]*node) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
