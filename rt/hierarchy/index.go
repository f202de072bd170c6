package hierarchy

import (
	"github.com/gekko3d/sceneedit/rt/core"
)

// Index is the raw parent/child adjacency of the store, hidden nodes
// included. It answers structural questions for hierarchy mutations, which
// must see the real relationships rather than the scoped panel view.
type Index struct {
	parent   map[core.NodeId]core.NodeId
	children map[core.NodeId][]core.NodeId
	known    map[core.NodeId]bool
}

// NewIndex builds the adjacency of records. Later duplicates of an id are ignored.
func NewIndex(records []core.NodeRecord) *Index {
	ix := &Index{
		parent:   make(map[core.NodeId]core.NodeId),
		children: make(map[core.NodeId][]core.NodeId),
		known:    make(map[core.NodeId]bool, len(records)),
	}
	for _, rec := range records {
		if ix.known[rec.Id] {
			continue
		}
		ix.known[rec.Id] = true
		if rec.Parent != nil {
			ix.parent[rec.Id] = *rec.Parent
			ix.children[*rec.Parent] = append(ix.children[*rec.Parent], rec.Id)
		}
	}
	return ix
}

// Contains reports whether id appeared in the records.
func (ix *Index) Contains(id core.NodeId) bool {
	return ix.known[id]
}

// Parent returns the recorded parent of id, if any.
func (ix *Index) Parent(id core.NodeId) (core.NodeId, bool) {
	p, ok := ix.parent[id]
	return p, ok
}

// IsDescendant reports whether node lies strictly below ancestor.
func (ix *Index) IsDescendant(ancestor, node core.NodeId) bool {
	found := false
	ix.visitBelow(ancestor, func(id core.NodeId) bool {
		if id == node {
			found = true
			return false
		}
		return true
	})
	return found
}

// Descendants lists every node strictly below root, each once.
func (ix *Index) Descendants(root core.NodeId) []core.NodeId {
	var out []core.NodeId
	ix.visitBelow(root, func(id core.NodeId) bool {
		out = append(out, id)
		return true
	})
	return out
}

func (ix *Index) visitBelow(root core.NodeId, fn func(core.NodeId) bool) {
	visited := map[core.NodeId]bool{root: true}
	stack := append([]core.NodeId(nil), ix.children[root]...)
	for len(stack) > 0 {
		n := len(stack) - 1
		current := stack[n]
		stack = stack[:n]
		if visited[current] {
			continue
		}
		visited[current] = true
		if !fn(current) {
			return
		}
		stack = append(stack, ix.children[current]...)
	}
}
