package hierarchy

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/gekko3d/sceneedit/rt/core"
)

// Snapshot is the per-frame tree view of the scene. It is rebuilt from the
// store every frame and never mutated after Build returns.
type Snapshot struct {
	Roots    []core.NodeId
	Children map[core.NodeId][]core.NodeId
	Labels   map[core.NodeId]string
}

// Match is one hit of a hierarchy search.
type Match struct {
	Id    core.NodeId
	Label string
}

// PlaceholderLabel is the label shown for nodes without a name.
func PlaceholderLabel(id core.NodeId) string {
	return fmt.Sprintf("Entity %d", id)
}

// Build produces the snapshot for records. Hidden records are skipped. With a
// scopeRoot only the subtree reachable from it is kept; parent data is not
// trusted to be acyclic.
func Build(records []core.NodeRecord, scopeRoot *core.NodeId) *Snapshot {
	seen := make(map[core.NodeId]bool, len(records))
	labels := make(map[core.NodeId]string, len(records))
	children := make(map[core.NodeId][]core.NodeId)
	hasParent := make(map[core.NodeId]bool)
	var ids []core.NodeId

	for _, rec := range records {
		if rec.Hidden {
			continue
		}
		if seen[rec.Id] {
			continue
		}
		seen[rec.Id] = true
		ids = append(ids, rec.Id)

		if rec.Label != nil {
			labels[rec.Id] = *rec.Label
		} else {
			labels[rec.Id] = PlaceholderLabel(rec.Id)
		}

		if rec.Parent != nil {
			hasParent[rec.Id] = true
			if *rec.Parent != rec.Id {
				children[*rec.Parent] = append(children[*rec.Parent], rec.Id)
			}
		}
	}

	byLabel := func(a, b core.NodeId) int {
		return cmp.Compare(labels[a], labels[b])
	}

	snap := &Snapshot{
		Children: make(map[core.NodeId][]core.NodeId),
		Labels:   make(map[core.NodeId]string),
	}

	if scopeRoot == nil {
		for _, id := range ids {
			if !hasParent[id] {
				snap.Roots = append(snap.Roots, id)
			}
		}
		slices.SortStableFunc(snap.Roots, byLabel)
		for parent, kids := range children {
			kids = slices.Clone(kids)
			slices.SortStableFunc(kids, byLabel)
			snap.Children[parent] = kids
		}
		for id, label := range labels {
			snap.Labels[id] = label
		}
		return snap
	}

	root := *scopeRoot
	if _, ok := labels[root]; !ok {
		labels[root] = PlaceholderLabel(root)
	}
	snap.Roots = []core.NodeId{root}

	// Every node is claimed by the first list that reaches it, so a cycle
	// back into the scope cannot list a node twice.
	visited := map[core.NodeId]bool{root: true}
	stack := []core.NodeId{root}
	for len(stack) > 0 {
		n := len(stack) - 1
		current := stack[n]
		stack = stack[:n]

		snap.Labels[current] = labels[current]

		var kids []core.NodeId
		for _, child := range children[current] {
			if visited[child] {
				continue
			}
			visited[child] = true
			kids = append(kids, child)
		}
		if len(kids) == 0 {
			continue
		}
		slices.SortStableFunc(kids, byLabel)
		snap.Children[current] = kids
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, kids[i])
		}
	}
	return snap
}

// Contains reports whether id is part of the snapshot.
func (s *Snapshot) Contains(id core.NodeId) bool {
	_, ok := s.Labels[id]
	return ok
}

// Label returns the display label of id, or its placeholder when unknown.
func (s *Snapshot) Label(id core.NodeId) string {
	if l, ok := s.Labels[id]; ok {
		return l
	}
	return PlaceholderLabel(id)
}

// Filter returns every node whose label contains query, ignoring case,
// ordered by label.
func (s *Snapshot) Filter(query string) []Match {
	q := strings.ToLower(query)
	var out []Match
	for id, label := range s.Labels {
		if strings.Contains(strings.ToLower(label), q) {
			out = append(out, Match{Id: id, Label: label})
		}
	}
	slices.SortFunc(out, func(a, b Match) int {
		if c := cmp.Compare(a.Label, b.Label); c != 0 {
			return c
		}
		return cmp.Compare(a.Id, b.Id)
	})
	return out
}

// FindDescendant searches the subtree below root, depth first in display
// order, for the first node accepted by pred. root itself is not tested.
func (s *Snapshot) FindDescendant(root core.NodeId, pred func(id core.NodeId, label string) bool) (core.NodeId, bool) {
	visited := map[core.NodeId]bool{root: true}
	stack := pushReversed(nil, s.Children[root])
	for len(stack) > 0 {
		n := len(stack) - 1
		current := stack[n]
		stack = stack[:n]
		if visited[current] {
			continue
		}
		visited[current] = true

		if pred(current, s.Label(current)) {
			return current, true
		}
		stack = pushReversed(stack, s.Children[current])
	}
	return 0, false
}

// Walk visits the tree in display order. Returning false from fn skips the
// children of that node.
func (s *Snapshot) Walk(fn func(id core.NodeId, depth int) bool) {
	type entry struct {
		id    core.NodeId
		depth int
	}
	visited := make(map[core.NodeId]bool)
	var stack []entry
	for i := len(s.Roots) - 1; i >= 0; i-- {
		stack = append(stack, entry{s.Roots[i], 0})
	}
	for len(stack) > 0 {
		n := len(stack) - 1
		e := stack[n]
		stack = stack[:n]
		if visited[e.id] {
			continue
		}
		visited[e.id] = true

		if !fn(e.id, e.depth) {
			continue
		}
		kids := s.Children[e.id]
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, entry{kids[i], e.depth + 1})
		}
	}
}

func pushReversed(stack, ids []core.NodeId) []core.NodeId {
	for i := len(ids) - 1; i >= 0; i-- {
		stack = append(stack, ids[i])
	}
	return stack
}
