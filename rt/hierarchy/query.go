package hierarchy

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/gekko3d/sceneedit/rt/core"
)

// QueryEnv is what a query expression can see of one node.
type QueryEnv struct {
	Id       uint64 `expr:"id"`
	Label    string `expr:"label"`
	Depth    int    `expr:"depth"`
	Children int    `expr:"children"`
}

// Query is a compiled boolean node filter, for example
//
//	depth > 0 && label startsWith "Light"
type Query struct {
	src     string
	program *vm.Program
}

func CompileQuery(src string) (*Query, error) {
	program, err := expr.Compile(src, expr.Env(QueryEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("failed to compile query %q: %w", src, err)
	}
	return &Query{src: src, program: program}, nil
}

func (q *Query) String() string {
	return q.src
}

func (q *Query) Match(env QueryEnv) (bool, error) {
	out, err := expr.Run(q.program, env)
	if err != nil {
		return false, fmt.Errorf("query %q: %w", q.src, err)
	}
	ok, _ := out.(bool)
	return ok, nil
}

// Select returns the nodes accepted by q in display order.
func (s *Snapshot) Select(q *Query) ([]Match, error) {
	var out []Match
	var runErr error
	s.Walk(func(id core.NodeId, depth int) bool {
		if runErr != nil {
			return false
		}
		ok, err := q.Match(s.env(id, depth))
		if err != nil {
			runErr = err
			return false
		}
		if ok {
			out = append(out, Match{Id: id, Label: s.Label(id)})
		}
		return true
	})
	return out, runErr
}

// FindQuery is FindDescendant driven by a query. Depth is counted from root.
func (s *Snapshot) FindQuery(root core.NodeId, q *Query) (core.NodeId, bool, error) {
	depths := map[core.NodeId]int{root: 0}
	depthBelow(s, depths, root)
	var runErr error
	id, found := s.FindDescendant(root, func(id core.NodeId, _ string) bool {
		if runErr != nil {
			return false
		}
		ok, err := q.Match(s.env(id, depthBelow(s, depths, id)))
		if err != nil {
			runErr = err
			return false
		}
		return ok
	})
	if runErr != nil {
		return 0, false, runErr
	}
	return id, found, nil
}

func (s *Snapshot) env(id core.NodeId, depth int) QueryEnv {
	return QueryEnv{
		Id:       uint64(id),
		Label:    s.Label(id),
		Depth:    depth,
		Children: len(s.Children[id]),
	}
}

// depthBelow records the depth of the children of id as the search reaches
// it. FindDescendant visits parents before children, so id is always known.
func depthBelow(s *Snapshot, depths map[core.NodeId]int, id core.NodeId) int {
	d := depths[id]
	for _, child := range s.Children[id] {
		if _, ok := depths[child]; !ok {
			depths[child] = d + 1
		}
	}
	return d
}
