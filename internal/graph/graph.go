// Package graph holds the prerequisite graph of a tech tree: the nodes placed by
// the layout provider and the parent -> child edges between them.
//
// A Graph is built once per dataset load and is read-only afterwards, so it can
// be shared between sessions without locking.
package graph

import "fmt"

// Graph is a validated prerequisite forest.
type Graph struct {
	nodes    map[string]*Node
	order    []string
	edges    []Edge
	children map[string][]string
	parent   map[string]string
}

// Build indexes nodes and edges and validates the invariants the highlight walk
// depends on: every edge endpoint exists, every child has at most one parent and
// the parent chains contain no cycle.
func Build(nodes []Node, edges []Edge) (*Graph, error) {
	g := &Graph{
		nodes:    make(map[string]*Node, len(nodes)),
		order:    make([]string, 0, len(nodes)),
		edges:    make([]Edge, 0, len(edges)),
		children: make(map[string][]string),
		parent:   make(map[string]string, len(edges)),
	}

	for i := range nodes {
		n := nodes[i]
		if _, exists := g.nodes[n.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateNode, n.ID)
		}
		g.nodes[n.ID] = &n
		g.order = append(g.order, n.ID)
	}

	for _, e := range edges {
		if _, ok := g.nodes[e.Parent]; !ok {
			return nil, fmt.Errorf("%w: edge %s -> %s references %s", ErrNodeNotFound, e.Parent, e.Child, e.Parent)
		}
		if _, ok := g.nodes[e.Child]; !ok {
			return nil, fmt.Errorf("%w: edge %s -> %s references %s", ErrNodeNotFound, e.Parent, e.Child, e.Child)
		}
		if existing, ok := g.parent[e.Child]; ok {
			return nil, &MultipleParentsError{Child: e.Child, First: existing, Second: e.Parent}
		}
		g.parent[e.Child] = e.Parent
		g.children[e.Parent] = append(g.children[e.Parent], e.Child)
		g.edges = append(g.edges, e)
	}

	if err := g.checkAcyclic(); err != nil {
		return nil, err
	}
	return g, nil
}

// checkAcyclic walks every parent chain once. With at most one parent per node
// a cycle shows up as a node revisited on the walk currently in progress.
func (g *Graph) checkAcyclic() error {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(g.nodes))

	for _, id := range g.order {
		var path []string
		cur := id
		for state[cur] != done {
			if state[cur] == visiting {
				return &GraphCycleError{Node: cur, Path: cycleFrom(path, cur)}
			}
			state[cur] = visiting
			path = append(path, cur)
			p, ok := g.parent[cur]
			if !ok {
				break
			}
			cur = p
		}
		for _, n := range path {
			state[n] = done
		}
	}
	return nil
}

func cycleFrom(path []string, start string) []string {
	for i, id := range path {
		if id == start {
			cycle := append([]string{}, path[i:]...)
			return append(cycle, start)
		}
	}
	return append(path, start)
}

// Node returns the node with the given id.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Has reports whether id is part of the graph.
func (g *Graph) Has(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Nodes returns all nodes in the order they were supplied.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}
	return out
}

// Edges returns the edges in insertion order, which is also the draw order.
func (g *Graph) Edges() []Edge {
	return append([]Edge(nil), g.edges...)
}

// Parent returns the single parent of id, if any.
func (g *Graph) Parent(id string) (string, bool) {
	p, ok := g.parent[id]
	return p, ok
}

// Children returns the children of id in insertion order.
func (g *Graph) Children(id string) []string {
	return append([]string(nil), g.children[id]...)
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.order) }
