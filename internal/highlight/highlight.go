// Package highlight marks the prerequisite path of a node: the node, every
// ancestor up to its root and the edges between them.
package highlight

import (
	"fmt"

	"github.com/ziadkadry99/techtree/internal/graph"
)

// Path returns the nodes from id up to its root and the edges walked, in walk
// order. It terminates because graph.Build rejects cycles.
func Path(g *graph.Graph, id string) ([]string, []graph.Edge, error) {
	if !g.Has(id) {
		return nil, nil, fmt.Errorf("%w: %s", graph.ErrNodeNotFound, id)
	}
	var (
		nodes []string
		edges []graph.Edge
	)
	cur := id
	for {
		nodes = append(nodes, cur)
		parent, ok := g.Parent(cur)
		if !ok {
			return nodes, edges, nil
		}
		edges = append(edges, graph.Edge{Parent: parent, Child: cur})
		cur = parent
	}
}

// Highlighter keeps the highlighted state of one view of a graph.
type Highlighter struct {
	g *graph.Graph

	nodes     map[string]bool
	nodeOrder []string
	edges     map[string]bool
	edgeOrder []string
	// zOrder is the edge draw order; the last edge is drawn on top.
	zOrder []string
}

// New creates a highlighter with nothing highlighted and edges in their
// insertion order.
func New(g *graph.Graph) *Highlighter {
	h := &Highlighter{g: g}
	for _, e := range g.Edges() {
		h.zOrder = append(h.zOrder, e.ID())
	}
	h.Clear()
	return h
}

// Highlight marks id and its ancestor path. Each edge on the path is brought
// to the front so unhighlighted siblings cannot cover it.
func (h *Highlighter) Highlight(id string) error {
	nodes, edges, err := Path(h.g, id)
	if err != nil {
		return err
	}
	for _, n := range nodes {
		if !h.nodes[n] {
			h.nodes[n] = true
			h.nodeOrder = append(h.nodeOrder, n)
		}
	}
	for _, e := range edges {
		eid := e.ID()
		if !h.edges[eid] {
			h.edges[eid] = true
			h.edgeOrder = append(h.edgeOrder, eid)
		}
		h.bringToFront(eid)
	}
	return nil
}

// Unhighlight clears every highlight and then restores the path of focus, so
// leaving a hovered node does not erase the focused path. An empty focus
// leaves nothing highlighted.
func (h *Highlighter) Unhighlight(focus string) error {
	h.Clear()
	if focus == "" {
		return nil
	}
	return h.Highlight(focus)
}

// Clear removes all highlights. The edge draw order is kept.
func (h *Highlighter) Clear() {
	h.nodes = make(map[string]bool)
	h.nodeOrder = nil
	h.edges = make(map[string]bool)
	h.edgeOrder = nil
}

func (h *Highlighter) bringToFront(eid string) {
	for i, id := range h.zOrder {
		if id == eid {
			h.zOrder = append(h.zOrder[:i], h.zOrder[i+1:]...)
			break
		}
	}
	h.zOrder = append(h.zOrder, eid)
}

// IsHighlighted reports whether a node or edge id is highlighted.
func (h *Highlighter) IsHighlighted(id string) bool {
	return h.nodes[id] || h.edges[id]
}

// State is a snapshot of the highlighter for the renderer.
type State struct {
	Nodes  []string `json:"nodes"`
	Edges  []string `json:"edges"`
	ZOrder []string `json:"z_order"`
}

// State returns a copy of the current highlight.
func (h *Highlighter) State() State {
	return State{
		Nodes:  append([]string{}, h.nodeOrder...),
		Edges:  append([]string{}, h.edgeOrder...),
		ZOrder: append([]string{}, h.zOrder...),
	}
}
