package highlight

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/techtree/internal/graph"
)

// chain builds building_12 -> unit_74 -> unit_75 -> unit_77 plus a sibling
// branch building_12 -> unit_93.
func chain(t *testing.T) *graph.Graph {
	t.Helper()
	var nodes []graph.Node
	for _, id := range []string{"building_12", "unit_74", "unit_75", "unit_77", "unit_93", "building_87"} {
		nodes = append(nodes, graph.Node{ID: id})
	}
	g, err := graph.Build(nodes, []graph.Edge{
		{Parent: "building_12", Child: "unit_74"},
		{Parent: "unit_74", Child: "unit_75"},
		{Parent: "unit_75", Child: "unit_77"},
		{Parent: "building_12", Child: "unit_93"},
	})
	require.NoError(t, err)
	return g
}

func TestPath(t *testing.T) {
	g := chain(t)

	nodes, edges, err := Path(g, "unit_77")
	require.NoError(t, err)
	assert.Equal(t, []string{"unit_77", "unit_75", "unit_74", "building_12"}, nodes)
	assert.Equal(t, []graph.Edge{
		{Parent: "unit_75", Child: "unit_77"},
		{Parent: "unit_74", Child: "unit_75"},
		{Parent: "building_12", Child: "unit_74"},
	}, edges)

	nodes, edges, err = Path(g, "building_87")
	require.NoError(t, err)
	assert.Equal(t, []string{"building_87"}, nodes)
	assert.Empty(t, edges)

	_, _, err = Path(g, "unit_1")
	assert.True(t, errors.Is(err, graph.ErrNodeNotFound))
}

func TestHighlightVisitsEachAncestorOnce(t *testing.T) {
	// A long chain: every ancestor must appear exactly once.
	var nodes []graph.Node
	var edges []graph.Edge
	for i := 0; i < 50; i++ {
		nodes = append(nodes, graph.Node{ID: fmt.Sprintf("tech_%d", i)})
		if i > 0 {
			edges = append(edges, graph.Edge{Parent: fmt.Sprintf("tech_%d", i-1), Child: fmt.Sprintf("tech_%d", i)})
		}
	}
	g, err := graph.Build(nodes, edges)
	require.NoError(t, err)

	h := New(g)
	require.NoError(t, h.Highlight("tech_49"))
	st := h.State()
	assert.Len(t, st.Nodes, 50)
	assert.Len(t, st.Edges, 49)

	seen := map[string]bool{}
	for _, n := range st.Nodes {
		assert.False(t, seen[n], "visited twice: %s", n)
		seen[n] = true
	}
}

func TestHighlightRootOnly(t *testing.T) {
	h := New(chain(t))
	require.NoError(t, h.Highlight("building_12"))
	st := h.State()
	assert.Equal(t, []string{"building_12"}, st.Nodes)
	assert.Empty(t, st.Edges)
}

func TestHighlightBringsEdgesToFront(t *testing.T) {
	h := New(chain(t))
	before := h.State().ZOrder
	assert.Equal(t, []string{
		"connection_building_12_unit_74",
		"connection_unit_74_unit_75",
		"connection_unit_75_unit_77",
		"connection_building_12_unit_93",
	}, before)

	require.NoError(t, h.Highlight("unit_75"))
	st := h.State()
	assert.Equal(t, []string{
		"connection_unit_75_unit_77",
		"connection_building_12_unit_93",
		"connection_unit_74_unit_75",
		"connection_building_12_unit_74",
	}, st.ZOrder)
	assert.True(t, h.IsHighlighted("connection_unit_74_unit_75"))
	assert.False(t, h.IsHighlighted("connection_building_12_unit_93"))
}

func TestUnhighlightRestoresFocus(t *testing.T) {
	h := New(chain(t))
	focus := "unit_93"
	require.NoError(t, h.Highlight(focus))

	// Hover over another node, then leave it.
	require.NoError(t, h.Highlight("unit_77"))
	assert.True(t, h.IsHighlighted("unit_75"))

	require.NoError(t, h.Unhighlight(focus))
	st := h.State()
	assert.Equal(t, []string{"unit_93", "building_12"}, st.Nodes)
	assert.Equal(t, []string{"connection_building_12_unit_93"}, st.Edges)
	assert.False(t, h.IsHighlighted("unit_75"))

	require.NoError(t, h.Unhighlight(""))
	assert.Empty(t, h.State().Nodes)
}

func TestHighlightUnknownNode(t *testing.T) {
	h := New(chain(t))
	err := h.Highlight("unit_404")
	assert.True(t, errors.Is(err, graph.ErrNodeNotFound))
	assert.Empty(t, h.State().Nodes)
}
