package graph

import (
	"encoding/json"
	"fmt"
)

// Category is the entity kind a node renders.
type Category string

const (
	CategoryUnit       Category = "UNIT"
	CategoryUniqueUnit Category = "UNIQUEUNIT"
	CategoryBuilding   Category = "BUILDING"
	CategoryTechnology Category = "TECHNOLOGY"
)

// Prefix returns the node id prefix used for entities of this category.
func (c Category) Prefix() string {
	switch c {
	case CategoryUnit, CategoryUniqueUnit:
		return "unit"
	case CategoryTechnology:
		return "tech"
	default:
		return "building"
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryUnit, CategoryUniqueUnit, CategoryBuilding, CategoryTechnology:
		return true
	}
	return false
}

// Placement is the box the layout provider assigned to a node.
type Placement struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Node is a unit, building or technology in the prerequisite graph.
// Nodes are immutable once the graph is built.
type Node struct {
	ID             string   `json:"id"`
	Category       Category `json:"type"`
	Name           string   `json:"name"`
	Lane           int      `json:"lane"`
	AlwaysDisabled bool     `json:"always_disabled,omitempty"`
	Placement
}

// Edge is a prerequisite relation from an enabling node to a dependent node.
// On the wire it is a two element array: [parent, child].
type Edge struct {
	Parent string
	Child  string
}

// ID returns the element id the renderer uses for the connection line.
func (e Edge) ID() string {
	return "connection_" + e.Parent + "_" + e.Child
}

func (e Edge) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{e.Parent, e.Child})
}

func (e *Edge) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("decoding edge: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("decoding edge: expected [parent, child], got %d ids", len(pair))
	}
	e.Parent, e.Child = pair[0], pair[1]
	return nil
}
