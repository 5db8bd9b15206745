package dataset

import (
	"fmt"

	"github.com/ziadkadry99/techtree/internal/availability"
	"github.com/ziadkadry99/techtree/internal/graph"
	"github.com/ziadkadry99/techtree/internal/helptext"
	"github.com/ziadkadry99/techtree/internal/metadata"
)

// HelpView is the help panel of a focused node.
type HelpView struct {
	Node          string               `json:"node"`
	Entity        string               `json:"entity"`
	Category      graph.Category       `json:"category"`
	Name          string               `json:"name"`
	HTML          string               `json:"html"`
	AdvancedStats string               `json:"advanced_stats"`
	Badges        []availability.Badge `json:"badges"`
}

// Help builds the help panel of nodeID. When ov is set, a reskinned unique
// slot describes the faction's own entity. Missing metadata or strings degrade
// to placeholders; only an unknown node is an error.
func (d *Dataset) Help(ov *availability.Overlay, nodeID string) (*HelpView, error) {
	n, ok := d.Graph.Node(nodeID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", graph.ErrNodeNotFound, nodeID)
	}

	view := &HelpView{
		Node:     n.ID,
		Entity:   graph.StripVariant(n.ID),
		Category: n.Category,
		Name:     n.Name,
		HTML:     metadata.Placeholder,
	}
	if ov != nil {
		if ns, ok := ov.Node(n.ID); ok {
			view.Entity = ns.Entity
			view.Name = ns.Name
		}
	}

	rec, err := d.Resolver.Resolve(n.Category, graph.RawID(view.Entity))
	if err == nil {
		if raw, err := d.Resolver.HelpText(rec); err == nil {
			view.HTML = helptext.Render(n.Category, raw, rec)
		}
		view.AdvancedStats = helptext.AdvancedStats(rec)
		if name, err := d.Resolver.Name(rec); err == nil && view.Name == "" {
			view.Name = name
		}
	}

	view.Badges = availability.Badges(view.Entity, n.Category, d.Civs())
	return view, nil
}

// NodeName returns the localized name of a node, or its tree label when the
// metadata has none.
func (d *Dataset) NodeName(nodeID string) string {
	n, ok := d.Graph.Node(nodeID)
	if !ok {
		return ""
	}
	if rec, err := d.Resolver.ResolveNode(n.Category, nodeID); err == nil {
		if name, err := d.Resolver.Name(rec); err == nil {
			return name
		}
	}
	return n.Name
}
