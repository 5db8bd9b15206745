package availability

import (
	"log"
	"sort"
	"strconv"

	"github.com/ziadkadry99/techtree/internal/graph"
	"github.com/ziadkadry99/techtree/internal/metadata"
)

// NodeState is what the renderer needs to draw one node for the selected
// faction.
type NodeState struct {
	Node   string `json:"node"`
	State  State  `json:"state"`
	Layers Layers `json:"layers"`
	// Entity is the node id of the entity shown. It differs from Node only for
	// reskinned unique slots.
	Entity string `json:"entity"`
	Name   string `json:"name"`
	Image  string `json:"image"`
}

// Overlay is the result of applying one faction to a graph.
type Overlay struct {
	Civ   string                `json:"civ"`
	Nodes map[string]*NodeState `json:"nodes"`
	Stale []error               `json:"-"`
}

// GenericPass evaluates membership for every node. Always disabled nodes stay
// disabled and the unique slots are forced disabled; the reskin pass decides
// what they show.
func GenericPass(g *graph.Graph, set *Set) map[string]State {
	idx := newIndex(set)
	states := make(map[string]State, g.Len())
	for _, n := range g.Nodes() {
		switch {
		case n.AlwaysDisabled, IsSlot(n.ID):
			states[n.ID] = Disabled
		case idx.has(n.ID):
			states[n.ID] = Enabled
		default:
			states[n.ID] = Disabled
		}
	}
	return states
}

// Apply runs the generic pass and then reskins the unique slots of civ. The
// order matters: the reskin overrides slots the generic pass disabled.
// References to entities the dataset does not know are skipped and collected
// in Overlay.Stale.
func Apply(g *graph.Graph, res *metadata.Resolver, civ string, set *Set) *Overlay {
	ov := &Overlay{Civ: civ, Nodes: make(map[string]*NodeState, g.Len())}

	states := GenericPass(g, set)
	for _, n := range g.Nodes() {
		st := states[n.ID]
		ns := &NodeState{
			Node:   n.ID,
			State:  st,
			Layers: LayersFor(st),
			Entity: graph.StripVariant(n.ID),
			Name:   n.Name,
			Image:  graph.ImagePath(n.ID),
		}
		if ns.Entity == graph.NodeID(graph.CategoryUnit, strconv.Itoa(MonkUnit)) && set.MonkPrefix != "" {
			ns.Image = "img/Units/" + set.MonkPrefix + strconv.Itoa(MonkUnit) + ".png"
		}
		ov.Nodes[n.ID] = ns
	}

	ov.Stale = append(ov.Stale, staleListed(g, civ, set)...)

	for _, s := range set.slots() {
		entity := graph.NodeID(s.category, strconv.Itoa(s.entity))
		rec, err := res.Resolve(s.category, strconv.Itoa(s.entity))
		if err != nil {
			ov.Stale = append(ov.Stale, &StaleReferenceError{Civ: civ, ID: entity})
			continue
		}
		name := res.StringOr(rec.LanguageNameId, metadata.Placeholder)
		for _, ns := range ov.Nodes {
			if graph.StripVariant(ns.Node) != s.node {
				continue
			}
			ns.State = UniqueReskin
			ns.Layers = LayersFor(UniqueReskin)
			ns.Entity = entity
			ns.Name = name
			ns.Image = graph.ImagePath(entity)
		}
	}

	for _, err := range ov.Stale {
		log.Printf("availability: skipping reference: %v", err)
	}
	return ov
}

func staleListed(g *graph.Graph, civ string, set *Set) []error {
	var stale []error
	check := func(c graph.Category, ids []int) {
		for _, id := range ids {
			nodeID := graph.NodeID(c, strconv.Itoa(id))
			if !g.Has(nodeID) {
				stale = append(stale, &StaleReferenceError{Civ: civ, ID: nodeID})
			}
		}
	}
	check(graph.CategoryBuilding, set.Buildings)
	check(graph.CategoryUnit, set.Units)
	check(graph.CategoryTechnology, set.Techs)
	return stale
}

// Node returns the state of a node.
func (o *Overlay) Node(id string) (*NodeState, bool) {
	ns, ok := o.Nodes[id]
	return ns, ok
}

// Representing returns the node currently showing entity, preferring the plain
// node over a variant.
func (o *Overlay) Representing(entity string) (*NodeState, bool) {
	var found *NodeState
	for _, id := range o.sortedIDs() {
		ns := o.Nodes[id]
		if ns.Entity != entity {
			continue
		}
		if found == nil || ns.Node == graph.StripVariant(ns.Node) {
			found = ns
		}
	}
	return found, found != nil
}

// Enabled returns the ids of all nodes not disabled, sorted.
func (o *Overlay) Enabled() []string {
	var out []string
	for _, id := range o.sortedIDs() {
		if o.Nodes[id].State != Disabled {
			out = append(out, id)
		}
	}
	return out
}

func (o *Overlay) sortedIDs() []string {
	ids := make([]string, 0, len(o.Nodes))
	for id := range o.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
