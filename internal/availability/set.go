package availability

import (
	"fmt"
	"strconv"

	"github.com/ziadkadry99/techtree/internal/graph"
)

// Generic unique slot nodes. They are placeholders in the shared tree layout and
// show a different entity for every faction.
const (
	SlotUniqueUnit      = "unit_UNIQUEUNIT"
	SlotEliteUniqueUnit = "unit_ELITEUNIQUEUNIT"
	SlotUniqueTech1     = "tech_UNIQUETECH1"
	SlotUniqueTech2     = "tech_UNIQUETECH2"
)

// MonkUnit is the unit whose image some factions swap through MonkPrefix.
const MonkUnit = 125

// Unique lists the four unique entities of a faction.
type Unique struct {
	CastleAgeUniqueUnit   int `json:"castleAgeUniqueUnit"`
	ImperialAgeUniqueUnit int `json:"imperialAgeUniqueUnit"`
	CastleAgeUniqueTech   int `json:"castleAgeUniqueTech"`
	ImperialAgeUniqueTech int `json:"imperialAgeUniqueTech"`
}

// Set is the availability of one faction as stored in the dataset's techtrees.
type Set struct {
	Buildings  []int  `json:"buildings"`
	Units      []int  `json:"units"`
	Techs      []int  `json:"techs"`
	Unique     Unique `json:"unique"`
	MonkPrefix string `json:"monkPrefix"`
}

// slot binds a placeholder node to the entity a faction shows in it.
type slot struct {
	node     string
	category graph.Category
	entity   int
}

func (s *Set) slots() []slot {
	return []slot{
		{SlotUniqueUnit, graph.CategoryUniqueUnit, s.Unique.CastleAgeUniqueUnit},
		{SlotEliteUniqueUnit, graph.CategoryUniqueUnit, s.Unique.ImperialAgeUniqueUnit},
		{SlotUniqueTech1, graph.CategoryTechnology, s.Unique.CastleAgeUniqueTech},
		{SlotUniqueTech2, graph.CategoryTechnology, s.Unique.ImperialAgeUniqueTech},
	}
}

// IsSlot reports whether id is one of the generic unique slots, with or
// without a variant suffix.
func IsSlot(id string) bool {
	switch graph.StripVariant(id) {
	case SlotUniqueUnit, SlotEliteUniqueUnit, SlotUniqueTech1, SlotUniqueTech2:
		return true
	}
	return false
}

// index is a membership lookup over a Set keyed by node id prefix.
type index map[string]map[int]bool

func newIndex(s *Set) index {
	idx := index{"unit": {}, "building": {}, "tech": {}}
	for _, id := range s.Units {
		idx["unit"][id] = true
	}
	for _, id := range s.Buildings {
		idx["building"][id] = true
	}
	for _, id := range s.Techs {
		idx["tech"][id] = true
	}
	return idx
}

// has reports whether the node id (prefix_rawid, variant allowed) is in the set.
// Ids without a numeric part never match.
func (idx index) has(nodeID string) bool {
	prefix, raw := graph.SplitID(graph.StripVariant(nodeID))
	n, err := strconv.Atoi(raw)
	if err != nil {
		return false
	}
	return idx[prefix][n]
}

// StaleReferenceError reports an id a faction references that the loaded
// dataset does not know.
type StaleReferenceError struct {
	Civ string
	ID  string
}

func (e *StaleReferenceError) Error() string {
	return fmt.Sprintf("availability: %s references unknown entity %s", e.Civ, e.ID)
}
