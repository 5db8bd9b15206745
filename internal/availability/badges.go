package availability

import (
	"strconv"
	"strings"

	"github.com/ziadkadry99/techtree/internal/graph"
)

// Civ is a faction as listed in the badge row.
type Civ struct {
	ID   string
	Name string
	Set  *Set
}

// Badge is the cross reference indicator of one faction for the focused entity.
type Badge struct {
	Civ     string  `json:"civ"`
	Name    string  `json:"name"`
	Image   string  `json:"image"`
	Active  bool    `json:"active"`
	Opacity float64 `json:"opacity"`
}

// CivImage returns the logo asset of a faction.
func CivImage(civ string) string {
	return "img/Civs/" + strings.ToLower(civ) + ".png"
}

// Badges returns one badge per faction in civs order. A badge is active when
// the faction has the entity, counting its unique units and technologies.
// entity is a node id such as "unit_122"; a reskinned slot must be passed as
// the entity it shows.
func Badges(entity string, c graph.Category, civs []Civ) []Badge {
	out := make([]Badge, 0, len(civs))
	for _, civ := range civs {
		b := Badge{Civ: civ.ID, Name: civ.Name, Image: CivImage(civ.ID), Opacity: 0.2}
		if civ.Set != nil && Has(civ.Set, entity, c) {
			b.Active = true
			b.Opacity = 1.0
		}
		out = append(out, b)
	}
	return out
}

// Has reports whether set includes entity of category c.
func Has(set *Set, entity string, c graph.Category) bool {
	entity = graph.StripVariant(entity)
	is := func(ids ...int) bool {
		for _, id := range ids {
			if graph.NodeID(c, strconv.Itoa(id)) == entity {
				return true
			}
		}
		return false
	}
	switch c {
	case graph.CategoryUnit, graph.CategoryUniqueUnit:
		return is(set.Units...) || is(set.Unique.CastleAgeUniqueUnit, set.Unique.ImperialAgeUniqueUnit)
	case graph.CategoryTechnology:
		return is(set.Techs...) || is(set.Unique.CastleAgeUniqueTech, set.Unique.ImperialAgeUniqueTech)
	case graph.CategoryBuilding:
		return is(set.Buildings...)
	}
	return false
}
