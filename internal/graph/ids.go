package graph

import "strings"

// VariantSuffix marks an alternate rendering of the same entity, e.g. a unit
// drawn in two lanes.
const VariantSuffix = "_copy"

// StripVariant removes the variant suffix from a node id.
func StripVariant(id string) string {
	return strings.Replace(id, VariantSuffix, "", 1)
}

// SplitID splits a node id into its category prefix and raw entity id:
// "unit_93" -> ("unit", "93"). The variant suffix is not removed.
func SplitID(id string) (prefix, raw string) {
	i := strings.IndexByte(id, '_')
	if i < 0 {
		return id, ""
	}
	return id[:i], id[i+1:]
}

// RawID returns the entity id a node refers to with prefix and variant removed.
func RawID(id string) string {
	_, raw := SplitID(StripVariant(id))
	return raw
}

// NodeID builds the node id of an entity of the given category.
func NodeID(c Category, raw string) string {
	return c.Prefix() + "_" + raw
}

var imageDirs = strings.NewReplacer(
	"building_", "Buildings/",
	"unit_", "Units/",
	"tech_", "Techs/",
)

// ImagePath returns the image asset for a node id, e.g. "img/Units/93.png".
func ImagePath(id string) string {
	return "img/" + imageDirs.Replace(StripVariant(id)) + ".png"
}

// LaneClass is the class the renderer puts on the lane background containing id.
func LaneClass(id string) string {
	return "lane-with-" + id
}
