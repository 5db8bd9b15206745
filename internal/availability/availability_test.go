package availability

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/techtree/internal/graph"
	"github.com/ziadkadry99/techtree/internal/metadata"
)

func testGraph(t *testing.T) *graph.Graph {
	t.Helper()
	nodes := []graph.Node{
		{ID: "building_12", Category: graph.CategoryBuilding, Name: "Barracks"},
		{ID: "unit_74", Category: graph.CategoryUnit, Name: "Militia"},
		{ID: "unit_75", Category: graph.CategoryUnit, Name: "Man-at-Arms"},
		{ID: "building_82", Category: graph.CategoryBuilding, Name: "Castle"},
		{ID: SlotUniqueUnit, Category: graph.CategoryUniqueUnit, Name: "Unique Unit"},
		{ID: SlotEliteUniqueUnit, Category: graph.CategoryUniqueUnit, Name: "Elite Unique Unit"},
		{ID: SlotUniqueTech1, Category: graph.CategoryTechnology, Name: "Unique Tech"},
		{ID: SlotUniqueTech2, Category: graph.CategoryTechnology, Name: "Unique Tech"},
		{ID: "building_104", Category: graph.CategoryBuilding, Name: "Monastery"},
		{ID: "unit_125", Category: graph.CategoryUnit, Name: "Monk"},
		{ID: "tech_22", Category: graph.CategoryTechnology, Name: "Loom"},
		{ID: "building_1", Category: graph.CategoryBuilding, Name: "Unused", AlwaysDisabled: true},
	}
	edges := []graph.Edge{
		{Parent: "building_12", Child: "unit_74"},
		{Parent: "unit_74", Child: "unit_75"},
		{Parent: "building_82", Child: SlotUniqueUnit},
		{Parent: SlotUniqueUnit, Child: SlotEliteUniqueUnit},
		{Parent: "building_82", Child: SlotUniqueTech1},
		{Parent: SlotUniqueTech1, Child: SlotUniqueTech2},
		{Parent: "building_104", Child: "unit_125"},
	}
	g, err := graph.Build(nodes, edges)
	require.NoError(t, err)
	return g
}

func testResolver(t *testing.T) *metadata.Resolver {
	t.Helper()
	var tables metadata.Tables
	require.NoError(t, json.Unmarshal([]byte(`{
		"units": {
			"122": {"LanguageNameId": 5122},
			"123": {"LanguageNameId": 5123},
			"41":  {"LanguageNameId": 5041},
			"42":  {"LanguageNameId": 5042}
		},
		"buildings": {},
		"techs": {
			"461": {"LanguageNameId": 7461},
			"462": {"LanguageNameId": 7462},
			"24":  {"LanguageNameId": 7024},
			"25":  {"LanguageNameId": 7025}
		}
	}`), &tables))
	return metadata.NewResolver(tables, metadata.Strings{
		"5122": "Mangudai", "5123": "Elite Mangudai",
		"5041": "Huskarl", "5042": "Elite Huskarl",
		"7461": "Nomads", "7462": "Drill",
	})
}

func mongols() *Set {
	return &Set{
		Buildings:  []int{12, 82, 104},
		Units:      []int{74, 125},
		Techs:      []int{22},
		Unique:     Unique{CastleAgeUniqueUnit: 122, ImperialAgeUniqueUnit: 123, CastleAgeUniqueTech: 461, ImperialAgeUniqueTech: 462},
		MonkPrefix: "",
	}
}

func goths() *Set {
	return &Set{
		Buildings:  []int{12, 82},
		Units:      []int{74, 75},
		Techs:      []int{},
		Unique:     Unique{CastleAgeUniqueUnit: 41, ImperialAgeUniqueUnit: 42, CastleAgeUniqueTech: 24, ImperialAgeUniqueTech: 25},
		MonkPrefix: "meso_",
	}
}

func TestLayersFor(t *testing.T) {
	assert.Equal(t, Layers{MaskOpacity: 0.2, CrossOpacity: 1}, LayersFor(Disabled))
	assert.Equal(t, Layers{}, LayersFor(Enabled))
	assert.Equal(t, Layers{}, LayersFor(UniqueReskin))
}

func TestStateText(t *testing.T) {
	b, err := json.Marshal(map[string]State{"a": UniqueReskin})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"UNIQUE_RESKIN"}`, string(b))

	var s State
	require.NoError(t, s.UnmarshalText([]byte("disabled")))
	assert.Equal(t, Disabled, s)
	assert.Error(t, s.UnmarshalText([]byte("GONE")))
}

func TestGenericPass(t *testing.T) {
	states := GenericPass(testGraph(t), mongols())

	assert.Equal(t, Enabled, states["building_12"])
	assert.Equal(t, Enabled, states["unit_74"])
	assert.Equal(t, Disabled, states["unit_75"])
	assert.Equal(t, Enabled, states["tech_22"])
	assert.Equal(t, Disabled, states["building_1"], "always disabled nodes stay disabled")
	for _, slot := range []string{SlotUniqueUnit, SlotEliteUniqueUnit, SlotUniqueTech1, SlotUniqueTech2} {
		assert.Equal(t, Disabled, states[slot], slot)
	}
}

func TestApplyReskinsUniqueSlots(t *testing.T) {
	ov := Apply(testGraph(t), testResolver(t), "Mongols", mongols())

	ns, ok := ov.Node(SlotUniqueUnit)
	require.True(t, ok)
	assert.Equal(t, UniqueReskin, ns.State)
	assert.Equal(t, "unit_122", ns.Entity)
	assert.Equal(t, "Mangudai", ns.Name)
	assert.Equal(t, "img/Units/122.png", ns.Image)
	assert.Equal(t, Layers{}, ns.Layers)

	rep, ok := ov.Representing("unit_122")
	require.True(t, ok)
	assert.Equal(t, SlotUniqueUnit, rep.Node)

	elite, _ := ov.Node(SlotEliteUniqueUnit)
	assert.Equal(t, "Elite Mangudai", elite.Name)

	tech, _ := ov.Node(SlotUniqueTech2)
	assert.Equal(t, "tech_462", tech.Entity)
	assert.Equal(t, "img/Techs/462.png", tech.Image)

	militia, _ := ov.Node("unit_75")
	assert.Equal(t, Disabled, militia.State)
	assert.Equal(t, LayersFor(Disabled), militia.Layers)
	assert.Empty(t, ov.Stale)
}

func TestApplyMonkPrefixAndMissingNames(t *testing.T) {
	ov := Apply(testGraph(t), testResolver(t), "Goths", goths())

	monk, _ := ov.Node("unit_125")
	assert.Equal(t, "img/Units/meso_125.png", monk.Image)
	assert.Equal(t, Disabled, monk.State)

	tech, _ := ov.Node(SlotUniqueTech1)
	assert.Equal(t, UniqueReskin, tech.State)
	assert.Equal(t, metadata.Placeholder, tech.Name, "missing localized name degrades to placeholder")
}

func TestApplySkipsStaleReferences(t *testing.T) {
	set := mongols()
	set.Units = append(set.Units, 9999)
	set.Unique.CastleAgeUniqueUnit = 8888

	ov := Apply(testGraph(t), testResolver(t), "Mongols", set)

	require.Len(t, ov.Stale, 2)
	var ids []string
	for _, err := range ov.Stale {
		se, ok := err.(*StaleReferenceError)
		require.True(t, ok)
		ids = append(ids, se.ID)
	}
	assert.ElementsMatch(t, []string{"unit_9999", "unit_8888"}, ids)

	slot, _ := ov.Node(SlotUniqueUnit)
	assert.Equal(t, Disabled, slot.State, "slot keeps its generic state when the unique entity is unknown")
	elite, _ := ov.Node(SlotEliteUniqueUnit)
	assert.Equal(t, UniqueReskin, elite.State)
}

func TestApplyIsIdempotentUnderReselection(t *testing.T) {
	g := testGraph(t)
	res := testResolver(t)

	once := Apply(g, res, "Mongols", mongols())
	Apply(g, res, "Mongols", mongols())
	Apply(g, res, "Goths", goths())
	again := Apply(g, res, "Mongols", mongols())

	assert.Equal(t, once.Enabled(), again.Enabled())
	assert.Equal(t, once.Nodes, again.Nodes)
}

func TestBadges(t *testing.T) {
	civs := []Civ{
		{ID: "Goths", Name: "Goths", Set: goths()},
		{ID: "Mongols", Name: "Mongols", Set: mongols()},
		{ID: "Huns", Name: "Huns"},
	}

	t.Run("unique unit counts for its faction", func(t *testing.T) {
		badges := Badges("unit_122", graph.CategoryUniqueUnit, civs)
		require.Len(t, badges, 3)
		assert.False(t, badges[0].Active)
		assert.Equal(t, 0.2, badges[0].Opacity)
		assert.True(t, badges[1].Active)
		assert.Equal(t, 1.0, badges[1].Opacity)
		assert.Equal(t, "img/Civs/mongols.png", badges[1].Image)
		assert.False(t, badges[2].Active, "faction without a set is never active")
	})

	t.Run("regular membership", func(t *testing.T) {
		badges := Badges("unit_75", graph.CategoryUnit, civs)
		assert.True(t, badges[0].Active)
		assert.False(t, badges[1].Active)
	})

	t.Run("unique technology", func(t *testing.T) {
		badges := Badges("tech_24", graph.CategoryTechnology, civs)
		assert.True(t, badges[0].Active)
		assert.False(t, badges[1].Active)
	})

	t.Run("buildings ignore variant suffix", func(t *testing.T) {
		badges := Badges("building_104_copy", graph.CategoryBuilding, civs)
		assert.False(t, badges[0].Active)
		assert.True(t, badges[1].Active)
	})

	t.Run("category prefix must match", func(t *testing.T) {
		badges := Badges("tech_12", graph.CategoryTechnology, civs)
		assert.False(t, badges[0].Active)
	})
}
