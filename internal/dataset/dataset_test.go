package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/techtree/internal/availability"
	"github.com/ziadkadry99/techtree/internal/graph"
)

var fixtureDir = filepath.Join("..", "..", "testdata", "data")

func loadFixture(t *testing.T, locale string) *Dataset {
	t.Helper()
	ds, err := Load(fixtureDir, locale)
	require.NoError(t, err)
	return ds
}

func TestResolveLocale(t *testing.T) {
	assert.Equal(t, "de", ResolveLocale("de", "fr"))
	assert.Equal(t, "fr", ResolveLocale("", "fr"))
	assert.Equal(t, "fr", ResolveLocale("xx", "fr"))
	assert.Equal(t, DefaultLocale, ResolveLocale("xx", "yy"))
	assert.Equal(t, DefaultLocale, ResolveLocale("", ""))
	assert.Len(t, Locales, 17)
	assert.True(t, IsLocale("jp"))
	assert.False(t, IsLocale("ja"))
}

func TestLoadPageChrome(t *testing.T) {
	ds := loadFixture(t, "en")

	assert.Equal(t, 15, ds.Graph.Len())
	assert.Equal(t, 1200.0, ds.Width)
	assert.Equal(t, "Age of Empires II Technology Tree", ds.Title())
	assert.Equal(t, []string{"Dark Age", "Feudal Age", "Castle Age", "Imperial Age"}, ds.AgeNames())

	label, key := ds.Key()
	assert.Equal(t, "Key", label)
	require.Len(t, key, 4)
	assert.Equal(t, KeyEntry{Category: graph.CategoryUniqueUnit, Colour: "#703b7a", Label: "Unique Unit"}, key[0])
	assert.Equal(t, "#2c5729", Colour(graph.CategoryTechnology))

	de := loadFixture(t, "de")
	assert.Equal(t, "Age of Empires II Technologiebaum", de.Title())
	assert.Equal(t, "de", de.Locale.Code)
}

func TestLoadUnknownLocaleFallsBack(t *testing.T) {
	ds := loadFixture(t, "xx")
	assert.Equal(t, DefaultLocale, ds.Locale.Code)
}

func TestBuildingIndex(t *testing.T) {
	rows := BuildingIndex()
	require.Len(t, rows, 2)
	assert.Len(t, rows[0], 6)
	assert.Len(t, rows[1], 6)
	assert.Equal(t, IndexEntry{
		Building: 87,
		Image:    "img/Buildings/87.png",
		Target:   "building_87_bg",
		Lane:     "lane-with-building_87",
	}, rows[0][0])
	assert.Equal(t, Market, rows[1][5].Building)
}

func TestCivs(t *testing.T) {
	ds := loadFixture(t, "en")

	t.Run("selector is sorted by localized name", func(t *testing.T) {
		assert.Equal(t, []CivOption{
			{ID: "Britons", Name: "Britons"},
			{ID: "Goths", Name: "Goths"},
			{ID: "Mongols", Name: "Mongols"},
		}, ds.SortedCivs())
		assert.Equal(t, "Britons", ds.DefaultCiv())

		de := loadFixture(t, "de")
		assert.Equal(t, "Briten", de.SortedCivs()[0].Name)
	})

	t.Run("badges follow data file order", func(t *testing.T) {
		var ids []string
		for _, c := range ds.Civs() {
			ids = append(ids, c.ID)
		}
		assert.Equal(t, []string{"Mongols", "Britons", "Goths"}, ids)
	})

	t.Run("url fragments are canonicalised", func(t *testing.T) {
		civ, ok := ds.CanonicalCiv("britons")
		assert.True(t, ok)
		assert.Equal(t, "Britons", civ)

		civ, ok = ds.CanonicalCiv("#MONGOLS")
		assert.True(t, ok)
		assert.Equal(t, "Mongols", civ)

		_, ok = ds.CanonicalCiv("aztecs")
		assert.False(t, ok)
		_, ok = ds.CanonicalCiv("")
		assert.False(t, ok)
	})

	t.Run("civ panel", func(t *testing.T) {
		info := ds.CivInfo("Britons")
		assert.Equal(t, "img/Civs/britons.png", info.Logo)
		assert.Contains(t, info.HelpText, "Infantry and Archer civilization")

		goths := ds.CivInfo("Goths")
		assert.Empty(t, goths.HelpText)
		assert.Empty(t, goths.Logo)
	})

	t.Run("unknown civ", func(t *testing.T) {
		_, err := ds.Overlay("Aztecs")
		assert.True(t, errors.Is(err, ErrUnknownCiv))
	})
}

func TestHelp(t *testing.T) {
	ds := loadFixture(t, "en")
	mongols, err := ds.Overlay("Mongols")
	require.NoError(t, err)

	t.Run("regular unit", func(t *testing.T) {
		view, err := ds.Help(mongols, "unit_93")
		require.NoError(t, err)
		assert.Equal(t, "unit_93", view.Entity)
		assert.Contains(t, view.HTML, "(Cost: 35F 25W)")
		assert.Contains(t, view.HTML, "<h3>Stats</h3>")
		require.Len(t, view.Badges, 3)
		for _, b := range view.Badges {
			assert.True(t, b.Active, b.Civ)
		}
	})

	t.Run("reskinned slot describes the unique unit", func(t *testing.T) {
		view, err := ds.Help(mongols, availability.SlotUniqueUnit)
		require.NoError(t, err)
		assert.Equal(t, "unit_122", view.Entity)
		assert.Equal(t, "Mangudai", view.Name)
		assert.Contains(t, view.HTML, "<b>Mangudai</b> (Cost: 55W 65G)")
		assert.Contains(t, view.HTML, "Accuracy:&nbsp;95%")

		active := map[string]bool{}
		for _, b := range view.Badges {
			active[b.Civ] = b.Active
		}
		assert.Equal(t, map[string]bool{"Mongols": true, "Britons": false, "Goths": false}, active)
	})

	t.Run("advanced stats", func(t *testing.T) {
		view, err := ds.Help(nil, "unit_74")
		require.NoError(t, err)
		assert.Equal(t, "<h3>Attacks</h3><p>4 (Base Melee)</p><h3>Armours</h3><p>0 (Base Melee), 1 (Base Pierce)</p>", view.AdvancedStats)
	})

	t.Run("missing help text shows placeholder", func(t *testing.T) {
		view, err := ds.Help(mongols, "building_109")
		require.NoError(t, err)
		assert.Equal(t, "?", view.HTML)
	})

	t.Run("slot without a faction has no metadata", func(t *testing.T) {
		view, err := ds.Help(nil, availability.SlotUniqueUnit)
		require.NoError(t, err)
		assert.Equal(t, "?", view.HTML)
		assert.Empty(t, view.AdvancedStats)
	})

	t.Run("wonder", func(t *testing.T) {
		view, err := ds.Help(mongols, "building_276")
		require.NoError(t, err)
		assert.Equal(t, "<p>Build <b>Wonder</b> (Cost: 1000W 1000G 1000S)</p><p>Win the game by keeping it standing.</p><h3>Stats</h3><p>HP:&nbsp;4800, Armor:&nbsp;3</p>", view.HTML)
	})

	t.Run("unknown node", func(t *testing.T) {
		_, err := ds.Help(mongols, "unit_404")
		assert.True(t, errors.Is(err, graph.ErrNodeNotFound))
	})
}

func TestNodeName(t *testing.T) {
	ds := loadFixture(t, "en")
	assert.Equal(t, "Spearman", ds.NodeName("unit_93"))
	assert.Equal(t, "Unique Unit", ds.NodeName(availability.SlotUniqueUnit))
	assert.Empty(t, ds.NodeName("unit_404"))
}

func TestLoadRejectsCycles(t *testing.T) {
	dir := copyFixture(t)
	cyclic := `{"width": 10, "height": 10,
		"nodes": [{"id": "tech_1", "type": "TECHNOLOGY"}, {"id": "tech_2", "type": "TECHNOLOGY"}],
		"connections": [["tech_1", "tech_2"], ["tech_2", "tech_1"]]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tree.json"), []byte(cyclic), 0o644))

	_, err := Load(dir, "en")
	var cycle *graph.GraphCycleError
	assert.True(t, errors.As(err, &cycle))
}

func TestLoadRejectsUnknownNodeType(t *testing.T) {
	dir := copyFixture(t)
	bad := `{"nodes": [{"id": "ship_1", "type": "SHIP"}], "connections": []}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tree.json"), []byte(bad), 0o644))

	_, err := Load(dir, "en")
	assert.ErrorContains(t, err, "unknown type")
}

func copyFixture(t *testing.T) string {
	t.Helper()
	dst := t.TempDir()
	err := filepath.Walk(fixtureDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(fixtureDir, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if info.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, b, 0o644)
	})
	require.NoError(t, err)
	return dst
}

func TestRegistry(t *testing.T) {
	dir := copyFixture(t)
	reg := NewRegistry(dir, nil, nil)

	var loads []string
	reg.OnLoad = func(locale string, _ time.Duration, err error) {
		if err == nil {
			loads = append(loads, locale)
		}
	}

	locales, err := reg.Locales()
	require.NoError(t, err)
	require.Len(t, locales, 2)
	assert.Equal(t, "en", locales[0].Code)
	assert.Equal(t, "de", locales[1].Code)

	en, err := reg.Get("en")
	require.NoError(t, err)
	again, err := reg.Get("xx")
	require.NoError(t, err)
	assert.Same(t, en, again, "unknown locale resolves to the cached default")
	assert.Equal(t, []string{"en"}, loads)

	_, err = reg.Get("fr")
	assert.Error(t, err, "supported locale without strings on disk")

	t.Run("reload keeps unchanged snapshots", func(t *testing.T) {
		require.NoError(t, reg.Reload())
		cached, err := reg.Get("en")
		require.NoError(t, err)
		assert.Same(t, en, cached)
	})

	t.Run("reload drops changed snapshots", func(t *testing.T) {
		path := filepath.Join(dir, "locales", "en", "strings.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"9001": "AoE2", "9002": "Tree"}`), 0o644))
		require.NoError(t, reg.Reload())

		fresh, err := reg.Get("en")
		require.NoError(t, err)
		assert.NotSame(t, en, fresh)
		assert.Equal(t, "AoE2 Tree", fresh.Title())
	})
}

func TestRegistryIncludePatterns(t *testing.T) {
	reg := NewRegistry(fixtureDir, []string{"locales/de/**"}, nil)
	locales, err := reg.Locales()
	require.NoError(t, err)
	require.Len(t, locales, 1)
	assert.Equal(t, "de", locales[0].Code)
}
