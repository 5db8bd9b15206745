// Package dataset loads tech tree data for one locale and answers the
// questions the viewer asks about it: the faction list, the page chrome and
// the help panel of a node.
//
// A Dataset is an immutable snapshot. A locale change builds a new one; the
// previous snapshot stays valid until the caller swaps it out.
package dataset

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/collate"

	"github.com/ziadkadry99/techtree/internal/availability"
	"github.com/ziadkadry99/techtree/internal/graph"
	"github.com/ziadkadry99/techtree/internal/metadata"
)

// ErrUnknownCiv is returned for a faction id the dataset does not list.
var ErrUnknownCiv = errors.New("dataset: unknown civ")

// Dataset is everything needed to render the tree in one locale.
type Dataset struct {
	Locale   Locale
	Graph    *graph.Graph
	Resolver *metadata.Resolver
	Width    float64
	Height   float64

	data    *Data
	strings metadata.Strings
}

// New validates the tree and assembles a dataset. Graph errors abort the load.
func New(locale Locale, data *Data, tree *Tree, strs metadata.Strings) (*Dataset, error) {
	g, err := graph.Build(tree.Nodes, tree.Connections)
	if err != nil {
		return nil, fmt.Errorf("building graph: %w", err)
	}
	return &Dataset{
		Locale:   locale,
		Graph:    g,
		Resolver: metadata.NewResolver(data.Tables, strs),
		Width:    tree.Width,
		Height:   tree.Height,
		data:     data,
		strings:  strs,
	}, nil
}

// Load reads data.json, tree.json and the locale's strings from dir.
func Load(dir, code string) (*Dataset, error) {
	locale, ok := LookupLocale(code)
	if !ok {
		locale, _ = LookupLocale(DefaultLocale)
	}
	data, err := LoadData(filepath.Join(dir, "data.json"))
	if err != nil {
		return nil, err
	}
	tree, err := LoadTree(filepath.Join(dir, "tree.json"))
	if err != nil {
		return nil, err
	}
	strs, err := LoadStrings(filepath.Join(dir, "locales", locale.Code, "strings.json"))
	if err != nil {
		return nil, err
	}
	return New(locale, data, tree, strs)
}

func (d *Dataset) text(id metadata.StringID) string {
	return d.Resolver.StringOr(id, metadata.Placeholder)
}

// Title is the page title, e.g. "Age of Empires II Technology Tree".
func (d *Dataset) Title() string {
	return d.text(d.data.TechTreeStrings["Age of Empires II"]) + " " + d.text(d.data.TechTreeStrings["Technology Tree"])
}

var ageKeys = []string{"Dark Age", "Feudal Age", "Castle Age", "Imperial Age"}

// AgeNames returns the localized age row labels, oldest first.
func (d *Dataset) AgeNames() []string {
	out := make([]string, 0, len(ageKeys))
	for _, k := range ageKeys {
		out = append(out, d.text(d.data.AgeNames[k]))
	}
	return out
}

// KeyEntry is one swatch of the colour legend.
type KeyEntry struct {
	Category graph.Category `json:"category"`
	Colour   string         `json:"colour"`
	Label    string         `json:"label"`
}

var legend = []struct {
	category graph.Category
	colour   string
	name     string
}{
	{graph.CategoryUniqueUnit, "#703b7a", "Unique Unit"},
	{graph.CategoryUnit, "#3a6a80", "Unit"},
	{graph.CategoryBuilding, "#914141", "Building"},
	{graph.CategoryTechnology, "#2c5729", "Technology"},
}

// Colour returns the node fill colour of a category.
func Colour(c graph.Category) string {
	for _, l := range legend {
		if l.category == c {
			return l.colour
		}
	}
	return ""
}

// Key returns the localized legend heading and its entries in display order,
// two per row.
func (d *Dataset) Key() (string, []KeyEntry) {
	entries := make([]KeyEntry, 0, len(legend))
	for _, l := range legend {
		entries = append(entries, KeyEntry{
			Category: l.category,
			Colour:   l.colour,
			Label:    d.text(d.data.TechTreeStrings[l.name]),
		})
	}
	return d.text(d.data.TechTreeStrings["Key"]), entries
}

// Buildings shown in the jump index, in display order.
const (
	ArcheryRange   = 87
	Barracks       = 12
	Stable         = 101
	SiegeWorkshop  = 49
	Blacksmith     = 103
	Dock           = 45
	University     = 209
	WatchTower     = 79
	Castle         = 82
	Monastery      = 104
	TownCenter     = 109
	Market         = 84
	indexRowLength = 6
)

var indexBuildings = []int{
	ArcheryRange, Barracks, Stable, SiegeWorkshop, Blacksmith, Dock,
	University, WatchTower, Castle, Monastery, TownCenter, Market,
}

// IndexEntry is one building of the jump index. Target is the element to
// scroll to and Lane the class of the lane background to flash.
type IndexEntry struct {
	Building int    `json:"building"`
	Image    string `json:"image"`
	Target   string `json:"target"`
	Lane     string `json:"lane"`
}

// BuildingIndex returns the jump index in rows.
func BuildingIndex() [][]IndexEntry {
	var rows [][]IndexEntry
	for i, b := range indexBuildings {
		if i%indexRowLength == 0 {
			rows = append(rows, nil)
		}
		id := graph.NodeID(graph.CategoryBuilding, fmt.Sprint(b))
		rows[len(rows)-1] = append(rows[len(rows)-1], IndexEntry{
			Building: b,
			Image:    graph.ImagePath(id),
			Target:   id + "_bg",
			Lane:     graph.LaneClass(id),
		})
	}
	return rows
}

// CivOption is one entry of the faction selector.
type CivOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CivName returns the localized name of a faction.
func (d *Dataset) CivName(civ string) string {
	return d.text(d.data.CivNames[civ])
}

// SortedCivs returns the factions ordered by localized name using the
// collation rules of the dataset locale.
func (d *Dataset) SortedCivs() []CivOption {
	opts := make([]CivOption, 0, len(d.data.civOrder))
	for _, civ := range d.data.civOrder {
		opts = append(opts, CivOption{ID: civ, Name: d.CivName(civ)})
	}
	col := collate.New(d.Locale.Tag)
	sort.SliceStable(opts, func(i, j int) bool {
		return col.CompareString(opts[i].Name, opts[j].Name) < 0
	})
	return opts
}

// CanonicalCiv turns a URL fragment such as "britons" into a faction id.
func (d *Dataset) CanonicalCiv(fragment string) (string, bool) {
	fragment = strings.TrimPrefix(fragment, "#")
	r, size := utf8.DecodeRuneInString(fragment)
	if r == utf8.RuneError {
		return "", false
	}
	civ := string(unicode.ToUpper(r)) + strings.ToLower(fragment[size:])
	if _, ok := d.data.CivNames[civ]; !ok {
		return "", false
	}
	return civ, true
}

// HasCiv reports whether civ is a faction id of this dataset.
func (d *Dataset) HasCiv(civ string) bool {
	_, ok := d.data.CivNames[civ]
	return ok
}

// DefaultCiv is the faction shown when none was requested: the first one in
// selector order.
func (d *Dataset) DefaultCiv() string {
	civs := d.SortedCivs()
	if len(civs) == 0 {
		return ""
	}
	return civs[0].ID
}

// CivInfo is the faction panel shown next to the tree.
type CivInfo struct {
	Civ      string `json:"civ"`
	Name     string `json:"name"`
	HelpText string `json:"help_text"`
	Logo     string `json:"logo"`
}

// CivInfo returns the faction panel. Factions without a help text get an empty
// panel and no logo.
func (d *Dataset) CivInfo(civ string) CivInfo {
	info := CivInfo{Civ: civ, Name: d.CivName(civ)}
	if id, ok := d.data.CivHelpTexts[civ]; ok {
		info.HelpText = d.text(id)
		info.Logo = availability.CivImage(civ)
	}
	return info
}

// Set returns the availability set of a faction.
func (d *Dataset) Set(civ string) (*availability.Set, error) {
	set, ok := d.data.TechTrees[civ]
	if !ok || set == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCiv, civ)
	}
	return set, nil
}

// Overlay applies a faction to the tree.
func (d *Dataset) Overlay(civ string) (*availability.Overlay, error) {
	set, err := d.Set(civ)
	if err != nil {
		return nil, err
	}
	return availability.Apply(d.Graph, d.Resolver, civ, set), nil
}

// Civs returns every faction in data file order, for the badge row.
func (d *Dataset) Civs() []availability.Civ {
	out := make([]availability.Civ, 0, len(d.data.civOrder))
	for _, civ := range d.data.civOrder {
		out = append(out, availability.Civ{ID: civ, Name: d.CivName(civ), Set: d.data.TechTrees[civ]})
	}
	return out
}
