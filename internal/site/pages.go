package site

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/ziadkadry99/techtree/internal/availability"
	"github.com/ziadkadry99/techtree/internal/dataset"
	"github.com/ziadkadry99/techtree/internal/graph"
	"github.com/ziadkadry99/techtree/internal/highlight"
)

// Page is one markdown document of the exported site.
type Page struct {
	Path     string // relative to the locale directory, e.g. "nodes/unit_93.md"
	Section  string // sidebar section, empty for the index
	Title    string
	Markdown string
}

// CivPath is the page of a faction.
func CivPath(civ string) string {
	return "civs/" + strings.ToLower(civ) + ".md"
}

// NodePath is the page of a node.
func NodePath(id string) string {
	return "nodes/" + id + ".md"
}

// sectionFor groups nodes in the sidebar.
func sectionFor(c graph.Category) string {
	switch c {
	case graph.CategoryBuilding:
		return "Buildings"
	case graph.CategoryTechnology:
		return "Technologies"
	default:
		return "Units"
	}
}

// Pages builds every page of one locale: the index, one page per faction and
// one per node. Unique slots get no page of their own; faction pages describe
// what fills them.
func Pages(ds *dataset.Dataset) ([]Page, error) {
	pages := []Page{indexPage(ds)}
	for _, c := range ds.SortedCivs() {
		p, err := civPage(ds, c)
		if err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	for _, n := range ds.Graph.Nodes() {
		if availability.IsSlot(n.ID) {
			continue
		}
		p, err := nodePage(ds, n)
		if err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, nil
}

func indexPage(ds *dataset.Dataset) Page {
	var b strings.Builder
	title := ds.Title()
	fmt.Fprintf(&b, "# %s\n\n", title)

	if ages := ds.AgeNames(); len(ages) > 0 {
		b.WriteString(strings.Join(ages, " · "))
		b.WriteString("\n\n")
	}

	label, key := ds.Key()
	fmt.Fprintf(&b, "## %s\n\n", label)
	for _, k := range key {
		fmt.Fprintf(&b, "- <span class=\"swatch\" style=\"background:%s\"></span> %s\n", k.Colour, k.Label)
	}
	b.WriteString("\n")

	b.WriteString("## Civilizations\n\n")
	for _, c := range ds.SortedCivs() {
		fmt.Fprintf(&b, "- [%s](%s)\n", c.Name, CivPath(c.ID))
	}
	b.WriteString("\n")

	b.WriteString("## Buildings\n\n")
	for _, row := range dataset.BuildingIndex() {
		var cells []string
		for _, e := range row {
			id := graph.NodeID(graph.CategoryBuilding, fmt.Sprint(e.Building))
			if !ds.Graph.Has(id) {
				continue
			}
			cells = append(cells, fmt.Sprintf("[%s](%s)", ds.NodeName(id), NodePath(id)))
		}
		if len(cells) > 0 {
			b.WriteString(strings.Join(cells, " · "))
			b.WriteString("\n\n")
		}
	}

	return Page{Path: "index.md", Title: title, Markdown: b.String()}
}

func civPage(ds *dataset.Dataset, c dataset.CivOption) (Page, error) {
	ov, err := ds.Overlay(c.ID)
	if err != nil {
		return Page{}, err
	}
	info := ds.CivInfo(c.ID)

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", c.Name)
	if info.Logo != "" {
		fmt.Fprintf(&b, "![%s](../../%s)\n\n", c.Name, info.Logo)
	}
	if info.HelpText != "" {
		fmt.Fprintf(&b, "<div class=\"civ-help\">%s</div>\n\n", info.HelpText)
	}

	ids := make([]string, 0, len(ov.Nodes))
	for id := range ov.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var unique, enabled, disabled []string
	for _, id := range ids {
		ns := ov.Nodes[id]
		switch ns.State {
		case availability.UniqueReskin:
			view, err := ds.Help(ov, id)
			if err != nil {
				return Page{}, err
			}
			unique = append(unique, fmt.Sprintf("### %s\n\n%s\n", ns.Name, view.HTML))
		case availability.Enabled:
			enabled = append(enabled, fmt.Sprintf("- [%s](../%s)", ds.NodeName(id), NodePath(id)))
		default:
			if !availability.IsSlot(id) {
				disabled = append(disabled, fmt.Sprintf("- [%s](../%s)", ds.NodeName(id), NodePath(id)))
			}
		}
	}

	if len(unique) > 0 {
		b.WriteString("## Unique\n\n")
		b.WriteString(strings.Join(unique, "\n"))
		b.WriteString("\n")
	}
	writeList(&b, "Available", enabled)
	writeList(&b, "Not available", disabled)

	return Page{Path: CivPath(c.ID), Section: "Civilizations", Title: c.Name, Markdown: b.String()}, nil
}

func nodePage(ds *dataset.Dataset, n *graph.Node) (Page, error) {
	view, err := ds.Help(nil, n.ID)
	if err != nil {
		return Page{}, err
	}
	name := ds.NodeName(n.ID)

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", name)
	fmt.Fprintf(&b, "<img class=\"node-image\" src=\"../../%s\" alt=\"\">\n\n", graph.ImagePath(n.ID))
	fmt.Fprintf(&b, "%s\n\n", view.HTML)
	if view.AdvancedStats != "" {
		fmt.Fprintf(&b, "%s\n\n", view.AdvancedStats)
	}

	nodes, _, err := highlight.Path(ds.Graph, n.ID)
	if err != nil {
		return Page{}, err
	}
	if len(nodes) > 1 {
		b.WriteString("## Requires\n\n")
		var chain []string
		for _, id := range nodes[1:] {
			chain = append(chain, fmt.Sprintf("[%s](../%s)", ds.NodeName(id), NodePath(id)))
		}
		b.WriteString(strings.Join(chain, " ← "))
		b.WriteString("\n\n")
	}
	if children := ds.Graph.Children(n.ID); len(children) > 0 {
		var links []string
		for _, id := range children {
			links = append(links, fmt.Sprintf("- [%s](../%s)", ds.NodeName(id), NodePath(id)))
		}
		writeList(&b, "Leads to", links)
	}

	b.WriteString("## Civilizations\n\n| Civilization | Available |\n|---|---|\n")
	for _, badge := range view.Badges {
		mark := "no"
		if badge.Active {
			mark = "yes"
		}
		fmt.Fprintf(&b, "| [%s](../%s) | %s |\n", badge.Name, CivPath(badge.Civ), mark)
	}
	b.WriteString("\n")

	if rec, err := ds.Resolver.ResolveNode(n.Category, n.ID); err == nil {
		data, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return Page{}, fmt.Errorf("encoding %s: %w", n.ID, err)
		}
		fmt.Fprintf(&b, "## Data\n\n```json\n%s\n```\n", data)
	}

	return Page{Path: NodePath(n.ID), Section: sectionFor(n.Category), Title: name, Markdown: b.String()}, nil
}

func writeList(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n%s\n\n", heading, strings.Join(items, "\n"))
}
