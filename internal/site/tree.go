package site

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// sectionOrder is the order of sidebar sections.
var sectionOrder = []string{"Civilizations", "Units", "Buildings", "Technologies"}

// Nav is the sidebar of one locale: pages grouped by section.
type Nav struct {
	Sections []NavSection
}

// NavSection is one collapsible sidebar group.
type NavSection struct {
	Name  string
	Pages []NavLink
}

// NavLink points at one page.
type NavLink struct {
	Title string
	Path  string // markdown path
}

// BuildNav groups pages by section. Links are sorted by title using the
// locale's collation.
func BuildNav(pages []Page, tag language.Tag) *Nav {
	bySection := make(map[string][]NavLink)
	for _, p := range pages {
		if p.Section == "" {
			continue
		}
		bySection[p.Section] = append(bySection[p.Section], NavLink{Title: p.Title, Path: p.Path})
	}

	col := collate.New(tag)
	nav := &Nav{}
	for _, name := range sectionOrder {
		links := bySection[name]
		if len(links) == 0 {
			continue
		}
		sort.SliceStable(links, func(i, j int) bool {
			return col.CompareString(links[i].Title, links[j].Title) < 0
		})
		nav.Sections = append(nav.Sections, NavSection{Name: name, Pages: links})
	}
	return nav
}

// ToHTML renders the sidebar. The section holding activePath is expanded.
// basePath is the relative prefix back to the locale root.
func (n *Nav) ToHTML(activePath, basePath string) string {
	var b strings.Builder
	homeActive := ""
	if activePath == "index.md" {
		homeActive = ` class="active"`
	}
	fmt.Fprintf(&b, `<ul><li class="file home-link"><a href="%sindex.html"%s>Home</a></li></ul>`+"\n", basePath, homeActive)

	b.WriteString("<ul>\n")
	for _, s := range n.Sections {
		expanded := ""
		for _, p := range s.Pages {
			if p.Path == activePath {
				expanded = "expanded"
				break
			}
		}
		fmt.Fprintf(&b, `<li class="dir %s"><span class="dir-toggle">%s</span>`+"\n<ul>\n", expanded, s.Name)
		for _, p := range s.Pages {
			activeClass := ""
			if p.Path == activePath {
				activeClass = ` class="active"`
			}
			fmt.Fprintf(&b, `<li class="file"><a href="%s%s"%s>%s</a></li>`+"\n", basePath, mdPathToHTML(p.Path), activeClass, html.EscapeString(p.Title))
		}
		b.WriteString("</ul>\n</li>\n")
	}
	b.WriteString("</ul>\n")
	return b.String()
}

// mdPathToHTML converts a markdown path to its HTML equivalent.
func mdPathToHTML(p string) string {
	if strings.HasSuffix(p, ".md") {
		return strings.TrimSuffix(p, ".md") + ".html"
	}
	return p
}
