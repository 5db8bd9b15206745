package helptext

import (
	"strings"

	"github.com/ziadkadry99/techtree/internal/graph"
)

// CostMarker is replaced with the formatted cost of the entity.
const CostMarker = "‹cost›"

const (
	classHeading = "helptext__heading"
	classDesc    = "helptext__desc"
	classStats   = "helptext__stats"
)

// paragraph is one <p> of a rendered help text.
type paragraph struct {
	class    string
	body     string
	emphasis bool
}

// Document is an authored help text split into its structural segments.
type Document struct {
	paragraphs []paragraph
	stats      int // index of the stats anchor, -1 if none
}

// normalize drops whitespace-prefixed line breaks and raw newlines.
func normalize(text string) string {
	var b strings.Builder
	for i := 0; i < len(text); {
		if n := leadingSpace(text[i:]); n > 0 && strings.HasPrefix(text[i+n:], "<br>") {
			// Only the last whitespace rune pairs with the break.
			last := lastRuneStart(text[i : i+n])
			b.WriteString(text[i : i+last])
			i += n + len("<br>")
			continue
		}
		if text[i] == '\n' {
			i++
			continue
		}
		b.WriteByte(text[i])
		i++
	}
	return strings.ReplaceAll(b.String(), "\n", "")
}

// Parse splits an authored help text using the grammar of its category.
func Parse(c graph.Category, raw string) (*Document, error) {
	text := normalize(raw)
	var (
		doc *Document
		ok  bool
	)
	switch c {
	case graph.CategoryTechnology:
		doc, ok = parseTechnology(text)
	case graph.CategoryUnit, graph.CategoryUniqueUnit:
		doc, ok = parseItalic(text, scan(text))
	case graph.CategoryBuilding:
		text = rewriteBoldItalic(text)
		m := scan(text)
		if _, hasItalic := m.first(markItalicOpen, 0); hasItalic {
			doc, ok = parseItalic(text, m)
		} else {
			doc, ok = parseBreak(text, m)
		}
	default:
		return nil, &MalformedTemplateError{Category: c, Reason: "unknown category"}
	}
	if !ok {
		return nil, &MalformedTemplateError{Category: c, Reason: "text does not match the " + strings.ToLower(string(c)) + " layout"}
	}
	return doc, nil
}

// parseTechnology: heading up to the first non-empty parenthetical that has
// text before it, then the description, then an empty stats anchor.
func parseTechnology(text string) (*Document, bool) {
	m := scan(text)
	for _, open := range m.all(markOpenParen, 1) {
		// A cost marker is part of the parenthetical, so only the parens count.
		closing, found := m.first(markCloseParen, open.end+1)
		if !found {
			continue
		}
		return &Document{
			paragraphs: []paragraph{
				{class: classHeading, body: text[:closing.end]},
				{class: classDesc, body: text[closing.end:]},
				{class: classStats, body: "&nbsp;"},
			},
			stats: 2,
		}, true
	}
	return nil, false
}

// parseItalic: heading ending with "(‹cost›)", description, the first italic
// run (the "requires / required for" line) and the trailing stats anchor.
func parseItalic(text string, m markers) (*Document, bool) {
	for _, cost := range m.costGroups() {
		if cost.start < 1 {
			continue
		}
		for _, open := range m.all(markItalicOpen, cost.end+1) {
			body, closeEnd, found := italicRun(text, m, open)
			if !found {
				continue
			}
			return &Document{
				paragraphs: []paragraph{
					{body: text[:cost.end]},
					{body: text[cost.end:open.start]},
					{body: body, emphasis: true},
					{class: classStats, body: text[closeEnd:]},
				},
				stats: 3,
			}, true
		}
	}
	return nil, false
}

// italicRun returns the non-empty, left-trimmed content of the italic run that
// starts at open and the offset just past its closing tag.
func italicRun(text string, m markers, open marker) (string, int, bool) {
	ws := leadingSpace(text[open.end:])
	contentStart := open.end + ws
	if closing, ok := m.first(markItalicClose, contentStart+1); ok {
		return text[contentStart:closing.start], closing.end, true
	}
	// An all-whitespace run keeps its last whitespace rune as content.
	if ws > 0 && strings.HasPrefix(text[contentStart:], "</i>") {
		last := open.end + lastRuneStart(text[open.end:contentStart])
		return text[last:contentStart], contentStart + len("</i>"), true
	}
	return "", 0, false
}

// parseBreak handles buildings without an upgrades line (Wonders): heading,
// body up to the last line break, and the trailing stats anchor.
func parseBreak(text string, m markers) (*Document, bool) {
	for _, cost := range m.costGroups() {
		if cost.start < 1 {
			continue
		}
		br, found := m.last(markBreak, cost.end)
		if !found {
			continue
		}
		return &Document{
			paragraphs: []paragraph{
				{body: text[:cost.end]},
				{body: text[cost.end:br.start]},
				{class: classStats, body: text[br.end:]},
			},
			stats: 2,
		}, true
	}
	return nil, false
}

// rewriteBoldItalic turns the first "<b><i>…</b></i>" run into
// "<b><em>…</em></b>" so its <i> is not mistaken for the upgrades line.
func rewriteBoldItalic(text string) string {
	m := scan(text)
	open, ok := m.first(markBoldItalicOpen, 0)
	if !ok {
		return text
	}
	closing, ok := m.first(markBoldItalicClose, open.end+1)
	if !ok {
		return text
	}
	return text[:open.start] + "<b><em>" + text[open.end:closing.start] + "</em></b>" + text[closing.end:]
}

// HTML renders the document as paragraphs.
func (d *Document) HTML() string {
	var b strings.Builder
	for _, p := range d.paragraphs {
		writeParagraph(&b, p)
	}
	return b.String()
}

func writeParagraph(b *strings.Builder, p paragraph) {
	if p.class != "" {
		b.WriteString(`<p class="` + p.class + `">`)
	} else {
		b.WriteString("<p>")
	}
	if p.emphasis {
		b.WriteString("<em>" + p.body + "</em>")
	} else {
		b.WriteString(p.body)
	}
	b.WriteString("</p>")
}

// contains reports whether any segment contains s.
func (d *Document) contains(s string) bool {
	for _, p := range d.paragraphs {
		if strings.Contains(p.body, s) {
			return true
		}
	}
	return false
}

// replaceFirst replaces the first occurrence of old across segments in order.
func (d *Document) replaceFirst(old, repl string) {
	for i := range d.paragraphs {
		if strings.Contains(d.paragraphs[i].body, old) {
			d.paragraphs[i].body = strings.Replace(d.paragraphs[i].body, old, repl, 1)
			return
		}
	}
}
