package helptext

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type markerKind int

const (
	markOpenParen markerKind = iota
	markCloseParen
	markCost
	markItalicOpen
	markItalicClose
	markBreak
	markBoldItalicOpen
	markBoldItalicClose
)

// literals are checked in order; longer markers sharing a prefix come first.
var literals = []struct {
	kind markerKind
	text string
}{
	{markBoldItalicOpen, "<b><i>"},
	{markBoldItalicClose, "</b></i>"},
	{markItalicOpen, "<i>"},
	{markItalicClose, "</i>"},
	{markBreak, "<br>"},
	{markCost, CostMarker},
	{markOpenParen, "("},
	{markCloseParen, ")"},
}

type marker struct {
	kind  markerKind
	start int
	end   int
}

// markers is the token stream of an authored help text: the structural markers
// with their byte offsets. Text between markers is implicit.
type markers []marker

func scan(text string) markers {
	var out markers
	for i := 0; i < len(text); {
		matched := false
		for _, lit := range literals {
			if strings.HasPrefix(text[i:], lit.text) {
				out = append(out, marker{kind: lit.kind, start: i, end: i + len(lit.text)})
				// The composite bold/italic markers also expose their inner tags.
				switch lit.kind {
				case markBoldItalicOpen:
					out = append(out, marker{kind: markItalicOpen, start: i + 3, end: i + 6})
				case markBoldItalicClose:
					out = append(out, marker{kind: markItalicClose, start: i + 4, end: i + 8})
				}
				i += len(lit.text)
				matched = true
				break
			}
		}
		if !matched {
			_, size := utf8.DecodeRuneInString(text[i:])
			i += size
		}
	}
	return out
}

// first returns the first marker of kind starting at or after pos.
func (m markers) first(kind markerKind, pos int) (marker, bool) {
	for _, mk := range m {
		if mk.kind == kind && mk.start >= pos {
			return mk, true
		}
	}
	return marker{}, false
}

// all returns every marker of kind starting at or after pos.
func (m markers) all(kind markerKind, pos int) []marker {
	var out []marker
	for _, mk := range m {
		if mk.kind == kind && mk.start >= pos {
			out = append(out, mk)
		}
	}
	return out
}

// last returns the last marker of kind starting at or after pos.
func (m markers) last(kind markerKind, pos int) (marker, bool) {
	found := false
	var out marker
	for _, mk := range m {
		if mk.kind == kind && mk.start >= pos {
			out = mk
			found = true
		}
	}
	return out, found
}

// costGroups returns the "(‹cost›)" runs: an open paren, the cost marker and a
// close paren with nothing in between. The returned markers span the whole run.
func (m markers) costGroups() []marker {
	var out []marker
	for i := 0; i+2 < len(m); i++ {
		a, b, c := m[i], m[i+1], m[i+2]
		if a.kind == markOpenParen && b.kind == markCost && c.kind == markCloseParen &&
			a.end == b.start && b.end == c.start {
			out = append(out, marker{kind: markCost, start: a.start, end: c.end})
		}
	}
	return out
}

func leadingSpace(s string) int {
	n := 0
	for n < len(s) {
		r, size := utf8.DecodeRuneInString(s[n:])
		if !unicode.IsSpace(r) {
			break
		}
		n += size
	}
	return n
}

// lastRuneStart returns the byte offset of the last rune of s.
func lastRuneStart(s string) int {
	_, size := utf8.DecodeLastRuneInString(s)
	return len(s) - size
}
