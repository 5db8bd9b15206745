package site

import (
	"encoding/json"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"
)

const maxContent = 2000

// SearchEntry represents a single searchable page of the exported site.
type SearchEntry struct {
	Path    string `json:"path"`
	Title   string `json:"title"`
	Section string `json:"section,omitempty"`
	Content string `json:"content"`
}

var (
	tagPattern  = regexp.MustCompile(`<[^>]+>`)
	linkPattern = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	codeFence   = regexp.MustCompile("(?s)```.*?```")
)

// BuildSearchIndex extracts plain text from pages. Markup, link targets and
// raw data blocks are dropped.
func BuildSearchIndex(pages []Page) []SearchEntry {
	entries := make([]SearchEntry, 0, len(pages))
	for _, p := range pages {
		text := codeFence.ReplaceAllString(p.Markdown, " ")
		text = linkPattern.ReplaceAllString(text, "$1")
		text = tagPattern.ReplaceAllString(text, " ")
		text = strings.ReplaceAll(text, "&nbsp;", " ")
		text = strings.NewReplacer("#", " ", "|", " ", "*", " ").Replace(text)
		text = strings.Join(strings.Fields(text), " ")
		if len(text) > maxContent {
			cut := maxContent
			for cut > 0 && !utf8.RuneStart(text[cut]) {
				cut--
			}
			text = text[:cut]
		}
		entries = append(entries, SearchEntry{
			Path:    mdPathToHTML(p.Path),
			Title:   p.Title,
			Section: p.Section,
			Content: text,
		})
	}
	return entries
}

// WriteSearchIndex writes the search index as JSON to the given path.
func WriteSearchIndex(entries []SearchEntry, outputPath string) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, data, 0o644)
}
