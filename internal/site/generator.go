// Package site exports the tech tree as a static HTML reference: an index
// per locale, one page per faction and one page per node.
package site

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/ziadkadry99/techtree/internal/dataset"
	"github.com/ziadkadry99/techtree/internal/progress"
)

// SiteGenerator renders datasets from a registry into a static site.
type SiteGenerator struct {
	Registry  *dataset.Registry
	OutputDir string
	// Locales limits the export to these codes. Empty exports every locale
	// found in the data directory.
	Locales []string
	// NewReporter creates the progress reporter of one locale. Nil reports
	// nothing.
	NewReporter func(description string) progress.Reporter
}

// NewSiteGenerator creates a SiteGenerator writing to outputDir.
func NewSiteGenerator(registry *dataset.Registry, outputDir string) *SiteGenerator {
	return &SiteGenerator{
		Registry:  registry,
		OutputDir: outputDir,
	}
}

// pageData holds the data passed to the HTML template for each page.
type pageData struct {
	Lang      string
	Title     string
	SiteTitle string
	Content   template.HTML
	NavHTML   template.HTML
	BasePath  string // back to the locale root
	RootPath  string // back to the output root
	Locales   []dataset.Locale
}

// Generate builds the full static site. Returns the number of pages generated.
func (g *SiteGenerator) Generate() (int, error) {
	locales, err := g.selectLocales()
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return 0, err
	}

	// Write static assets.
	if err := os.WriteFile(filepath.Join(g.OutputDir, "style.css"), []byte(cssContent), 0o644); err != nil {
		return 0, err
	}
	if err := os.WriteFile(filepath.Join(g.OutputDir, "script.js"), []byte(jsContent), 0o644); err != nil {
		return 0, err
	}

	// Initialize goldmark with extensions.
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)

	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return 0, fmt.Errorf("parsing page template: %w", err)
	}

	total := 0
	rootTitle := ""
	for _, l := range locales {
		ds, err := g.Registry.Get(l.Code)
		if err != nil {
			return total, err
		}
		if rootTitle == "" {
			rootTitle = ds.Title()
		}
		n, err := g.generateLocale(md, tmpl, ds, locales)
		total += n
		if err != nil {
			return total, fmt.Errorf("exporting %s: %w", l.Code, err)
		}
	}

	if err := g.writeRoot(rootTitle, locales); err != nil {
		return total, err
	}
	if err := copyImages(filepath.Join(g.Registry.Dir(), "img"), filepath.Join(g.OutputDir, "img")); err != nil {
		return total, fmt.Errorf("copying images: %w", err)
	}
	return total, nil
}

// copyImages mirrors the data directory's image folder, if any, so node and
// faction pages can reference it.
func copyImages(src, dst string) error {
	if _, err := os.Stat(src); os.IsNotExist(err) {
		return nil
	}
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0o644)
	})
}

func (g *SiteGenerator) selectLocales() ([]dataset.Locale, error) {
	available, err := g.Registry.Locales()
	if err != nil {
		return nil, err
	}
	if len(g.Locales) == 0 {
		if len(available) == 0 {
			return nil, fmt.Errorf("no locales found in %s", g.Registry.Dir())
		}
		return available, nil
	}

	var selected []dataset.Locale
	for _, code := range g.Locales {
		found := false
		for _, l := range available {
			if l.Code == code {
				selected = append(selected, l)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("locale %q not found in %s", code, g.Registry.Dir())
		}
	}
	return selected, nil
}

func (g *SiteGenerator) generateLocale(md goldmark.Markdown, tmpl *template.Template, ds *dataset.Dataset, locales []dataset.Locale) (int, error) {
	pages, err := Pages(ds)
	if err != nil {
		return 0, err
	}
	nav := BuildNav(pages, ds.Locale.Tag)
	dir := filepath.Join(g.OutputDir, ds.Locale.Code)

	var reporter progress.Reporter = progress.Nop{}
	if g.NewReporter != nil {
		reporter = g.NewReporter("Exporting " + ds.Locale.Code)
	}
	reporter.Start(len(pages))
	defer reporter.Finish()

	for i, p := range pages {
		if err := g.renderPage(md, tmpl, nav, ds, locales, dir, p); err != nil {
			return i, fmt.Errorf("rendering %s: %w", p.Path, err)
		}
		reporter.Update(i+1, p.Path)
	}

	if err := WriteSearchIndex(BuildSearchIndex(pages), filepath.Join(dir, "search-index.json")); err != nil {
		return len(pages), fmt.Errorf("writing search index: %w", err)
	}
	return len(pages), nil
}

// renderPage converts a single markdown page to an HTML page.
func (g *SiteGenerator) renderPage(md goldmark.Markdown, tmpl *template.Template, nav *Nav, ds *dataset.Dataset, locales []dataset.Locale, dir string, p Page) error {
	var htmlBuf bytes.Buffer
	if err := md.Convert([]byte(p.Markdown), &htmlBuf); err != nil {
		return fmt.Errorf("converting markdown: %w", err)
	}

	htmlRelPath := mdPathToHTML(p.Path)
	outPath := filepath.Join(dir, filepath.FromSlash(htmlRelPath))
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	basePath := strings.Repeat("../", strings.Count(htmlRelPath, "/"))

	data := pageData{
		Lang:      ds.Locale.Code,
		Title:     p.Title,
		SiteTitle: ds.Title(),
		Content:   template.HTML(rewriteMDLinks(htmlBuf.String())),
		NavHTML:   template.HTML(nav.ToHTML(p.Path, basePath)),
		BasePath:  basePath,
		RootPath:  basePath + "../",
		Locales:   locales,
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	return tmpl.Execute(f, data)
}

func (g *SiteGenerator) writeRoot(title string, locales []dataset.Locale) error {
	tmpl, err := template.New("root").Parse(rootTemplate)
	if err != nil {
		return fmt.Errorf("parsing root template: %w", err)
	}
	f, err := os.Create(filepath.Join(g.OutputDir, "index.html"))
	if err != nil {
		return err
	}
	defer f.Close()
	return tmpl.Execute(f, struct {
		Title   string
		Locales []dataset.Locale
	}{title, locales})
}

// rewriteMDLinks changes .md links in HTML content to .html links.
func rewriteMDLinks(content string) string {
	result := strings.ReplaceAll(content, `.md"`, `.html"`)
	return strings.ReplaceAll(result, `.md#`, `.html#`)
}
