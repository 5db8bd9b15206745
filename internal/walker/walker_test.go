package walker

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// writeDataDir lays out a small data directory with three locales and some
// files that are not part of a dataset.
func writeDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"data.json":               `{}`,
		"tree.json":               `{}`,
		"locales/en/strings.json": `{"1":"one"}`,
		"locales/de/strings.json": `{"1":"eins"}`,
		"locales/fr/strings.json": `{"1":"un"}`,
		"locales/fr/notes.txt":    `ignored`,
		"img/Units/93.png":        `png`,
		"README.md":               `readme`,
	}
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
	return dir
}

func relPaths(files []File) []string {
	var out []string
	for _, f := range files {
		out = append(out, f.RelPath)
	}
	sort.Strings(out)
	return out
}

func TestWalk_FindsDatasetFiles(t *testing.T) {
	dir := writeDataDir(t)

	files, err := Walk(Config{RootDir: dir})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}

	got := relPaths(files)
	want := []string{"data.json", "locales/de/strings.json", "locales/en/strings.json", "locales/fr/strings.json", "tree.json"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("file %d = %q, want %q", i, got[i], want[i])
		}
	}

	for _, f := range files {
		if f.ContentHash == "" || len(f.ContentHash) != 64 {
			t.Errorf("%s: bad content hash %q", f.RelPath, f.ContentHash)
		}
		if f.Kind == KindStrings && f.Locale == "" {
			t.Errorf("%s: missing locale", f.RelPath)
		}
		if !filepath.IsAbs(f.Path) {
			t.Errorf("%s: path %q is not absolute", f.RelPath, f.Path)
		}
	}
}

func TestWalk_IncludeSelectsLocales(t *testing.T) {
	dir := writeDataDir(t)

	files, err := Walk(Config{RootDir: dir, Include: []string{"locales/{en,de}/**"}})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}

	got := relPaths(files)
	want := []string{"data.json", "locales/de/strings.json", "locales/en/strings.json", "tree.json"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestWalk_ExcludeDropsLocales(t *testing.T) {
	dir := writeDataDir(t)

	files, err := Walk(Config{RootDir: dir, Exclude: []string{"locales/fr/*"}})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
	for _, f := range files {
		if f.Locale == "fr" {
			t.Errorf("excluded locale returned: %s", f.RelPath)
		}
	}
}

func TestWalk_InvalidPattern(t *testing.T) {
	dir := writeDataDir(t)
	if _, err := Walk(Config{RootDir: dir, Include: []string{"locales/[en"}}); err == nil {
		t.Fatal("expected error for malformed pattern")
	}
}

func TestWalk_MissingRoot(t *testing.T) {
	if _, err := Walk(Config{RootDir: filepath.Join(t.TempDir(), "missing")}); err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestWalk_ContentHashChangesWithContent(t *testing.T) {
	dir := writeDataDir(t)

	before, err := Walk(Config{RootDir: dir})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "data.json"), []byte(`{"changed":true}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	after, err := Walk(Config{RootDir: dir})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}

	hashes := func(files []File) map[string]string {
		m := map[string]string{}
		for _, f := range files {
			m[f.RelPath] = f.ContentHash
		}
		return m
	}
	b, a := hashes(before), hashes(after)
	if b["data.json"] == a["data.json"] {
		t.Error("data.json hash did not change")
	}
	if b["tree.json"] != a["tree.json"] {
		t.Error("tree.json hash changed without a write")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		path   string
		kind   Kind
		locale string
		ok     bool
	}{
		{"data.json", KindData, "", true},
		{"tree.json", KindTree, "", true},
		{"locales/jp/strings.json", KindStrings, "jp", true},
		{"locales/strings.json", "", "", false},
		{"nested/data.json", "", "", false},
		{"locales/en/other.json", "", "", false},
	}
	for _, tt := range tests {
		kind, locale, ok := Classify(tt.path)
		if kind != tt.kind || locale != tt.locale || ok != tt.ok {
			t.Errorf("Classify(%q) = (%q, %q, %v), want (%q, %q, %v)", tt.path, kind, locale, ok, tt.kind, tt.locale, tt.ok)
		}
	}
}
