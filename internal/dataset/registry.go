package dataset

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ziadkadry99/techtree/internal/walker"
)

// Registry loads datasets from a data directory and caches one snapshot per
// locale. It is safe for concurrent use.
type Registry struct {
	dir     string
	include []string
	exclude []string

	// OnLoad, if set, is called after every load attempt.
	OnLoad func(locale string, elapsed time.Duration, err error)

	mu      sync.Mutex
	files   map[string]walker.File // by RelPath
	data    *Data
	tree    *Tree
	cache   map[string]*Dataset
	locales []Locale
}

// NewRegistry creates a registry over dir. include and exclude are glob
// patterns selecting locale string tables, e.g. "locales/{en,de}/**".
func NewRegistry(dir string, include, exclude []string) *Registry {
	return &Registry{
		dir:     dir,
		include: include,
		exclude: exclude,
		cache:   make(map[string]*Dataset),
	}
}

// Dir returns the data directory.
func (r *Registry) Dir() string { return r.dir }

// scan walks the data directory and drops cached snapshots whose files
// changed. Callers hold r.mu.
func (r *Registry) scan() error {
	files, err := walker.Walk(walker.Config{RootDir: r.dir, Include: r.include, Exclude: r.exclude})
	if err != nil {
		return err
	}
	next := make(map[string]walker.File, len(files))
	for _, f := range files {
		next[f.RelPath] = f
	}

	changed := func(rel string) bool {
		old, ok := r.files[rel]
		cur, ok2 := next[rel]
		return ok != ok2 || old.ContentHash != cur.ContentHash
	}
	if changed("data.json") || changed("tree.json") {
		r.data, r.tree = nil, nil
		r.cache = make(map[string]*Dataset)
	}
	for code := range r.cache {
		if changed("locales/" + code + "/strings.json") {
			delete(r.cache, code)
		}
	}

	r.locales = r.locales[:0]
	for _, l := range Locales {
		if _, ok := next["locales/"+l.Code+"/strings.json"]; ok {
			r.locales = append(r.locales, l)
		}
	}
	r.files = next
	return nil
}

// Reload rescans the data directory. Unchanged snapshots stay cached.
func (r *Registry) Reload() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.scan(); err != nil {
		return fmt.Errorf("dataset: reload: %w", err)
	}
	log.Printf("dataset: %d locales available in %s", len(r.locales), r.dir)
	return nil
}

// Locales returns the supported locales present in the data directory, in
// selector order.
func (r *Registry) Locales() ([]Locale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.files == nil {
		if err := r.scan(); err != nil {
			return nil, fmt.Errorf("dataset: scan: %w", err)
		}
	}
	return append([]Locale(nil), r.locales...), nil
}

// Get returns the dataset for a locale code. Unknown codes fall back to
// DefaultLocale.
func (r *Registry) Get(code string) (*Dataset, error) {
	if !IsLocale(code) {
		code = DefaultLocale
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if ds, ok := r.cache[code]; ok {
		return ds, nil
	}

	start := time.Now()
	ds, err := r.load(code)
	if r.OnLoad != nil {
		r.OnLoad(code, time.Since(start), err)
	}
	if err != nil {
		return nil, fmt.Errorf("dataset: load %s: %w", code, err)
	}
	r.cache[code] = ds
	log.Printf("dataset: loaded %s (%d nodes) in %s", code, ds.Graph.Len(), time.Since(start).Round(time.Millisecond))
	return ds, nil
}

func (r *Registry) load(code string) (*Dataset, error) {
	if r.files == nil {
		if err := r.scan(); err != nil {
			return nil, err
		}
	}
	rel := "locales/" + code + "/strings.json"
	f, ok := r.files[rel]
	if !ok {
		return nil, fmt.Errorf("no strings for locale %s", code)
	}
	if r.data == nil {
		df, ok := r.files["data.json"]
		if !ok {
			return nil, fmt.Errorf("data.json not found in %s", r.dir)
		}
		data, err := LoadData(df.Path)
		if err != nil {
			return nil, err
		}
		r.data = data
	}
	if r.tree == nil {
		tf, ok := r.files["tree.json"]
		if !ok {
			return nil, fmt.Errorf("tree.json not found in %s", r.dir)
		}
		tree, err := LoadTree(tf.Path)
		if err != nil {
			return nil, err
		}
		r.tree = tree
	}
	strs, err := LoadStrings(f.Path)
	if err != nil {
		return nil, err
	}
	locale, _ := LookupLocale(code)
	return New(locale, r.data, r.tree, strs)
}
