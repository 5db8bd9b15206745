// Package viewer serves the tech tree over HTTP: the tree and its page
// chrome, faction overlays, help panels, ancestor paths and a websocket that
// drives a live session.
package viewer

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/techtree/internal/dataset"
	"github.com/ziadkadry99/techtree/internal/prefs"
)

// PrefStore is the part of prefs.Store the viewer uses to resolve and
// remember a client's locale and faction.
type PrefStore interface {
	Get(ctx context.Context, id string) (*prefs.Preference, error)
	Update(ctx context.Context, p prefs.Preference) (*prefs.Preference, error)
}

// Gauge counts live websocket sessions. prometheus.Gauge implements it.
type Gauge interface {
	Inc()
	Dec()
}

// Viewer serves datasets from a registry.
type Viewer struct {
	registry *dataset.Registry
	prefs    PrefStore
	sessions Gauge
}

// Option configures a Viewer.
type Option func(*Viewer)

// WithPrefs resolves the "pref" query parameter against a preference store
// and saves locale and faction changes made over the websocket.
func WithPrefs(store PrefStore) Option {
	return func(v *Viewer) { v.prefs = store }
}

// WithSessionGauge tracks open websocket sessions.
func WithSessionGauge(g Gauge) Option {
	return func(v *Viewer) { v.sessions = g }
}

// New creates a Viewer.
func New(registry *dataset.Registry, opts ...Option) *Viewer {
	v := &Viewer{registry: registry}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// RegisterRoutes mounts the viewer endpoints on the given router.
func (v *Viewer) RegisterRoutes(r chi.Router) {
	r.Get("/api/locales", v.handleLocales)
	r.Get("/api/tree", v.handleTree)
	r.Get("/api/civs/{civ}", v.handleCiv)
	r.Get("/api/nodes/{id}/help", v.handleHelp)
	r.Get("/api/nodes/{id}/path", v.handlePath)
	r.Get("/ws", v.handleWebSocket)
}

// resolve picks the locale and faction of a request: query parameters
// first, then the stored preference named by "pref", then the defaults.
func (v *Viewer) resolve(r *http.Request) (locale, civ string, pref *prefs.Preference) {
	q := r.URL.Query()
	var storedLocale, storedCiv string
	if id := q.Get("pref"); id != "" && v.prefs != nil {
		if p, err := v.prefs.Get(r.Context(), id); err == nil {
			pref = p
			storedLocale, storedCiv = p.Locale, p.Civ
		}
	}
	civ = q.Get("civ")
	if civ == "" {
		civ = storedCiv
	}
	return dataset.ResolveLocale(q.Get("lng"), storedLocale), civ, pref
}
