package viewer

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/techtree/internal/availability"
	"github.com/ziadkadry99/techtree/internal/dataset"
	"github.com/ziadkadry99/techtree/internal/graph"
	"github.com/ziadkadry99/techtree/internal/highlight"
)

// TreeResponse is everything needed to draw the tree in one locale.
type TreeResponse struct {
	Locale        string                 `json:"locale"`
	Title         string                 `json:"title"`
	Width         float64                `json:"width"`
	Height        float64                `json:"height"`
	AgeNames      []string               `json:"age_names"`
	Nodes         []*graph.Node          `json:"nodes"`
	Edges         []graph.Edge           `json:"edges"`
	Civs          []dataset.CivOption    `json:"civs"`
	DefaultCiv    string                 `json:"default_civ"`
	KeyLabel      string                 `json:"key_label"`
	Key           []dataset.KeyEntry     `json:"key"`
	BuildingIndex [][]dataset.IndexEntry `json:"building_index"`
}

// CivResponse is a faction overlay together with the faction panel.
type CivResponse struct {
	Info    dataset.CivInfo       `json:"info"`
	Overlay *availability.Overlay `json:"overlay"`
	Stale   []string              `json:"stale,omitempty"`
}

// PathResponse is the ancestor path of a node.
type PathResponse struct {
	Node    string       `json:"node"`
	Nodes   []string     `json:"nodes"`
	Edges   []graph.Edge `json:"edges"`
	EdgeIDs []string     `json:"edge_ids"`
}

func (v *Viewer) dataset(w http.ResponseWriter, r *http.Request) (*dataset.Dataset, string, bool) {
	locale, civ, _ := v.resolve(r)
	ds, err := v.registry.Get(locale)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil, "", false
	}
	return ds, civ, true
}

func (v *Viewer) handleLocales(w http.ResponseWriter, r *http.Request) {
	locales, err := v.registry.Locales()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, locales)
}

func (v *Viewer) handleTree(w http.ResponseWriter, r *http.Request) {
	ds, _, ok := v.dataset(w, r)
	if !ok {
		return
	}
	label, key := ds.Key()
	writeJSON(w, http.StatusOK, TreeResponse{
		Locale:        ds.Locale.Code,
		Title:         ds.Title(),
		Width:         ds.Width,
		Height:        ds.Height,
		AgeNames:      ds.AgeNames(),
		Nodes:         ds.Graph.Nodes(),
		Edges:         ds.Graph.Edges(),
		Civs:          ds.SortedCivs(),
		DefaultCiv:    ds.DefaultCiv(),
		KeyLabel:      label,
		Key:           key,
		BuildingIndex: dataset.BuildingIndex(),
	})
}

func (v *Viewer) handleCiv(w http.ResponseWriter, r *http.Request) {
	ds, _, ok := v.dataset(w, r)
	if !ok {
		return
	}
	civ, ok := canonicalCiv(ds, chi.URLParam(r, "civ"))
	if !ok {
		http.Error(w, "unknown civilization", http.StatusNotFound)
		return
	}
	ov, err := ds.Overlay(civ)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	resp := CivResponse{Info: ds.CivInfo(civ), Overlay: ov}
	for _, e := range ov.Stale {
		resp.Stale = append(resp.Stale, e.Error())
	}
	writeJSON(w, http.StatusOK, resp)
}

func (v *Viewer) handleHelp(w http.ResponseWriter, r *http.Request) {
	ds, civ, ok := v.dataset(w, r)
	if !ok {
		return
	}
	var ov *availability.Overlay
	if civ != "" {
		canonical, ok := canonicalCiv(ds, civ)
		if !ok {
			http.Error(w, "unknown civilization", http.StatusNotFound)
			return
		}
		var err error
		if ov, err = ds.Overlay(canonical); err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
	}
	view, err := ds.Help(ov, chi.URLParam(r, "id"))
	if err != nil {
		writeNodeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (v *Viewer) handlePath(w http.ResponseWriter, r *http.Request) {
	ds, _, ok := v.dataset(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	nodes, edges, err := highlight.Path(ds.Graph, id)
	if err != nil {
		writeNodeError(w, err)
		return
	}
	resp := PathResponse{Node: id, Nodes: nodes, Edges: edges, EdgeIDs: make([]string, len(edges))}
	for i, e := range edges {
		resp.EdgeIDs[i] = e.ID()
	}
	writeJSON(w, http.StatusOK, resp)
}

func canonicalCiv(ds *dataset.Dataset, civ string) (string, bool) {
	if ds.HasCiv(civ) {
		return civ, true
	}
	return ds.CanonicalCiv(civ)
}

func writeNodeError(w http.ResponseWriter, err error) {
	if errors.Is(err, graph.ErrNodeNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	http.Error(w, fmt.Sprintf("viewer: %v", err), http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
