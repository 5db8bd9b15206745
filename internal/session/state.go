// Package session holds the view state of one viewer client and the
// transitions UI events apply to it.
package session

import (
	"errors"
	"fmt"

	"github.com/ziadkadry99/techtree/internal/availability"
	"github.com/ziadkadry99/techtree/internal/dataset"
	"github.com/ziadkadry99/techtree/internal/highlight"
)

// ErrNotLoaded is returned by transitions that need a dataset before the
// first load completed.
var ErrNotLoaded = errors.New("session: no dataset loaded")

// State is the view state of one client. It is not safe for concurrent use;
// Session confines it to a single goroutine.
type State struct {
	generation uint64
	loading    bool

	dataset     *dataset.Dataset
	civ         string
	overlay     *availability.Overlay
	focus       string
	help        *dataset.HelpView
	highlighter *highlight.Highlighter
	lastErr     error
}

// NewState returns an empty state. civ is the faction to select once a
// dataset is loaded; it may be empty.
func NewState(civ string) *State {
	return &State{civ: civ}
}

// BeginLoad starts a dataset load and returns its generation. Any load
// started earlier becomes stale.
func (s *State) BeginLoad() uint64 {
	s.generation++
	s.loading = true
	return s.generation
}

// CompleteLoad installs a loaded dataset. It reports false and changes
// nothing when gen is not the latest load.
func (s *State) CompleteLoad(gen uint64, ds *dataset.Dataset) bool {
	if gen != s.generation {
		return false
	}
	s.loading = false
	s.lastErr = nil
	s.dataset = ds
	s.highlighter = highlight.New(ds.Graph)
	s.focus, s.help = "", nil

	civ := s.civ
	if !ds.HasCiv(civ) {
		if canonical, ok := ds.CanonicalCiv(civ); ok {
			civ = canonical
		} else {
			civ = ds.DefaultCiv()
		}
	}
	s.applyCiv(civ)
	return true
}

// FailLoad records a failed load. The previous dataset and view stay in
// place. It reports false when gen is stale.
func (s *State) FailLoad(gen uint64, err error) bool {
	if gen != s.generation {
		return false
	}
	s.loading = false
	s.lastErr = err
	return true
}

func (s *State) applyCiv(civ string) {
	s.civ = civ
	s.overlay = nil
	if civ == "" {
		return
	}
	ov, err := s.dataset.Overlay(civ)
	if err != nil {
		s.lastErr = err
		return
	}
	s.overlay = ov
}

// SelectFaction switches the faction. civ may be an id or a URL fragment.
// Before the first load the choice is remembered and applied on completion.
// Selecting a faction hides the help panel.
func (s *State) SelectFaction(civ string) error {
	if s.dataset == nil {
		s.civ = civ
		return nil
	}
	if !s.dataset.HasCiv(civ) {
		canonical, ok := s.dataset.CanonicalCiv(civ)
		if !ok {
			return fmt.Errorf("%w: %s", dataset.ErrUnknownCiv, civ)
		}
		civ = canonical
	}
	s.applyCiv(civ)
	s.Blur()
	return nil
}

// Focus shows the help panel of a node and highlights its path.
func (s *State) Focus(nodeID string) error {
	if s.dataset == nil {
		return ErrNotLoaded
	}
	view, err := s.dataset.Help(s.overlay, nodeID)
	if err != nil {
		return err
	}
	s.focus = nodeID
	s.help = view
	return s.highlighter.Unhighlight(nodeID)
}

// Blur hides the help panel and clears the highlight.
func (s *State) Blur() {
	s.focus, s.help = "", nil
	if s.highlighter != nil {
		s.highlighter.Clear()
	}
}

// Hover highlights the path of a node on top of the focused path.
func (s *State) Hover(nodeID string) error {
	if s.highlighter == nil {
		return ErrNotLoaded
	}
	return s.highlighter.Highlight(nodeID)
}

// Unhover restores the highlight to the focused path.
func (s *State) Unhover() error {
	if s.highlighter == nil {
		return nil
	}
	return s.highlighter.Unhighlight(s.focus)
}

// View is a snapshot of the state for the renderer.
type View struct {
	Generation uint64                `json:"generation"`
	Loading    bool                  `json:"loading"`
	Locale     string                `json:"locale,omitempty"`
	Title      string                `json:"title,omitempty"`
	Civ        string                `json:"civ,omitempty"`
	CivInfo    *dataset.CivInfo      `json:"civ_info,omitempty"`
	Overlay    *availability.Overlay `json:"overlay,omitempty"`
	Focus      string                `json:"focus,omitempty"`
	Help       *dataset.HelpView     `json:"help,omitempty"`
	Highlight  highlight.State       `json:"highlight"`
	Error      string                `json:"error,omitempty"`
}

// View returns a snapshot of the current state.
func (s *State) View() View {
	v := View{
		Generation: s.generation,
		Loading:    s.loading,
		Civ:        s.civ,
		Overlay:    s.overlay,
		Focus:      s.focus,
		Help:       s.help,
	}
	if s.dataset != nil {
		v.Locale = s.dataset.Locale.Code
		v.Title = s.dataset.Title()
		if s.civ != "" {
			info := s.dataset.CivInfo(s.civ)
			v.CivInfo = &info
		}
	}
	if s.highlighter != nil {
		v.Highlight = s.highlighter.State()
	}
	if s.lastErr != nil {
		v.Error = s.lastErr.Error()
	}
	return v
}

// Dataset returns the current dataset, nil before the first load.
func (s *State) Dataset() *dataset.Dataset { return s.dataset }
