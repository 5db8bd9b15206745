package session

import (
	"context"
	"fmt"
	"log"

	"github.com/ziadkadry99/techtree/internal/dataset"
)

// Loader provides datasets by locale. *dataset.Registry implements it.
type Loader interface {
	Get(locale string) (*dataset.Dataset, error)
}

// EventKind names a UI event.
type EventKind string

const (
	EventSelectCiv  EventKind = "select_civ"
	EventFocus      EventKind = "focus"
	EventBlur       EventKind = "blur"
	EventHover      EventKind = "hover"
	EventUnhover    EventKind = "unhover"
	EventLoadLocale EventKind = "load_locale"
	// EventLoaded is only sent in updates, when a locale load finished.
	EventLoaded EventKind = "loaded"
)

// Event is a UI event sent by the client.
type Event struct {
	Kind   EventKind `json:"type"`
	Civ    string    `json:"civ,omitempty"`
	Node   string    `json:"node,omitempty"`
	Locale string    `json:"locale,omitempty"`
}

// Update is the state after an event was applied.
type Update struct {
	Event EventKind `json:"event"`
	View  View      `json:"view"`
	Error string    `json:"error,omitempty"`
}

type loadResult struct {
	gen uint64
	ds  *dataset.Dataset
	err error
}

// Session runs a State on one goroutine. Events come in over a channel and
// every applied event produces an Update. Locale loads run on their own
// goroutine and hand their result back as a message.
type Session struct {
	loader  Loader
	state   *State
	events  chan Event
	updates chan Update
	loaded  chan loadResult
}

// New creates a session. civ is the initial faction, possibly empty.
func New(loader Loader, civ string) *Session {
	return &Session{
		loader:  loader,
		state:   NewState(civ),
		events:  make(chan Event, 16),
		updates: make(chan Update, 16),
		loaded:  make(chan loadResult),
	}
}

// Send queues an event for the session.
func (s *Session) Send(ctx context.Context, ev Event) error {
	select {
	case s.events <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Updates returns the channel updates are delivered on. It is closed when
// Run returns.
func (s *Session) Updates() <-chan Update {
	return s.updates
}

// Run applies events until ctx is cancelled.
func (s *Session) Run(ctx context.Context) error {
	defer close(s.updates)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-s.events:
			upd := s.apply(ctx, ev)
			if err := s.emit(ctx, upd); err != nil {
				return err
			}

		case res := <-s.loaded:
			var applied bool
			if res.err != nil {
				applied = s.state.FailLoad(res.gen, res.err)
				if applied {
					log.Printf("session: load failed, keeping previous view: %v", res.err)
				}
			} else {
				applied = s.state.CompleteLoad(res.gen, res.ds)
			}
			if !applied {
				continue
			}
			upd := Update{Event: EventLoaded, View: s.state.View()}
			if res.err != nil {
				upd.Error = res.err.Error()
			}
			if err := s.emit(ctx, upd); err != nil {
				return err
			}
		}
	}
}

func (s *Session) emit(ctx context.Context, upd Update) error {
	select {
	case s.updates <- upd:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Session) apply(ctx context.Context, ev Event) Update {
	var err error
	switch ev.Kind {
	case EventSelectCiv:
		err = s.state.SelectFaction(ev.Civ)
	case EventFocus:
		err = s.state.Focus(ev.Node)
	case EventBlur:
		s.state.Blur()
	case EventHover:
		err = s.state.Hover(ev.Node)
	case EventUnhover:
		err = s.state.Unhover()
	case EventLoadLocale:
		s.load(ctx, ev.Locale)
	default:
		err = fmt.Errorf("session: unknown event %q", ev.Kind)
	}

	upd := Update{Event: ev.Kind, View: s.state.View()}
	if err != nil {
		upd.Error = err.Error()
	}
	return upd
}

func (s *Session) load(ctx context.Context, locale string) {
	gen := s.state.BeginLoad()
	go func() {
		ds, err := s.loader.Get(locale)
		select {
		case s.loaded <- loadResult{gen: gen, ds: ds, err: err}:
		case <-ctx.Done():
		}
	}()
}
