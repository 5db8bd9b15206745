package session

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/techtree/internal/availability"
	"github.com/ziadkadry99/techtree/internal/dataset"
)

var fixtureDir = filepath.Join("..", "..", "testdata", "data")

func load(t *testing.T, locale string) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.Load(fixtureDir, locale)
	require.NoError(t, err)
	return ds
}

func loadedState(t *testing.T, civ string) *State {
	t.Helper()
	s := NewState(civ)
	gen := s.BeginLoad()
	require.True(t, s.CompleteLoad(gen, load(t, "en")))
	return s
}

func TestStateBeforeLoad(t *testing.T) {
	s := NewState("")
	assert.ErrorIs(t, s.Focus("unit_93"), ErrNotLoaded)
	assert.ErrorIs(t, s.Hover("unit_93"), ErrNotLoaded)
	assert.NoError(t, s.Unhover())
	s.Blur()

	require.NoError(t, s.SelectFaction("mongols"))
	gen := s.BeginLoad()
	assert.True(t, s.View().Loading)
	require.True(t, s.CompleteLoad(gen, load(t, "en")))

	v := s.View()
	assert.False(t, v.Loading)
	assert.Equal(t, "Mongols", v.Civ, "fragment chosen before the load is canonicalised")
	require.NotNil(t, v.Overlay)
	assert.Equal(t, "en", v.Locale)
	assert.Equal(t, "Age of Empires II Technology Tree", v.Title)
	require.NotNil(t, v.CivInfo)
	assert.Equal(t, "img/Civs/mongols.png", v.CivInfo.Logo)
}

func TestStateDefaultsToFirstCiv(t *testing.T) {
	s := loadedState(t, "")
	assert.Equal(t, "Britons", s.View().Civ)

	s = loadedState(t, "Aztecs")
	assert.Equal(t, "Britons", s.View().Civ)
}

func TestStateSupersededLoad(t *testing.T) {
	s := NewState("Goths")
	first := s.BeginLoad()
	second := s.BeginLoad()

	assert.False(t, s.CompleteLoad(first, load(t, "de")), "stale completion is a no-op")
	assert.Empty(t, s.View().Locale)
	assert.False(t, s.FailLoad(first, errors.New("late failure")))

	require.True(t, s.CompleteLoad(second, load(t, "en")))
	assert.Equal(t, "en", s.View().Locale)
	assert.Equal(t, uint64(2), s.View().Generation)
}

func TestStateFailedLoadKeepsView(t *testing.T) {
	s := loadedState(t, "Mongols")
	require.NoError(t, s.Focus("unit_93"))

	gen := s.BeginLoad()
	require.True(t, s.FailLoad(gen, errors.New("strings.json: no such file")))

	v := s.View()
	assert.False(t, v.Loading)
	assert.Equal(t, "en", v.Locale)
	assert.Equal(t, "Mongols", v.Civ)
	assert.Equal(t, "unit_93", v.Focus)
	assert.NotNil(t, v.Overlay)
	assert.Contains(t, v.Error, "no such file")
}

func TestStateFocusHoverBlur(t *testing.T) {
	s := loadedState(t, "Mongols")

	require.NoError(t, s.Focus("unit_75"))
	v := s.View()
	require.NotNil(t, v.Help)
	assert.Equal(t, "unit_75", v.Help.Node)
	assert.Equal(t, []string{"unit_75", "unit_74", "building_12"}, v.Highlight.Nodes)

	require.NoError(t, s.Hover("unit_93"))
	assert.Contains(t, s.View().Highlight.Nodes, "unit_93")

	require.NoError(t, s.Unhover())
	assert.Equal(t, []string{"unit_75", "unit_74", "building_12"}, s.View().Highlight.Nodes)

	s.Blur()
	v = s.View()
	assert.Empty(t, v.Focus)
	assert.Nil(t, v.Help)
	assert.Empty(t, v.Highlight.Nodes)

	assert.Error(t, s.Focus("unit_404"))
	assert.Error(t, s.Hover("unit_404"))
}

func TestStateFocusReskinnedSlot(t *testing.T) {
	s := loadedState(t, "Mongols")
	require.NoError(t, s.Focus(availability.SlotUniqueUnit))
	v := s.View()
	assert.Equal(t, "unit_122", v.Help.Entity)
	assert.Equal(t, []string{availability.SlotUniqueUnit, "building_82"}, v.Highlight.Nodes)
}

func TestStateSelectFaction(t *testing.T) {
	s := loadedState(t, "Mongols")
	require.NoError(t, s.Focus("unit_93"))

	require.NoError(t, s.SelectFaction("goths"))
	v := s.View()
	assert.Equal(t, "Goths", v.Civ)
	assert.Empty(t, v.Focus, "switching faction hides the help panel")
	slot, ok := v.Overlay.Node(availability.SlotUniqueUnit)
	require.True(t, ok)
	assert.Equal(t, "unit_41", slot.Entity)

	assert.ErrorIs(t, s.SelectFaction("aztecs"), dataset.ErrUnknownCiv)
	assert.Equal(t, "Goths", s.View().Civ)
}

// gatedLoader serves fixture datasets; loads for a gated locale block until
// the gate is closed.
type gatedLoader struct {
	t     *testing.T
	mu    sync.Mutex
	gates map[string]chan struct{}
}

func (l *gatedLoader) Get(locale string) (*dataset.Dataset, error) {
	l.mu.Lock()
	gate := l.gates[locale]
	l.mu.Unlock()
	if gate != nil {
		<-gate
	}
	if locale == "fr" {
		return nil, errors.New("no strings for locale fr")
	}
	return dataset.Load(fixtureDir, locale)
}

func recv(t *testing.T, ch <-chan Update) Update {
	t.Helper()
	select {
	case u, ok := <-ch:
		require.True(t, ok, "updates closed")
		return u
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for update")
		return Update{}
	}
}

func startSession(t *testing.T, loader Loader, civ string) (*Session, context.CancelFunc) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	s := New(loader, civ)
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return s, cancel
}

func TestSessionEvents(t *testing.T) {
	s, _ := startSession(t, &gatedLoader{t: t}, "britons")
	ctx := context.Background()

	require.NoError(t, s.Send(ctx, Event{Kind: EventLoadLocale, Locale: "en"}))
	u := recv(t, s.Updates())
	assert.Equal(t, EventLoadLocale, u.Event)
	assert.True(t, u.View.Loading)

	u = recv(t, s.Updates())
	assert.Equal(t, EventLoaded, u.Event)
	assert.Equal(t, "Britons", u.View.Civ)

	require.NoError(t, s.Send(ctx, Event{Kind: EventFocus, Node: "unit_93"}))
	u = recv(t, s.Updates())
	assert.Equal(t, EventFocus, u.Event)
	require.NotNil(t, u.View.Help)
	assert.Empty(t, u.Error)

	require.NoError(t, s.Send(ctx, Event{Kind: EventHover, Node: "unit_404"}))
	u = recv(t, s.Updates())
	assert.Contains(t, u.Error, "unit_404")
	assert.Equal(t, "unit_93", u.View.Focus, "a failed event leaves the state alone")

	require.NoError(t, s.Send(ctx, Event{Kind: "teleport"}))
	u = recv(t, s.Updates())
	assert.Contains(t, u.Error, "unknown event")
}

func TestSessionSupersedesLoads(t *testing.T) {
	gate := make(chan struct{})
	loader := &gatedLoader{t: t, gates: map[string]chan struct{}{"de": gate}}
	s, _ := startSession(t, loader, "")
	ctx := context.Background()

	require.NoError(t, s.Send(ctx, Event{Kind: EventLoadLocale, Locale: "de"}))
	require.NoError(t, s.Send(ctx, Event{Kind: EventLoadLocale, Locale: "en"}))

	assert.Equal(t, EventLoadLocale, recv(t, s.Updates()).Event)
	assert.Equal(t, EventLoadLocale, recv(t, s.Updates()).Event)
	u := recv(t, s.Updates())
	assert.Equal(t, EventLoaded, u.Event)
	assert.Equal(t, "en", u.View.Locale)

	// The slower, superseded load finishes now and must not replace en.
	close(gate)
	require.NoError(t, s.Send(ctx, Event{Kind: EventBlur}))
	u = recv(t, s.Updates())
	assert.Equal(t, EventBlur, u.Event)
	assert.Equal(t, "en", u.View.Locale)
}

func TestSessionFailedLoad(t *testing.T) {
	s, _ := startSession(t, &gatedLoader{t: t}, "")
	ctx := context.Background()

	require.NoError(t, s.Send(ctx, Event{Kind: EventLoadLocale, Locale: "en"}))
	recv(t, s.Updates())
	recv(t, s.Updates())

	require.NoError(t, s.Send(ctx, Event{Kind: EventLoadLocale, Locale: "fr"}))
	recv(t, s.Updates())
	u := recv(t, s.Updates())
	assert.Equal(t, EventLoaded, u.Event)
	assert.Contains(t, u.Error, "fr")
	assert.Equal(t, "en", u.View.Locale, "previous dataset stays")
}

func TestSessionStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := New(&gatedLoader{t: t}, "")
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
	_, ok := <-s.Updates()
	assert.False(t, ok)
}
