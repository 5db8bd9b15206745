package viewer

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/techtree/internal/dataset"
	"github.com/ziadkadry99/techtree/internal/prefs"
	"github.com/ziadkadry99/techtree/internal/session"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// errorMessage is sent for frames that are not a valid event.
type errorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// conn serialises writes; gorilla allows one concurrent writer.
type conn struct {
	mu sync.Mutex
	ws *websocket.Conn
}

func (c *conn) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteJSON(v)
}

// handleWebSocket runs one session per connection. The session starts by
// loading the resolved locale; every event the client sends produces an
// update frame.
func (v *Viewer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("viewer: websocket upgrade: %v", err)
		return
	}
	defer ws.Close()
	c := &conn{ws: ws}

	if v.sessions != nil {
		v.sessions.Inc()
		defer v.sessions.Dec()
	}

	locale, civ, pref := v.resolve(r)

	// The request context ends with the server's request timeout.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sess := session.New(v.registry, civ)
	runDone := make(chan struct{})
	go func() {
		defer close(runDone)
		sess.Run(ctx)
	}()

	writeDone := make(chan struct{})
	go func() {
		defer close(writeDone)
		for upd := range sess.Updates() {
			if err := c.writeJSON(upd); err != nil {
				log.Printf("viewer: websocket write: %v", err)
				cancel()
				return
			}
			v.remember(ctx, pref, upd)
		}
	}()

	if err := sess.Send(ctx, session.Event{Kind: session.EventLoadLocale, Locale: locale}); err != nil {
		return
	}

	for {
		_, msg, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("viewer: websocket read: %v", err)
			}
			break
		}

		var ev session.Event
		if err := json.Unmarshal(msg, &ev); err != nil {
			if err := c.writeJSON(errorMessage{Type: "error", Error: "invalid message format"}); err != nil {
				break
			}
			continue
		}
		if ev.Kind == session.EventLoadLocale {
			ev.Locale = dataset.ResolveLocale(ev.Locale, locale)
		}
		if err := sess.Send(ctx, ev); err != nil {
			break
		}
	}

	cancel()
	<-runDone
	<-writeDone
}

// remember saves the locale and faction of a session to its preference.
func (v *Viewer) remember(ctx context.Context, pref *prefs.Preference, upd session.Update) {
	if pref == nil || v.prefs == nil || upd.Error != "" {
		return
	}
	if upd.Event != session.EventLoaded && upd.Event != session.EventSelectCiv {
		return
	}
	if upd.View.Locale == pref.Locale && upd.View.Civ == pref.Civ {
		return
	}
	pref.Locale, pref.Civ = upd.View.Locale, upd.View.Civ
	if _, err := v.prefs.Update(ctx, *pref); err != nil {
		log.Printf("viewer: saving preference %s: %v", pref.ID, err)
	}
}
