package server

import (
	"context"
	"net/http"
	"time"

	"github.com/etnz/watchlist"
	"github.com/etnz/watchlist/logging"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

const writeWait = 10 * time.Second

// message is one push on /ws: a snapshot or the error of a cycle.
type message struct {
	Snapshot *watchlist.Snapshot `json:"snapshot,omitempty"`
	Error    string              `json:"error,omitempty"`
}

// stream pushes snapshots until the client goes away. The watchlist is
// reconciled again at every cycle, so that saves from other clients show up.
func (s *Server) stream(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if _, err := s.load(r.Context(), q); err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.L().Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	// the read loop detects the client leaving.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	// once a code parameter was reconciled, the persisted store holds it.
	q.Del(watchlist.ParamCode)
	var last []watchlist.Entry
	refresher := &watchlist.Refresher{
		Fetcher:  s.fetcher,
		Interval: s.interval,
		Entries: func() []watchlist.Entry {
			ss, err := s.load(ctx, q)
			if err != nil {
				logging.L().Warn("cannot reload watchlist", zap.Error(err))
				return last
			}
			last = ss.list.Entries()
			return last
		},
	}
	refresher.Run(ctx, func(snap *watchlist.Snapshot, err error) {
		msg := message{Snapshot: snap}
		if err != nil {
			msg.Error = err.Error()
		}
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(msg); err != nil {
			cancel()
		}
	})
}
