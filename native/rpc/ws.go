package rpc

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"nhooyr.io/websocket"
)

const (
	wsPollInterval = 2 * time.Second
	wsWriteTimeout = 10 * time.Second
)

// handleStreamAction streams newly-recorded ledger entries for a given
// action over a WebSocket, polling the ledger at wsPollInterval: accept,
// stream until the context is done, write with a bounded per-message
// timeout.
func (s *Server) handleStreamAction(w http.ResponseWriter, r *http.Request) {
	action := chi.URLParam(r, "action")
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: []string{"*"}})
	if err != nil {
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "stream closed")

	if err := s.streamAction(r.Context(), conn, action); err != nil {
		if websocket.CloseStatus(err) == -1 {
			_ = conn.Close(websocket.StatusInternalError, "stream error")
		}
	}
}

func (s *Server) streamAction(ctx context.Context, conn *websocket.Conn, action string) error {
	ticker := time.NewTicker(wsPollInterval)
	defer ticker.Stop()

	seen := make(map[string]bool)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			entries, err := s.ledgerLog.RecentByAction(ctx, action, 50)
			if err != nil {
				continue
			}
			for i := len(entries) - 1; i >= 0; i-- {
				e := entries[i]
				key := e.ID.String()
				if seen[key] {
					continue
				}
				seen[key] = true
				if err := writeEntry(ctx, conn, e); err != nil {
					return err
				}
			}
		}
	}
}

func writeEntry(ctx context.Context, conn *websocket.Conn, e any) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	writeCtx, cancel := context.WithTimeout(ctx, wsWriteTimeout)
	defer cancel()
	return conn.Write(writeCtx, websocket.MessageText, data)
}
