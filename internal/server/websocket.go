package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	wsWriteWait      = 10 * time.Second
	wsReadWait       = 30 * time.Second
	wsMaxMessageSize = maxRequestBytes
)

// Message types sent on the locate stream.
const (
	msgProgress = "progress"
	msgResult   = "result"
	msgError    = "error"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin policy is enforced by the CORS allow-list.
	CheckOrigin: func(*http.Request) bool { return true },
}

type progressMessage struct {
	Type     string `json:"type"`
	Resolved int    `json:"resolved"`
	Total    int    `json:"total"`
}

type resultMessage struct {
	Type string `json:"type"`
	locateResponse
}

type errorMessage struct {
	Type   string `json:"type"`
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// handleLocateStream upgrades the connection, reads one locate request and
// streams per-batch progress followed by the result. Closing the socket
// cancels the run.
func (s *Server) handleLocateStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.L().Warn("server: websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close() //nolint:errcheck

	log := zap.L().With(zap.String("remote", r.RemoteAddr))

	conn.SetReadLimit(wsMaxMessageSize)
	conn.SetReadDeadline(time.Now().Add(wsReadWait)) //nolint:errcheck

	var lr locateRequest
	if err := conn.ReadJSON(&lr); err != nil {
		writeMessage(conn, errorMessage{Type: msgError, Error: "invalid request body", Status: http.StatusBadRequest})
		return
	}
	conn.SetReadDeadline(time.Time{}) //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Any read error, including a normal close, means the client is gone.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	req, err := s.build(lr)
	if err != nil {
		writeMessage(conn, errorMessage{Type: msgError, Error: err.Error(), Status: statusFor(err)})
		return
	}

	progress := func(resolved, total int) {
		if err := writeMessage(conn, progressMessage{Type: msgProgress, Resolved: resolved, Total: total}); err != nil {
			cancel()
		}
	}

	rs, err := s.locator.Locate(ctx, req, progress)
	if err != nil {
		code := statusFor(err)
		if code >= http.StatusInternalServerError {
			log.Warn("server: streamed locate failed", zap.Error(err))
		}
		writeMessage(conn, errorMessage{Type: msgError, Error: err.Error(), Status: code})
		return
	}

	if err := writeMessage(conn, resultMessage{Type: msgResult, locateResponse: newLocateResponse(rs)}); err != nil {
		log.Debug("server: client gone before result", zap.Error(err))
		return
	}
	conn.SetWriteDeadline(time.Now().Add(wsWriteWait)) //nolint:errcheck
	conn.WriteMessage(websocket.CloseMessage, //nolint:errcheck
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// writeMessage sends v as a JSON text frame. All writes happen on the
// handler goroutine.
func writeMessage(conn *websocket.Conn, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	conn.SetWriteDeadline(time.Now().Add(wsWriteWait)) //nolint:errcheck
	return conn.WriteMessage(websocket.TextMessage, b)
}
