package http

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"

	"github.com/hvmartinez/coordsim/internal/core/domain"
	"github.com/hvmartinez/coordsim/internal/core/usecases"
	"github.com/hvmartinez/coordsim/internal/pkg/metrics"
)

// wsEvaluation is one slider update from the client.
type wsEvaluation struct {
	Cation float64 `json:"cation"` // cation radius r in Å
	Anion  float64 `json:"anion"`  // anion radius R in Å
}

// wsReply is sent back for every client message, and once on connect with
// the full stability table.
type wsReply struct {
	Type      string                       `json:"type"` // "table" | "result" | "error"
	Intervals domain.Table                 `json:"intervals,omitempty"`
	Result    *domain.ClassificationResult `json:"result,omitempty"`
	Code      string                       `json:"code,omitempty"`
	Message   string                       `json:"message,omitempty"`
}

// WebSocketHandler returns a handler that upgrades to WebSocket and
// evaluates radius pairs interactively. The client streams
// {"cation":r,"anion":R} on each slider move and receives the
// classification (or a structured error) per message. The stability table
// is pushed on connect so the client can render chart bands immediately.
func WebSocketHandler(svc *usecases.ClassifierService) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		defer c.Close()

		remoteAddr := c.RemoteAddr().String()
		log.Printf("ws client connected: %s", remoteAddr)

		metrics.ActiveWebSockets.Inc()
		defer metrics.ActiveWebSockets.Dec()

		var mu sync.Mutex

		// Helper: thread-safe write
		writeJSON := func(v interface{}) error {
			data, err := json.Marshal(v)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			return c.WriteMessage(websocket.TextMessage, data)
		}

		// Push the table so the client has the chart bands before the
		// first evaluation.
		if err := writeJSON(wsReply{Type: "table", Intervals: svc.Table()}); err != nil {
			log.Printf("ws table push error: %v", err)
			return
		}

		// Keep-alive ping
		done := make(chan struct{})
		go func() {
			ticker := time.NewTicker(30 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					mu.Lock()
					err := c.WriteMessage(websocket.PingMessage, nil)
					mu.Unlock()
					if err != nil {
						return
					}
				case <-done:
					return
				}
			}
		}()

		// Read client messages: one evaluation per message
		for {
			_, msg, err := c.ReadMessage()
			if err != nil {
				break
			}

			var eval wsEvaluation
			if err := json.Unmarshal(msg, &eval); err != nil {
				_ = writeJSON(wsReply{Type: "error", Code: "bad_request", Message: "invalid JSON"})
				continue
			}

			result, err := svc.Evaluate(context.Background(), eval.Cation, eval.Anion)
			if err != nil {
				_, code := classificationStatus(err)
				_ = writeJSON(wsReply{Type: "error", Code: code, Message: err.Error()})
				continue
			}

			_ = writeJSON(wsReply{Type: "result", Result: result})
		}

		// Cleanup
		close(done)
		log.Printf("ws client disconnected: %s", remoteAddr)
	}
}
