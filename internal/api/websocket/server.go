package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/JaviLianes8/RealTajoFCBack/internal/publisher"
)

// Server pushes processed-document events to WebSocket clients
type Server struct {
	port     string
	server   *http.Server
	hub      *Hub
	upgrader websocket.Upgrader
}

// NewServer creates a new WebSocket server. An empty origin list, or one
// containing "*", accepts every origin.
func NewServer(allowedOrigins []string) *Server {
	s := &Server{hub: NewHub()}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}
	return s
}

func originChecker(allowed []string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(allowed) == 0 {
			return true
		}
		for _, a := range allowed {
			if a == "*" || a == origin {
				return true
			}
		}
		return false
	}
}

// Handler returns the routes served by the WebSocket server.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/ws/events", s.handleEvents).Methods("GET")
	router.HandleFunc("/ws/health", s.handleHealth).Methods("GET")
	return router
}

// Run starts the hub loop. It returns when ctx is cancelled.
func (s *Server) Run(ctx context.Context) {
	s.hub.Run(ctx)
}

// Start starts the hub and listens on port.
func (s *Server) Start(ctx context.Context, port string) error {
	s.port = port

	go s.hub.Run(ctx)

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info().Str("port", port).Msg("WebSocket server listening")
	return s.server.ListenAndServe()
}

// handleEvents upgrades the connection and subscribes it to the hub
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("remote", r.RemoteAddr).Msg("Failed to upgrade connection")
		return
	}

	client := &Client{
		hub:  s.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}

	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}

// handleHealth returns WebSocket server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "healthy",
		"clients": s.hub.ClientCount(),
	})
}

// Publish implements publisher.Notifier by broadcasting the event as JSON.
func (s *Server) Publish(_ context.Context, event publisher.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	s.hub.Broadcast(data)
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
