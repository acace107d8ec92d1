package web

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/myood/winhook/storage"
)

//go:embed static/*
var staticFiles embed.FS

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development
	},
}

// Server serves the dashboard, the REST API and the live event feed.
type Server struct {
	db   *storage.DB
	port int
	hub  *Hub
}

// NewServer creates a new web server
func NewServer(db *storage.DB, port int) *Server {
	hub := NewHub()
	go hub.Run()

	return &Server{
		db:   db,
		port: port,
		hub:  hub,
	}
}

// Start starts the web server
func (s *Server) Start() error {
	mux := http.NewServeMux()

	// API endpoints
	mux.HandleFunc("/api/stats", s.handleStats)
	mux.HandleFunc("/api/events", s.handleEvents)
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/ws", s.handleWebSocket)

	// Static files
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return fmt.Errorf("failed to load static files: %w", err)
	}
	mux.Handle("/", http.FileServer(http.FS(staticFS)))

	addr := fmt.Sprintf(":%d", s.port)
	slog.Info("Starting web server", "port", s.port, "url", fmt.Sprintf("http://localhost:%d", s.port))

	return http.ListenAndServe(addr, mux)
}

// BroadcastStatus broadcasts a recorder status change to all connected clients
func (s *Server) BroadcastStatus(status string) {
	s.hub.BroadcastMessage(Message{
		Type: MessageTypeStatus,
		Data: StatusMessage{Status: status},
	})
}

// BroadcastEvent broadcasts a captured input event to all connected clients
func (s *Server) BroadcastEvent(rec storage.InputRecord) {
	s.hub.BroadcastMessage(Message{
		Type: MessageTypeEvent,
		Data: EventMessage{
			Source:    rec.Source,
			Action:    rec.Action,
			Detail:    rec.Detail,
			X:         rec.X,
			Y:         rec.Y,
			Timestamp: rec.Timestamp.Format("2006-01-02T15:04:05.000Z"),
		},
	})
}

// handleWebSocket handles WebSocket connections
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("Failed to upgrade WebSocket connection", "error", err)
		return
	}

	client := &Client{
		hub:  s.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}

	client.hub.register <- client

	// Start client goroutines
	go client.writePump()
	go client.readPump()
}
