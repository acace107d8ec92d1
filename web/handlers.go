package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/myood/winhook/hook"
)

// handleStats returns overall, daily and top-key statistics
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	days := queryInt(r, "days", 7)

	overall, err := s.db.GetOverallStats()
	if err != nil {
		slog.Error("Failed to get overall stats", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	daily, err := s.db.GetDailyStats(days)
	if err != nil {
		slog.Error("Failed to get daily stats", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	topKeys, err := s.db.GetTopKeys(days, 20)
	if err != nil {
		slog.Error("Failed to get top keys", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	response := struct {
		Overall any `json:"overall"`
		Daily   any `json:"daily"`
		TopKeys any `json:"topKeys"`
	}{
		Overall: overall,
		Daily:   daily,
		TopKeys: topKeys,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// handleEvents returns recent events with pagination
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := queryInt(r, "limit", 100)
	if limit > 1000 {
		limit = 1000
	}
	offset := queryInt(r, "offset", 0)
	source := r.URL.Query().Get("source")

	events, err := s.db.GetRecent(source, limit, offset)
	if err != nil {
		slog.Error("Failed to get events", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	type eventJSON struct {
		ID        int64  `json:"id"`
		Timestamp string `json:"timestamp"`
		Source    string `json:"source"`
		Action    string `json:"action"`
		Detail    string `json:"detail,omitempty"`
		RawCode   int64  `json:"rawCode,omitempty"`
		X         int64  `json:"x,omitempty"`
		Y         int64  `json:"y,omitempty"`
		Wheel     int64  `json:"wheel,omitempty"`
	}

	out := make([]eventJSON, 0, len(events))
	for _, e := range events {
		out = append(out, eventJSON{
			ID:        e.ID,
			Timestamp: e.Timestamp.Format("2006-01-02T15:04:05.000Z"),
			Source:    e.Source,
			Action:    e.Action,
			Detail:    e.Detail,
			RawCode:   e.RawCode,
			X:         e.X,
			Y:         e.Y,
			Wheel:     e.WheelDelta,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// handleStatus reports which hooks are currently live
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := struct {
		Keyboard bool `json:"keyboard"`
		Mouse    bool `json:"mouse"`
	}{
		Keyboard: hook.IsPresent(hook.Keyboard),
		Mouse:    hook.IsPresent(hook.Mouse),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
