package web

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"schedlink/internal/config"
	"schedlink/internal/ics"
	appLog "schedlink/internal/log"
	"schedlink/internal/model"
)

// Server exposes the scanned schedule over HTTP: JSON with per-session
// calendar links, plus an ICS rendition of the same data.
type Server struct {
	cfg *config.Config
	mux *http.ServeMux

	// The schedule cache is replaced wholesale by each re-scan; handlers
	// only ever read it.
	mu        sync.RWMutex
	links     []model.SessionLink
	scannedAt time.Time
}

// NewServer constructs a new Server.
func NewServer(cfg *config.Config) *Server {
	s := &Server{
		cfg: cfg,
		mux: http.NewServeMux(),
	}
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/api/schedule", s.handleSchedule)
	s.mux.HandleFunc("/calendar.ics", s.handleICS)
	return s
}

// SetSchedule replaces the cached schedule; called after each scan.
func (s *Server) SetSchedule(links []model.SessionLink) {
	s.mu.Lock()
	s.links = links
	s.scannedAt = time.Now().UTC()
	s.mu.Unlock()
}

// Handler returns the http.Handler, wrapped with basic auth when configured.
func (s *Server) Handler() http.Handler {
	h := http.Handler(s.mux)
	if s.basicAuthEnabled() {
		appLog.Info("HTTP basic auth enabled", "listen", "http://"+s.cfg.Listen)
		return s.basicAuthMiddleware(h)
	}
	return h
}

func (s *Server) basicAuthEnabled() bool {
	if s.cfg == nil || s.cfg.BasicAuth == nil {
		return false
	}
	// Treat empty username or password as disabled.
	return s.cfg.BasicAuth.Username != "" && s.cfg.BasicAuth.Password != ""
}

// basicAuthMiddleware wraps all handlers except /health.
func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	username := s.cfg.BasicAuth.Username
	password := s.cfg.BasicAuth.Password

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		u, p, ok := r.BasicAuth()
		if !ok || !secureCompare(u, username) || !secureCompare(p, password) {
			w.Header().Set("WWW-Authenticate", `Basic realm="schedlink", charset="UTF-8"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// secureCompare compares two strings in constant time.
func secureCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// sessionJSON is the wire form of one resolved session.
type sessionJSON struct {
	Title       string `json:"title"`
	Venue       string `json:"venue,omitempty"`
	Start       string `json:"start_utc"`
	End         string `json:"end_utc"`
	CalendarURL string `json:"calendar_url"`
}

type dayJSON struct {
	Date     string        `json:"date"` // YYYY-MM-DD
	Sessions []sessionJSON `json:"sessions"`
}

type scheduleJSON struct {
	ScannedAt time.Time `json:"scanned_at"`
	Days      []dayJSON `json:"days"`
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.mu.RLock()
	links := s.links
	scannedAt := s.scannedAt
	s.mu.RUnlock()

	resp := scheduleJSON{ScannedAt: scannedAt, Days: groupByDay(links)}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(&resp); err != nil {
		appLog.Error("schedule response encode failed", err)
	}
}

func (s *Server) handleICS(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.mu.RLock()
	links := s.links
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	if _, err := w.Write([]byte(ics.Feed(links))); err != nil {
		appLog.Error("ics response write failed", err)
	}
}

// groupByDay buckets links under their calendar date, preserving scan order
// within a day and day order of first appearance.
func groupByDay(links []model.SessionLink) []dayJSON {
	index := make(map[model.CalendarDate]int)
	days := make([]dayJSON, 0)

	for _, l := range links {
		i, ok := index[l.Date]
		if !ok {
			i = len(days)
			index[l.Date] = i
			days = append(days, dayJSON{
				Date: time.Date(l.Date.Year, l.Date.MonthOf(), l.Date.Day, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
			})
		}
		days[i].Sessions = append(days[i].Sessions, sessionJSON{
			Title:       l.Title,
			Venue:       l.Venue,
			Start:       l.StartStamp,
			End:         l.EndStamp,
			CalendarURL: l.URL,
		})
	}
	return days
}
