// Package api provides the HTTP API for observing a running colony.
// GET endpoints are public (read-only observation).
// POST endpoints require a bearer token.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/engine"
)

// Server serves colony state over HTTP.
type Server struct {
	Ctx      *engine.Context
	Eng      *engine.Engine
	Port     int
	AdminKey string // Bearer token for POST endpoints. Empty = POST disabled.

	snapshotLimiter *RateLimiter
}

// Handler builds the request router.
func (s *Server) Handler() http.Handler {
	if s.snapshotLimiter == nil {
		s.snapshotLimiter = NewRateLimiter(6, time.Minute)
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/chains", s.handleChains)
	mux.HandleFunc("/api/v1/contracts", s.handleContracts)
	mux.HandleFunc("/api/v1/ledger", s.handleLedger)
	mux.HandleFunc("/api/v1/survey", s.handleSurvey)

	mux.HandleFunc("/api/v1/speed", s.adminOnly(s.handleSpeed))
	mux.HandleFunc("/api/v1/snapshot", s.adminOnly(RateLimitMiddleware(s.snapshotLimiter, s.handleSnapshot)))

	return mux
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "")

	handler := s.Handler()
	go func() {
		if err := http.ListenAndServe(addr, handler); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// checkBearerToken returns true if the request has a valid admin bearer token.
func (s *Server) checkBearerToken(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	return strings.HasPrefix(auth, "Bearer ") && strings.TrimPrefix(auth, "Bearer ") == s.AdminKey
}

// adminOnly wraps a handler to require bearer token auth on POST requests.
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if s.AdminKey == "" {
				http.Error(w, "admin endpoints disabled (no COLONYSIM_ADMIN_KEY set)", http.StatusForbidden)
				return
			}
			if !s.checkBearerToken(r) {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
		}
		next(w, r)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	snap := s.Ctx.Snapshot()
	status := map[string]any{
		"tick":          snap.Tick,
		"nodes":         snap.Stats.Nodes,
		"total_corps":   snap.Stats.TotalCorps,
		"active_corps":  snap.Stats.ActiveCorps,
		"funded_chains": snap.Stats.FundedChains,
		"contracts":     len(snap.Contracts),
		"money_supply":  snap.Stats.Supply,
	}
	if s.Eng != nil {
		status["speed"] = s.Eng.Speed()
		status["running"] = s.Eng.Running()
	}
	writeJSON(w, status)
}

func (s *Server) handleChains(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Ctx.Snapshot().Chains)
}

func (s *Server) handleContracts(w http.ResponseWriter, r *http.Request) {
	snap := s.Ctx.Snapshot()
	if chainID := r.URL.Query().Get("chain"); chainID != "" {
		filtered := snap.Contracts[:0]
		for _, k := range snap.Contracts {
			if k.ChainID == chainID {
				filtered = append(filtered, k)
			}
		}
		snap.Contracts = filtered
	}
	writeJSON(w, snap.Contracts)
}

func (s *Server) handleLedger(w http.ResponseWriter, r *http.Request) {
	snap := s.Ctx.Snapshot()
	writeJSON(w, map[string]any{
		"money_supply": snap.Stats.Supply,
		"state":        snap.Ledger,
	})
}

func (s *Server) handleSurvey(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Ctx.Snapshot().Opportunities)
}

func (s *Server) handleSpeed(w http.ResponseWriter, r *http.Request) {
	if s.Eng == nil {
		http.Error(w, "engine not available", http.StatusServiceUnavailable)
		return
	}
	if r.Method == http.MethodPost {
		var req struct {
			Speed float64 `json:"speed"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if req.Speed < 0 || req.Speed > 1000 {
			http.Error(w, "speed must be 0-1000", http.StatusBadRequest)
			return
		}
		s.Eng.SetSpeed(req.Speed)
		slog.Info("speed changed", "speed", req.Speed)
	}

	writeJSON(w, map[string]float64{"speed": s.Eng.Speed()})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.Ctx.Store == nil {
		http.Error(w, "store not available", http.StatusServiceUnavailable)
		return
	}

	if err := s.Ctx.Save(); err != nil {
		slog.Error("snapshot save failed", "error", err)
		http.Error(w, "snapshot failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{
		"tick":    s.Ctx.Snapshot().Tick,
		"message": "snapshot saved",
	})
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
