// Package api provides the HTTP server for NutriQuest.
// It exposes the hero, stage, log, quest, skill, and achievement endpoints
// backed by a single session.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nutriquest-app/nutriquest/internal/app/session"
	"github.com/nutriquest-app/nutriquest/internal/domain"
)

// Server is the NutriQuest HTTP API server.
type Server struct {
	session        *session.Session
	metricsEnabled bool
}

// NewServer creates a new API server around a session.
func NewServer(sess *session.Session) *Server {
	return &Server{session: sess}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
		})
	})

	r.Get("/api/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"version": "0.1.0",
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/hero", s.handleHero)
		r.Post("/hero", s.handleOnboard)
		r.Get("/stage", s.handleStage)
		r.Get("/target", s.handleTarget)

		r.Route("/logs", func(r chi.Router) {
			r.Get("/", s.handleListLogs)
			r.Post("/food", s.handleLogFood)
			r.Post("/preset", s.handleLogPreset)
			r.Post("/exercise", s.handleLogExercise)
			r.Post("/water", s.handleLogWater)
			r.Delete("/{id}", s.handleDeleteLog)
		})

		r.Post("/day/advance", s.handleAdvanceDay)

		r.Route("/quests", func(r chi.Router) {
			r.Get("/daily", s.handleDailyQuests)
			r.Get("/active", s.handleActiveQuests)
			r.Post("/accept", s.handleAcceptQuest)
			r.Post("/{id}/claim", s.handleClaimQuest)
			r.Delete("/{id}", s.handleAbandonQuest)
		})

		r.Route("/skills", func(r chi.Router) {
			r.Get("/", s.handleSkillTree)
			r.Post("/{id}/upgrade", s.handleUpgradeSkill)
			r.Post("/arm", s.handleArmSkill)
		})

		r.Post("/rebirth", s.handleRebirth)

		r.Get("/achievements", s.handleAchievements)
		r.Post("/achievements/{id}/equip", s.handleEquipAchievement)

		r.Post("/shop/buy", s.handleBuyItem)
		r.Get("/gold", s.handleGoldHistory)
	})

	// Prometheus metrics endpoint
	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// ─── Hero and day ────────────────────────────────────────────────────────────

func (s *Server) handleHero(w http.ResponseWriter, r *http.Request) {
	hero, err := s.session.Hero()
	if err != nil {
		writeSessionError(w, err)
		return
	}
	derived, err := s.session.Derived()
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"hero":    hero,
		"derived": derived,
		"bmi":     s.session.BMI(),
	})
}

func (s *Server) handleOnboard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Race domain.Race `json:"race"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	hero, err := s.session.Onboard(req.Race)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, hero)
}

func (s *Server) handleStage(w http.ResponseWriter, r *http.Request) {
	info, monster, env, err := s.session.StageNow()
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"stage":       info,
		"monster":     monster,
		"environment": env,
	})
}

func (s *Server) handleTarget(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"daily_target": s.session.DailyTarget(),
		"profile":      s.session.Profile(),
	})
}

func (s *Server) handleAdvanceDay(w http.ResponseWriter, r *http.Request) {
	report, err := s.session.CheckAndAdvanceDay()
	if err != nil {
		writeSessionError(w, err)
		return
	}
	if report == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"settled": false,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"settled": true,
		"report":  report,
	})
}

// ─── Logs ────────────────────────────────────────────────────────────────────

func (s *Server) handleListLogs(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	logs, err := s.session.Logs(date)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"date": date,
		"logs": logs,
	})
}

func (s *Server) handleLogFood(w http.ResponseWriter, r *http.Request) {
	var in session.FoodInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	entry, err := s.session.LogFood(in)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleLogPreset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	entry, err := s.session.LogPreset(req.Name)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleLogExercise(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string  `json:"name"`
		Icon        string  `json:"icon"`
		Category    string  `json:"category"`
		DurationMin float64 `json:"duration_min"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	entry, err := s.session.LogExercise(req.Name, req.Icon, req.Category, req.DurationMin)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleLogWater(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AmountML float64 `json:"amount_ml"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	entry, err := s.session.LogWater(req.AmountML)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleDeleteLog(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.session.DeleteLog(id); err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

// ─── Quests ──────────────────────────────────────────────────────────────────

func (s *Server) handleDailyQuests(w http.ResponseWriter, r *http.Request) {
	quests, err := s.session.DailyQuests()
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"quests": quests})
}

func (s *Server) handleActiveQuests(w http.ResponseWriter, r *http.Request) {
	quests, err := s.session.ActiveQuests()
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"quests": quests})
}

func (s *Server) handleAcceptQuest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Slug string `json:"slug"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	q, err := s.session.AcceptQuest(req.Slug)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, q)
}

func (s *Server) handleClaimQuest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	gold, err := s.session.ClaimQuest(id)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"quest_id": id,
		"gold":     gold,
	})
}

func (s *Server) handleAbandonQuest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.session.AbandonQuest(id); err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"abandoned": id})
}

// ─── Skills and progression ──────────────────────────────────────────────────

func (s *Server) handleSkillTree(w http.ResponseWriter, r *http.Request) {
	nodes, levels, err := s.session.SkillTree()
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"nodes":  nodes,
		"levels": levels,
	})
}

func (s *Server) handleUpgradeSkill(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.session.UpgradeSkill(id); err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"upgraded": id})
}

func (s *Server) handleArmSkill(w http.ResponseWriter, r *http.Request) {
	var req struct {
		NodeID string `json:"node_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.session.ArmSkill(req.NodeID); err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"armed": req.NodeID})
}

func (s *Server) handleRebirth(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Race domain.Race `json:"race"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.session.Rebirth(req.Race); err != nil {
		writeSessionError(w, err)
		return
	}
	hero, err := s.session.Hero()
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hero)
}

// ─── Achievements, shop, gold ────────────────────────────────────────────────

func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	views, err := s.session.Achievements()
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"achievements": views})
}

func (s *Server) handleEquipAchievement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req struct {
		Equipped bool `json:"equipped"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.session.EquipAchievement(id, req.Equipped); err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":       id,
		"equipped": req.Equipped,
	})
}

func (s *Server) handleBuyItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ItemID string `json:"item_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.session.BuyItem(req.ItemID); err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"bought": req.ItemID})
}

func (s *Server) handleGoldHistory(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	entries, err := s.session.GoldHistory(limit)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

// writeSessionError maps domain errors to HTTP status codes.
func writeSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrProfileMissing),
		errors.Is(err, domain.ErrLogNotFound),
		errors.Is(err, domain.ErrQuestUnknown),
		errors.Is(err, domain.ErrSkillUnknown):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrMissingName),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrUnknownRace):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInsufficientGold),
		errors.Is(err, domain.ErrQuestNotAccepted),
		errors.Is(err, domain.ErrQuestNotCompleted),
		errors.Is(err, domain.ErrQuestClaimed),
		errors.Is(err, domain.ErrQuestSlotsFull),
		errors.Is(err, domain.ErrAchievementLocked),
		errors.Is(err, domain.ErrRebirthPotionRequired),
		errors.Is(err, domain.ErrItemUnavailable):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// corsMiddleware adds CORS headers for local development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
