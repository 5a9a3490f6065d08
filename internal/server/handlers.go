package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/armtrack/armtrack/internal/analysis"
	"github.com/armtrack/armtrack/internal/models"
	"github.com/armtrack/armtrack/internal/storage"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type createUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Username == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "username is required"})
		return
	}

	user, err := s.db.CreateUser(r.Context(), req.Username, req.Email)
	if errors.Is(err, storage.ErrUsernameTaken) {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "username already taken"})
		return
	}
	if err != nil {
		s.log.Error("create user error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseID(w, r)
	if !ok {
		return
	}
	user, err := s.db.GetUser(r.Context(), userID)
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleUserProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseID(w, r)
	if !ok {
		return
	}
	progress, err := s.db.GetUserProgress(r.Context(), userID)
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

func (s *Server) handleListUserAnalyses(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseID(w, r)
	if !ok {
		return
	}
	limit := parseLimit(r, 50)
	list, err := s.db.ListUserAnalyses(r.Context(), userID, limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if list == nil {
		list = []*models.AnalysisRecord{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleUserRank(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseID(w, r)
	if !ok {
		return
	}
	rank, total, err := s.db.UserRank(r.Context(), userID)
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user_id":      userID,
		"rank":         rank,
		"total_ranked": total,
	})
}

// createAnalysisRequest is a landmark-frame stream submission. Each frame is
// a flattened 33-point keypoint set (132 values).
type createAnalysisRequest struct {
	UserID    string      `json:"user_id"`
	VideoName string      `json:"video_name"`
	FPS       float64     `json:"fps"`
	Frames    [][]float64 `json:"frames"`
}

func (req *createAnalysisRequest) validate(maxFrames int) error {
	if len(req.Frames) == 0 {
		return fmt.Errorf("frames are required")
	}
	if len(req.Frames) > maxFrames {
		return fmt.Errorf("too many frames: %d (max %d)", len(req.Frames), maxFrames)
	}
	if req.FPS < 0 {
		return fmt.Errorf("fps must be non-negative")
	}
	return nil
}

// analysisResponse is a stored analysis plus the owning username.
type analysisResponse struct {
	*models.AnalysisRecord
	Username string `json:"username"`
}

func (s *Server) handleCreateAnalysis(w http.ResponseWriter, r *http.Request) {
	var req createAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if err := req.validate(s.cfg.MaxFrames); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	username := req.UserID
	if username == "" {
		username = "anonymous"
	}
	user, err := s.db.GetOrCreateUser(r.Context(), username)
	if err != nil {
		s.log.Error("resolve user error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	fps := req.FPS
	if fps == 0 {
		fps = s.cfg.DefaultFPS
	}

	result, err := s.analyzer.Run(r.Context(), &analysis.Request{
		UserID:    username,
		VideoName: req.VideoName,
		FPS:       fps,
		Frames:    req.Frames,
	})
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	rec := &models.AnalysisRecord{
		ID:              uuid.MustParse(result.AnalysisID),
		UserID:          user.ID,
		VideoName:       result.VideoName,
		CreatedAt:       result.CreatedAt,
		FPS:             result.FPS,
		DurationSec:     result.Duration,
		TotalFrames:     result.TotalFrames,
		ProcessedFrames: result.ProcessedFrames,
		Summary:         result.Summary,
	}
	if s.cfg.StoreFrames {
		rec.Frames = result.Frames
	}
	if err := s.db.SaveAnalysis(r.Context(), rec); err != nil {
		s.log.Error("save analysis error", "error", err, "analysis_id", rec.ID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	// The response always carries the per-frame results, stored or not.
	rec.Frames = result.Frames
	writeJSON(w, http.StatusCreated, analysisResponse{AnalysisRecord: rec, Username: user.Username})
}

func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	rec, err := s.db.GetAnalysis(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "analysis not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, 10)
	entries, err := s.db.Leaderboard(r.Context(), limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if entries == nil {
		entries = []storage.LeaderboardEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleGlobalStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.db.GetGlobalStats(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid ID"})
		return uuid.Nil, false
	}
	return id, true
}

func parseLimit(r *http.Request, fallback int) int {
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			return n
		}
	}
	return fallback
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
