package session

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kaiyuanli/playroom/backend/internal/model/session"
	sessionservice "github.com/kaiyuanli/playroom/backend/internal/service/session"
)

// Handler 会话服务的HTTP处理器
type Handler struct {
	svc *sessionservice.Service
}

// New 创建会话处理器
func New(svc *sessionservice.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes 注册会话相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/sessions", h.handleCreate)
	r.Get("/sessions/{sessionID}", h.handleGet)
}

// handleCreate 创建会话（同一 player/game 对幂等）
func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload session.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if payload.PlayerID == "" {
		respondError(w, http.StatusBadRequest, "playerId is required")
		return
	}
	if payload.GameID == "" {
		respondError(w, http.StatusBadRequest, "gameId is required")
		return
	}

	resp, err := h.svc.Create(r.Context(), payload)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	respondJSON(w, http.StatusCreated, resp)
}

// handleGet 按ID查询会话
func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	resp, fromCache, err := h.svc.Get(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, sessionservice.ErrSessionNotFound) {
			respondError(w, http.StatusNotFound, "session not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to load session")
		return
	}

	if fromCache {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	respondJSON(w, http.StatusOK, resp)
}

// respondJSON 发送JSON响应
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// respondError 发送错误响应
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
