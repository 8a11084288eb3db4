// Package server provides the HTTP handlers of the word service.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/at-ishikawa/wordpick/internal/history"
	"github.com/at-ishikawa/wordpick/internal/wordsource"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 1000
)

// Drawer is implemented by *wordsource.Source.
type Drawer interface {
	Draw(ctx context.Context) wordsource.Draw
}

type WordResponse struct {
	Word   string `json:"word"`
	Origin string `json:"origin,omitempty"`
	Reason string `json:"reason,omitempty"`
}

type HistoryResponse struct {
	Draws   []history.Draw  `json:"draws"`
	Summary history.Summary `json:"summary"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type WordHandler struct {
	drawer Drawer
	// history is nil when draws are not recorded.
	history history.Repository
}

func NewWordHandler(drawer Drawer, repository history.Repository) *WordHandler {
	return &WordHandler{
		drawer:  drawer,
		history: repository,
	}
}

// GetWord always answers 200 with a word. With verbose=true the origin and the fallback reason
// are included.
func (h *WordHandler) GetWord(w http.ResponseWriter, r *http.Request) {
	draw := h.drawer.Draw(r.Context())
	response := WordResponse{Word: draw.Word}
	if verbose, _ := strconv.ParseBool(r.URL.Query().Get("verbose")); verbose {
		response.Origin = draw.Origin.String()
		if draw.Err != nil {
			response.Reason = draw.Err.Error()
		}
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *WordHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "history is disabled"})
		return
	}

	limit := defaultHistoryLimit
	if value := r.URL.Query().Get("limit"); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed < 1 || parsed > maxHistoryLimit {
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Error: fmt.Sprintf("limit must be between 1 and %d", maxHistoryLimit),
			})
			return
		}
		limit = parsed
	}

	draws, err := h.history.FindRecent(r.Context(), limit)
	if err != nil {
		slog.Default().Error("failed to find recent draws", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to load history"})
		return
	}
	if draws == nil {
		draws = []history.Draw{}
	}
	writeJSON(w, http.StatusOK, HistoryResponse{
		Draws:   draws,
		Summary: history.Summarize(draws),
	})
}

func (h *WordHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ok")); err != nil {
		slog.Default().Debug("failed to write a response", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Default().Debug("failed to write a response", "error", err)
	}
}
