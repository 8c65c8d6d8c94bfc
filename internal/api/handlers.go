package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/terra-clan/examkit/internal/content"
	"github.com/terra-clan/examkit/internal/models"
)

// Response helpers

type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *apiError   `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: false,
		Error: &apiError{
			Code:    code,
			Message: message,
		},
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// respondLoadError maps content errors onto HTTP statuses
func respondLoadError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, content.ErrResourceNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, content.ErrDecode):
		slog.Error("invalid content", "op", op, "error", err)
		respondError(w, http.StatusInternalServerError, "invalid_data", "content is malformed")
	default:
		slog.Error("failed to load content",
			"op", op,
			"error", err,
			"client", KeyPrefixFromContext(r.Context()),
		)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load content")
	}
}

// categoryParam parses the {category} URL parameter, writing a 400 when it is unknown
func categoryParam(w http.ResponseWriter, r *http.Request) (models.Category, bool) {
	raw := chi.URLParam(r, "category")
	category, ok := models.ParseCategory(raw)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid_category", "unknown category: "+raw)
		return "", false
	}
	return category, true
}

// Health handlers

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.content.Store().Ping(r.Context()); err != nil {
		slog.Warn("asset store not ready", "error", err)
		respondError(w, http.StatusServiceUnavailable, "not_ready", "service not ready")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}

// Question handlers

type categoryInfo struct {
	ID     models.Category `json:"id"`
	Folder string          `json:"folder"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories := models.Categories()
	result := make([]categoryInfo, 0, len(categories))
	for _, c := range categories {
		result = append(result, categoryInfo{ID: c, Folder: c.Folder()})
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"categories": result,
		"total":      len(result),
	})
}

func (s *Server) handleListTickets(w http.ResponseWriter, r *http.Request) {
	category, ok := categoryParam(w, r)
	if !ok {
		return
	}

	tickets, err := s.content.Tickets(r.Context(), category)
	if err != nil {
		respondLoadError(w, r, "tickets", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"tickets": tickets,
		"total":   len(tickets),
	})
}

func (s *Server) handleGetTicket(w http.ResponseWriter, r *http.Request) {
	category, ok := categoryParam(w, r)
	if !ok {
		return
	}
	number := chi.URLParam(r, "number")

	tickets, err := s.content.Tickets(r.Context(), category)
	if err != nil {
		respondLoadError(w, r, "tickets", err)
		return
	}

	// "12" matches "Билет 12" by its number
	want := content.ExtractNumber(number)
	for _, t := range tickets {
		if t.Number == number || (want != 0 && content.ExtractNumber(t.Number) == want) {
			respondJSON(w, http.StatusOK, t)
			return
		}
	}

	respondError(w, http.StatusNotFound, "not_found", "ticket not found")
}

func (s *Server) handleListTopics(w http.ResponseWriter, r *http.Request) {
	category, ok := categoryParam(w, r)
	if !ok {
		return
	}

	topics, err := s.content.Topics(r.Context(), category)
	if err != nil {
		respondLoadError(w, r, "topics", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"topics": topics,
		"total":  len(topics),
	})
}

func (s *Server) handleListQuestions(w http.ResponseWriter, r *http.Request) {
	category, ok := categoryParam(w, r)
	if !ok {
		return
	}

	questions, err := s.content.AllQuestions(r.Context(), category)
	if err != nil {
		respondLoadError(w, r, "questions", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"questions": questions,
		"total":     len(questions),
	})
}
