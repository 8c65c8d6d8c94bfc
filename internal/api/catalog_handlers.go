package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/terra-clan/examkit/internal/images"
)

// Catalog handlers: signs, markups and their images

func (s *Server) handleListSigns(w http.ResponseWriter, r *http.Request) {
	categories, err := s.content.Signs(r.Context())
	if err != nil {
		respondLoadError(w, r, "signs", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"categories": categories,
		"total":      len(categories),
	})
}

func (s *Server) handleListMarkups(w http.ResponseWriter, r *http.Request) {
	categories, err := s.content.Markups(r.Context())
	if err != nil {
		respondLoadError(w, r, "markups", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"categories": categories,
		"total":      len(categories),
	})
}

func (s *Server) handleGetImage(w http.ResponseWriter, r *http.Request) {
	imagePath := r.URL.Query().Get("path")
	if imagePath == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "path is required")
		return
	}

	data, ok := s.images.Resolve(r.Context(), imagePath)
	if !ok {
		respondError(w, http.StatusNotFound, "image_absent", "image not available")
		return
	}

	etag := fmt.Sprintf("%q", images.Digest(data))
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if match := r.Header.Get("If-None-Match"); match != "" && strings.Contains(match, etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", http.DetectContentType(data))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) handleGetImageInfo(w http.ResponseWriter, r *http.Request) {
	if s.decoder == nil {
		respondError(w, http.StatusNotImplemented, "unsupported", "image decoding is not available")
		return
	}

	imagePath := r.URL.Query().Get("path")
	if imagePath == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "path is required")
		return
	}

	data, ok := s.images.Resolve(r.Context(), imagePath)
	if !ok {
		respondError(w, http.StatusNotFound, "image_absent", "image not available")
		return
	}

	info, err := s.decoder.DecodeConfig(data)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "invalid_image", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, info)
}
