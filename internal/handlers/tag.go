package handlers

import (
	"NoteKeeper/internal/service"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// TagHandler обрабатывает операции над метками.
type TagHandler struct {
	TagService *service.TagService
	Logger     *zap.SugaredLogger
}

func NewTagHandler(tagService *service.TagService, logger *zap.SugaredLogger) *TagHandler {
	return &TagHandler{TagService: tagService, Logger: logger}
}

// List все метки
func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}
	tags, err := h.TagService.List(r.Context())
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	dtos := make([]tagDTO, 0, len(tags))
	for _, t := range tags {
		dtos = append(dtos, tagDTO{ID: t.ID, Name: t.Name, Slug: t.Slug})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// Get метка по slug
func (h *TagHandler) Get(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}
	tag, err := h.TagService.Get(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, tagDTO{ID: tag.ID, Name: tag.Name, Slug: tag.Slug})
}

// Rename переименование; slug не меняется
func (h *TagHandler) Rename(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid request"})
		return
	}

	tag, err := h.TagService.Rename(r.Context(), chi.URLParam(r, "slug"), req.Name)
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, tagDTO{ID: tag.ID, Name: tag.Name, Slug: tag.Slug})
}

// Delete удаляет метку и снимает её со всех заметок
func (h *TagHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}
	if err := h.TagService.Delete(r.Context(), chi.URLParam(r, "slug")); err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
