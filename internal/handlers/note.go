package handlers

import (
	"NoteKeeper/internal/config"
	"NoteKeeper/internal/model"
	"NoteKeeper/internal/repo"
	"NoteKeeper/internal/service"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// NoteHandler обрабатывает CRUD заметок, переключатели и вложения.
type NoteHandler struct {
	NoteService *service.NoteService
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

func NewNoteHandler(noteService *service.NoteService, logger *zap.SugaredLogger, cfg *config.Config) *NoteHandler {
	return &NoteHandler{NoteService: noteService, Logger: logger, Config: cfg}
}

type tagDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type attachmentDTO struct {
	ID         string `json:"id"`
	FileName   string `json:"file_name"`
	File       string `json:"file"`
	UploadedAt string `json:"uploaded_at"`
}

type noteDTO struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Content     string          `json:"content"`
	Slug        string          `json:"slug"`
	Color       string          `json:"color"`
	IsArchived  bool            `json:"is_archived"`
	IsPinned    bool            `json:"is_pinned"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
	Author      string          `json:"author"`
	Tags        []tagDTO        `json:"tags"`
	Attachments []attachmentDTO `json:"attachments"`
}

func newNoteDTO(n *model.Note) noteDTO {
	dto := noteDTO{
		ID:          n.ID,
		Title:       n.Title,
		Content:     n.Content,
		Slug:        n.Slug,
		Color:       n.Color,
		IsArchived:  n.IsArchived,
		IsPinned:    n.IsPinned,
		CreatedAt:   n.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   n.UpdatedAt.UTC().Format(time.RFC3339),
		Tags:        make([]tagDTO, 0, len(n.Tags)),
		Attachments: make([]attachmentDTO, 0, len(n.Attachments)),
	}
	if n.Author != nil {
		dto.Author = n.Author.Login
	}
	for _, t := range n.Tags {
		dto.Tags = append(dto.Tags, tagDTO{ID: t.ID, Name: t.Name, Slug: t.Slug})
	}
	for _, a := range n.Attachments {
		dto.Attachments = append(dto.Attachments, attachmentDTO{
			ID:         a.ID,
			FileName:   a.FileName,
			File:       "/api/attachments/" + a.ID,
			UploadedAt: a.UploadedAt.UTC().Format(time.RFC3339),
		})
	}
	return dto
}

// тело create/update в формате JSON; метки принимаем и как ["name"],
// и как [{"name": "..."}] — второй вариант шлёт старый фронтенд
type noteRequest struct {
	Title   string          `json:"title"`
	Content string          `json:"content"`
	Color   string          `json:"color"`
	Tags    json.RawMessage `json:"tags"`
}

func parseTagNames(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var plain []string
	if err := json.Unmarshal(raw, &plain); err == nil {
		return plain, nil
	}
	var objs []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &objs); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(objs))
	for _, o := range objs {
		names = append(names, o.Name)
	}
	return names, nil
}

// parseNoteInput разбирает payload заметки: multipart/form-data, когда есть
// файлы, иначе обычный JSON.
func (h *NoteHandler) parseNoteInput(w http.ResponseWriter, r *http.Request) (service.NoteInput, bool) {
	var in service.NoteInput

	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "multipart/form-data") {
		var req noteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.Logger.Warnw("note: invalid request body", "error", err)
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid request"})
			return in, false
		}
		tags, err := parseTagNames(req.Tags)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"errors": map[string]string{"tags": "invalid tag list"}})
			return in, false
		}
		in.Title = req.Title
		in.Content = req.Content
		in.Color = req.Color
		in.Tags = tags
		return in, true
	}

	// Лимит общего тела запроса
	maxAttach := int64(h.Config.AttachMaxSizeMB) * 1024 * 1024
	r.Body = http.MaxBytesReader(w, r.Body, maxAttach+1*1024*1024)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		h.Logger.Warnw("note: invalid multipart form", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid multipart form"})
		return in, false
	}

	in.Title = r.FormValue("title")
	in.Content = r.FormValue("content")
	in.Color = r.FormValue("color")

	// метки: либо повторяющееся поле tags, либо одно поле с JSON-массивом
	tags := r.MultipartForm.Value["tags"]
	if len(tags) == 1 && strings.HasPrefix(strings.TrimSpace(tags[0]), "[") {
		parsed, err := parseTagNames(json.RawMessage(tags[0]))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"errors": map[string]string{"tags": "invalid tag list"}})
			return in, false
		}
		in.Tags = parsed
	} else {
		in.Tags = tags
	}

	for _, fh := range r.MultipartForm.File["attachments"] {
		if fh.Size > maxAttach {
			h.Logger.Warnw("note: attachment too large", "file", fh.Filename, "size", fh.Size, "limit", maxAttach)
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"detail": "attachment too large"})
			return in, false
		}
		f, err := fh.Open()
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "failed to read attachment"})
			return in, false
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "failed to read attachment"})
			return in, false
		}
		in.Files = append(in.Files, repo.FileUpload{
			FileName:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	return in, true
}

// List список заметок пользователя с фильтрами
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	filter := repo.NoteFilter{
		TagName:  q.Get("tags__name"),
		Search:   q.Get("search"),
		Ordering: q.Get("ordering"),
	}
	if v := q.Get("archived"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			filter.Archived = &b
		}
	}
	if v := q.Get("pinned"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			filter.Pinned = &b
		}
	}

	notes, err := h.NoteService.List(r.Context(), userID, filter)
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	dtos := make([]noteDTO, 0, len(notes))
	for i := range notes {
		dtos = append(dtos, newNoteDTO(&notes[i]))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// Create создание заметки
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	in, ok := h.parseNoteInput(w, r)
	if !ok {
		return
	}

	note, err := h.NoteService.Create(r.Context(), userID, in)
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, newNoteDTO(note))
}

// Get одна заметка по slug
func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	note, err := h.NoteService.Get(r.Context(), userID, chi.URLParam(r, "slug"))
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, newNoteDTO(note))
}

// Update обновление заметки; slug остаётся прежним
func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	in, ok := h.parseNoteInput(w, r)
	if !ok {
		return
	}

	note, err := h.NoteService.Update(r.Context(), userID, chi.URLParam(r, "slug"), in)
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, newNoteDTO(note))
}

// Delete удаление заметки вместе с вложениями
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	if err := h.NoteService.Delete(r.Context(), userID, chi.URLParam(r, "slug")); err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ToggleArchived переключает флаг архива
func (h *NoteHandler) ToggleArchived(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	note, err := h.NoteService.ToggleArchived(r.Context(), userID, chi.URLParam(r, "slug"))
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, newNoteDTO(note))
}

// TogglePinned переключает закрепление
func (h *NoteHandler) TogglePinned(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	note, err := h.NoteService.TogglePinned(r.Context(), userID, chi.URLParam(r, "slug"))
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, newNoteDTO(note))
}

// DownloadAttachment отдаёт содержимое вложения
func (h *NoteHandler) DownloadAttachment(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	a, err := h.NoteService.GetAttachment(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}

	ct := a.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	w.Header().Set("Content-Type", ct)
	// имя файла пришло от пользователя, кавычки и не-ASCII надо экранировать
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": a.FileName}))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(a.Data)
}
