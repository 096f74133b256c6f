package handlers

import (
	"NoteKeeper/internal/config"
	"NoteKeeper/internal/middleware"
	"NoteKeeper/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	userService *service.UserService,
	profileService *service.ProfileService,
	noteService *service.NoteService,
	tagService *service.TagService,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(config.AuthSecret))

	// Handlers
	userHandler := NewUserHandler(userService, profileService, logger, config)
	noteHandler := NewNoteHandler(noteService, logger, config)
	tagHandler := NewTagHandler(tagService, logger)

	// User routes
	r.Post("/api/user/register", userHandler.Register)
	r.Post("/api/user/login", userHandler.Login)
	r.Get("/api/user/profile", userHandler.GetProfile)
	r.Put("/api/user/profile", userHandler.UpdateProfile)

	// Note routes
	r.Route("/api/notes", func(r chi.Router) {
		r.Get("/", noteHandler.List)
		r.Post("/", noteHandler.Create)
		r.Route("/{slug}", func(r chi.Router) {
			r.Get("/", noteHandler.Get)
			r.Put("/", noteHandler.Update)
			r.Delete("/", noteHandler.Delete)
			r.Put("/archive", noteHandler.ToggleArchived)
			r.Put("/pin", noteHandler.TogglePinned)
		})
	})

	// Tag routes
	r.Route("/api/tags", func(r chi.Router) {
		r.Get("/", tagHandler.List)
		r.Route("/{slug}", func(r chi.Router) {
			r.Get("/", tagHandler.Get)
			r.Put("/", tagHandler.Rename)
			r.Delete("/", tagHandler.Delete)
		})
	})

	// Attachment download
	r.Get("/api/attachments/{id}", noteHandler.DownloadAttachment)

	return &Handler{Router: r}
}
