package service

import (
	"NoteKeeper/internal/model"
	"NoteKeeper/internal/repo"
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var validate = validator.New()

// NoteInput — проверенный вход «сохранить заметку».
// Пустой заголовок допустим: slug в этом случае строится от плейсхолдера.
type NoteInput struct {
	Title   string `validate:"max=100"`
	Content string
	Color   string `validate:"omitempty,len=7,hexcolor"`
	Tags    []string
	Files   []repo.FileUpload
}

// человекочитаемые сообщения для полей NoteInput
var noteFieldMessages = map[string]string{
	"Title": "must be at most 100 characters",
	"Color": "must be a #RRGGBB hex color",
}

func (in *NoteInput) validateInput() error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		msg, ok := noteFieldMessages[fe.Field()]
		if !ok {
			msg = "invalid value"
		}
		switch fe.Field() {
		case "Title":
			fields["title"] = msg
		case "Color":
			fields["color"] = msg
		}
	}
	return &ValidationError{Fields: fields}
}

// NoteService — оркестрация записи заметок: валидация, дефолты,
// перевод ошибок хранилища. Сама реконсиляция меток и вложений живёт
// в репозитории, внутри транзакции.
type NoteService struct {
	notes       repo.NoteRepository
	attachments repo.AttachmentRepository
	logger      *zap.SugaredLogger
}

func NewNoteService(notes repo.NoteRepository, attachments repo.AttachmentRepository, logger *zap.SugaredLogger) *NoteService {
	return &NoteService{notes: notes, attachments: attachments, logger: logger}
}

func (s *NoteService) Create(ctx context.Context, userID int64, in NoteInput) (*model.Note, error) {
	if err := in.validateInput(); err != nil {
		return nil, err
	}
	color := in.Color
	if color == "" {
		color = model.DefaultColor
	}

	note := &model.Note{
		AuthorID: userID,
		Title:    in.Title,
		Content:  in.Content,
		Color:    color,
	}
	created, err := s.notes.Create(ctx, note, in.Tags, in.Files)
	if err != nil {
		s.logger.Errorw("note create failed", "user_id", userID, "error", err)
		return nil, mapRepoErr(err)
	}
	return created, nil
}

func (s *NoteService) Update(ctx context.Context, userID int64, slug string, in NoteInput) (*model.Note, error) {
	if err := in.validateInput(); err != nil {
		return nil, err
	}
	color := in.Color
	if color == "" {
		color = model.DefaultColor
	}

	upd := repo.NoteUpdate{Title: in.Title, Content: in.Content, Color: color}
	updated, err := s.notes.Update(ctx, userID, slug, upd, in.Tags, in.Files)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return updated, nil
}

func (s *NoteService) Get(ctx context.Context, userID int64, slug string) (*model.Note, error) {
	note, err := s.notes.GetBySlug(ctx, userID, slug)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return note, nil
}

func (s *NoteService) List(ctx context.Context, userID int64, filter repo.NoteFilter) ([]model.Note, error) {
	notes, err := s.notes.List(ctx, userID, filter)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return notes, nil
}

func (s *NoteService) ToggleArchived(ctx context.Context, userID int64, slug string) (*model.Note, error) {
	note, err := s.notes.ToggleArchived(ctx, userID, slug)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return note, nil
}

func (s *NoteService) TogglePinned(ctx context.Context, userID int64, slug string) (*model.Note, error) {
	note, err := s.notes.TogglePinned(ctx, userID, slug)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return note, nil
}

func (s *NoteService) Delete(ctx context.Context, userID int64, slug string) error {
	return mapRepoErr(s.notes.Delete(ctx, userID, slug))
}

// GetAttachment отдаёт вложение с проверкой владельца через заметку.
func (s *NoteService) GetAttachment(ctx context.Context, userID int64, id string) (*model.Attachment, error) {
	a, err := s.attachments.GetByID(ctx, userID, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return a, nil
}
