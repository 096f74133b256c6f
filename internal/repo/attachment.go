package repo

import (
	"NoteKeeper/internal/model"
	"context"

	"gorm.io/gorm"
)

// AttachmentRepository — контракт чтения вложений.
// Создание и замена вложений идут только через NoteRepository,
// в одной транзакции с заметкой.
type AttachmentRepository interface {
	// GetByID возвращает вложение, если оно принадлежит заметке пользователя.
	GetByID(ctx context.Context, userID int64, id string) (*model.Attachment, error)
}

type attachmentRepo struct {
	db *gorm.DB
}

// NewAttachmentRepository создаёт реализацию репозитория для Attachment.
func NewAttachmentRepository(db *gorm.DB) AttachmentRepository {
	return &attachmentRepo{db: db}
}

func (r *attachmentRepo) GetByID(ctx context.Context, userID int64, id string) (*model.Attachment, error) {
	var a model.Attachment
	err := r.db.WithContext(ctx).
		Joins("JOIN notes ON notes.id = attachments.note_id").
		Where("attachments.id = ? AND notes.author_id = ?", id, userID).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}
