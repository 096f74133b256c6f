package repo

import (
	"NoteKeeper/internal/model"
	"NoteKeeper/internal/slugify"
	"context"
	"strings"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FileUpload — принятый от клиента файл для вложения.
type FileUpload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// NoteUpdate — изменяемые поля заметки. Slug не входит намеренно:
// он присваивается один раз при создании.
type NoteUpdate struct {
	Title   string
	Content string
	Color   string
}

// NoteFilter — параметры выборки списка заметок.
type NoteFilter struct {
	TagName  string
	Archived *bool
	Pinned   *bool
	Search   string
	Ordering string // created | updated | title, префикс "-" — по убыванию
}

// NoteRepository — контракт доступа к заметкам.
// Все методы работают в пределах одного владельца: чужая заметка
// неотличима от несуществующей.
type NoteRepository interface {
	// Create сохраняет заметку: присваивает slug, создаёт недостающие метки,
	// привязывает их и вложения — всё в одной транзакции.
	Create(ctx context.Context, note *model.Note, tagNames []string, files []FileUpload) (*model.Note, error)

	// Update меняет поля заметки и приводит её метки и вложения ровно
	// к переданным наборам, в одной транзакции. Slug не пересчитывается.
	Update(ctx context.Context, authorID int64, slug string, upd NoteUpdate, tagNames []string, files []FileUpload) (*model.Note, error)

	GetBySlug(ctx context.Context, authorID int64, slug string) (*model.Note, error)
	List(ctx context.Context, authorID int64, filter NoteFilter) ([]model.Note, error)

	ToggleArchived(ctx context.Context, authorID int64, slug string) (*model.Note, error)
	TogglePinned(ctx context.Context, authorID int64, slug string) (*model.Note, error)

	Delete(ctx context.Context, authorID int64, slug string) error
}

type noteRepo struct {
	db *gorm.DB
}

// NewNoteRepository создаёт реализацию репозитория для Note.
func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &noteRepo{db: db}
}

// retryAttempts — сколько раз повторяем транзакцию создания, если коммит
// упёрся в уникальное ограничение (две конкурентные вставки с одинаковым
// заголовком могли подобрать один slug до коммита). Ограничение в БД —
// финальный арбитр, подбор суффикса — лишь предварительная проверка.
const retryAttempts = 3

func (r *noteRepo) Create(ctx context.Context, note *model.Note, tagNames []string, files []FileUpload) (*model.Note, error) {
	err := retry.Do(
		func() error {
			note.ID = 0
			note.Slug = ""
			return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
				s, err := slugify.Assign(note.Title, "note", noteSlugTaken(tx))
				if err != nil {
					return err
				}
				note.Slug = s
				if err := tx.Omit("Tags", "Attachments", "Author").Create(note).Error; err != nil {
					return err
				}
				if err := reconcileTags(tx, note, tagNames); err != nil {
					return err
				}
				return reconcileAttachments(tx, note, files)
			})
		},
		retry.RetryIf(IsUniqueViolation),
		retry.Attempts(retryAttempts),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, err
	}
	return r.GetBySlug(ctx, note.AuthorID, note.Slug)
}

func (r *noteRepo) Update(ctx context.Context, authorID int64, slug string, upd NoteUpdate, tagNames []string, files []FileUpload) (*model.Note, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n model.Note
		if err := tx.Where("author_id = ? AND slug = ?", authorID, slug).First(&n).Error; err != nil {
			return err
		}
		// map, а не структура: пустые значения тоже должны записаться
		updates := map[string]any{
			"title":   upd.Title,
			"content": upd.Content,
			"color":   upd.Color,
		}
		if err := tx.Model(&n).Updates(updates).Error; err != nil {
			return err
		}
		if err := reconcileTags(tx, &n, tagNames); err != nil {
			return err
		}
		return reconcileAttachments(tx, &n, files)
	})
	if err != nil {
		return nil, err
	}
	return r.GetBySlug(ctx, authorID, slug)
}

// reconcileTags приводит набор меток заметки ровно к запрошенному:
// недостающие метки создаются, лишние связи снимаются. Сами метки при этом
// не удаляются никогда — пустой список лишь очищает привязки.
func reconcileTags(tx *gorm.DB, note *model.Note, names []string) error {
	resolved := make([]model.Tag, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		t, err := findOrCreateTag(tx, name)
		if err != nil {
			return err
		}
		resolved = append(resolved, *t)
	}

	assoc := tx.Model(note).Association("Tags")
	if len(resolved) == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(&resolved)
}

// reconcileAttachments заменяет вложения заметки целиком: прежние строки
// удаляются, присланные файлы вставляются заново. Пустой список при
// обновлении означает «убрать все вложения».
func reconcileAttachments(tx *gorm.DB, note *model.Note, files []FileUpload) error {
	if err := tx.Where("note_id = ?", note.ID).Delete(&model.Attachment{}).Error; err != nil {
		return err
	}
	for _, f := range files {
		a := model.Attachment{
			ID:          uuid.NewString(),
			NoteID:      note.ID,
			FileName:    f.FileName,
			ContentType: f.ContentType,
			Data:        f.Data,
		}
		if err := tx.Create(&a).Error; err != nil {
			return err
		}
	}
	return nil
}

func noteSlugTaken(tx *gorm.DB) slugify.ExistsFunc {
	return func(candidate string) (bool, error) {
		var n int64
		if err := tx.Model(&model.Note{}).Where("slug = ?", candidate).Count(&n).Error; err != nil {
			return false, err
		}
		return n > 0, nil
	}
}

func (r *noteRepo) GetBySlug(ctx context.Context, authorID int64, slug string) (*model.Note, error) {
	var n model.Note
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("Attachments").
		Preload("Author").
		Where("author_id = ? AND slug = ?", authorID, slug).
		First(&n).Error
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// допустимые значения ordering; всё остальное откатывается на умолчание
var noteOrderings = map[string]string{
	"created":  "notes.created_at ASC",
	"-created": "notes.created_at DESC",
	"updated":  "notes.updated_at ASC",
	"-updated": "notes.updated_at DESC",
	"title":    "LOWER(notes.title) ASC",
	"-title":   "LOWER(notes.title) DESC",
}

func (r *noteRepo) List(ctx context.Context, authorID int64, filter NoteFilter) ([]model.Note, error) {
	q := r.db.WithContext(ctx).Model(&model.Note{}).
		Preload("Tags").
		Preload("Attachments").
		Preload("Author").
		Where("notes.author_id = ?", authorID)

	if filter.TagName != "" {
		q = q.Joins("JOIN note_tags ON note_tags.note_id = notes.id").
			Joins("JOIN tags ON tags.id = note_tags.tag_id").
			Where("tags.name = ?", filter.TagName)
	}
	if filter.Archived != nil {
		q = q.Where("notes.is_archived = ?", *filter.Archived)
	}
	if filter.Pinned != nil {
		q = q.Where("notes.is_pinned = ?", *filter.Pinned)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where(
			r.db.Where("LOWER(notes.title) LIKE ?", pattern).
				Or("LOWER(notes.content) LIKE ?", pattern),
		)
	}

	order, ok := noteOrderings[filter.Ordering]
	if !ok {
		order = "notes.created_at DESC"
	}
	// закреплённые всегда сверху
	q = q.Order("notes.is_pinned DESC").Order(order)

	var notes []model.Note
	if err := q.Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *noteRepo) ToggleArchived(ctx context.Context, authorID int64, slug string) (*model.Note, error) {
	return r.toggle(ctx, authorID, slug, "is_archived", func(n *model.Note) bool { return !n.IsArchived })
}

func (r *noteRepo) TogglePinned(ctx context.Context, authorID int64, slug string) (*model.Note, error) {
	return r.toggle(ctx, authorID, slug, "is_pinned", func(n *model.Note) bool { return !n.IsPinned })
}

// toggle — чтение-изменение-запись одного булева поля, без реконсиляции.
func (r *noteRepo) toggle(ctx context.Context, authorID int64, slug, column string, next func(*model.Note) bool) (*model.Note, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n model.Note
		if err := tx.Where("author_id = ? AND slug = ?", authorID, slug).First(&n).Error; err != nil {
			return err
		}
		return tx.Model(&n).Update(column, next(&n)).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetBySlug(ctx, authorID, slug)
}

func (r *noteRepo) Delete(ctx context.Context, authorID int64, slug string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n model.Note
		if err := tx.Where("author_id = ? AND slug = ?", authorID, slug).First(&n).Error; err != nil {
			return err
		}
		// вложения принадлежат заметке и уходят вместе с ней;
		// метки — общие, снимаем только связи
		if err := tx.Where("note_id = ?", n.ID).Delete(&model.Attachment{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&n).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(&n).Error
	})
}
