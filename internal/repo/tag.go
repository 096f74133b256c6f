package repo

import (
	"NoteKeeper/internal/model"
	"NoteKeeper/internal/slugify"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TagRepository — контракт доступа к меткам.
type TagRepository interface {
	// FindOrCreate возвращает метку по имени, создавая её при отсутствии.
	FindOrCreate(ctx context.Context, name string) (*model.Tag, error)

	List(ctx context.Context) ([]model.Tag, error)
	GetBySlug(ctx context.Context, slug string) (*model.Tag, error)

	// Rename меняет имя метки; slug остаётся прежним.
	Rename(ctx context.Context, slug, name string) (*model.Tag, error)

	// Delete удаляет метку и снимает её со всех заметок.
	Delete(ctx context.Context, slug string) error
}

type tagRepo struct {
	db *gorm.DB
}

// NewTagRepository создаёт реализацию репозитория для Tag.
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepo{db: db}
}

func (r *tagRepo) FindOrCreate(ctx context.Context, name string) (*model.Tag, error) {
	return findOrCreateTag(r.db.WithContext(ctx), name)
}

// findOrCreateTag ищет метку по имени и создаёт её, если не нашёл.
// Вставка идёт через ON CONFLICT DO NOTHING с повторным чтением, так что
// конкурирующие запросы с одним и тем же новым именем не плодят дублей.
// Работает и внутри чужой транзакции (используется в note-репозитории).
func findOrCreateTag(tx *gorm.DB, name string) (*model.Tag, error) {
	var t model.Tag
	err := tx.Where("name = ?", name).First(&t).Error
	if err == nil {
		return &t, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	s, err := slugify.Assign(name, "tag", tagSlugTaken(tx))
	if err != nil {
		return nil, err
	}

	t = model.Tag{Name: name, Slug: s}
	res := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&t)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// кто-то успел вставить это имя раньше — берём его запись
		if err := tx.Where("name = ?", name).First(&t).Error; err != nil {
			return nil, err
		}
	}
	return &t, nil
}

func tagSlugTaken(tx *gorm.DB) slugify.ExistsFunc {
	return func(candidate string) (bool, error) {
		var n int64
		if err := tx.Model(&model.Tag{}).Where("slug = ?", candidate).Count(&n).Error; err != nil {
			return false, err
		}
		return n > 0, nil
	}
}

func (r *tagRepo) List(ctx context.Context) ([]model.Tag, error) {
	var tags []model.Tag
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *tagRepo) GetBySlug(ctx context.Context, slug string) (*model.Tag, error) {
	var t model.Tag
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tagRepo) Rename(ctx context.Context, slug, name string) (*model.Tag, error) {
	var t model.Tag
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("slug = ?", slug).First(&t).Error; err != nil {
			return err
		}
		return tx.Model(&t).Update("name", name).Error
	})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tagRepo) Delete(ctx context.Context, slug string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var t model.Tag
		if err := tx.Where("slug = ?", slug).First(&t).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM note_tags WHERE tag_id = ?", t.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&t).Error
	})
}
