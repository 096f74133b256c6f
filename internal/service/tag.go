package service

import (
	"NoteKeeper/internal/model"
	"NoteKeeper/internal/repo"
	"context"
)

// TagService — операции над метками вне контекста заметки.
type TagService struct {
	repo repo.TagRepository
}

func NewTagService(r repo.TagRepository) *TagService {
	return &TagService{repo: r}
}

func (s *TagService) List(ctx context.Context) ([]model.Tag, error) {
	tags, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return tags, nil
}

func (s *TagService) Get(ctx context.Context, slug string) (*model.Tag, error) {
	tag, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return tag, nil
}

// Rename меняет имя метки; slug не пересчитывается.
func (s *TagService) Rename(ctx context.Context, slug, name string) (*model.Tag, error) {
	if name == "" {
		return nil, newValidationError("name", "required")
	}
	tag, err := s.repo.Rename(ctx, slug, name)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return tag, nil
}

func (s *TagService) Delete(ctx context.Context, slug string) error {
	return mapRepoErr(s.repo.Delete(ctx, slug))
}
