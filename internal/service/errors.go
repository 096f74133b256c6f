package service

import (
	"NoteKeeper/internal/repo"
	"NoteKeeper/internal/slugify"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
)

// Ошибки уровня сервиса. Хендлеры переводят их в HTTP-статусы.
var (
	// ErrNotFound — объект не существует или принадлежит другому пользователю.
	ErrNotFound = errors.New("not found")

	// ErrConflict — не пережитое ретраями нарушение уникальности
	// (slug или имя метки). Клиент может просто повторить запрос.
	ErrConflict = errors.New("conflict")

	ErrLoginTaken         = errors.New("login already taken")
	ErrInvalidCredentials = errors.New("invalid login or password")
)

// ValidationError — ошибки валидации входа с привязкой к полям.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func newValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// mapRepoErr переводит ошибки хранилища в сервисную таксономию.
// Остальное уходит наверх как есть и превращается в 500 без деталей.
func mapRepoErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, slugify.ErrExhausted), repo.IsUniqueViolation(err):
		return ErrConflict
	default:
		return err
	}
}
