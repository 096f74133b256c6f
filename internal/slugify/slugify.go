package slugify

import (
	"errors"
	"fmt"
	"math/rand/v2"

	gslug "github.com/gosimple/slug"
)

// Параметры подбора уникального slug.
const (
	suffixLen      = 4 // обычный случайный суффикс
	finalSuffixLen = 8 // последняя попытка перед ошибкой
	maxAttempts    = 5
)

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// ErrExhausted — не удалось подобрать свободный slug за отведённое число
// попыток. Вызывающий трактует это как конфликт и может повторить запрос.
var ErrExhausted = errors.New("slugify: exhausted unique slug candidates")

// ExistsFunc отвечает, занят ли кандидат в домене уникальности
// (обычно это запрос к БД). Ошибка прерывает подбор целиком.
type ExistsFunc func(candidate string) (bool, error)

// Assign выводит из title URL-безопасный уникальный slug.
// Нормализация — строчные буквы, не-алфавитно-цифровые последовательности
// схлопываются в один дефис. Для пустого или вырожденного title (одна
// пунктуация) берётся fallback, чтобы slug всегда был непустым.
// При коллизии добавляется дефис и короткий случайный суффикс; число
// попыток ограничено, последняя идёт с удлинённым суффиксом.
func Assign(title, fallback string, exists ExistsFunc) (string, error) {
	base := gslug.Make(title)
	if base == "" {
		base = gslug.Make(fallback)
	}

	candidate := base
	for i := 0; i < maxAttempts; i++ {
		taken, err := exists(candidate)
		if err != nil {
			return "", fmt.Errorf("slugify: check %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = base + "-" + randSuffix(suffixLen)
	}

	// последний шанс: длинный суффикс
	candidate = base + "-" + randSuffix(finalSuffixLen)
	taken, err := exists(candidate)
	if err != nil {
		return "", fmt.Errorf("slugify: check %q: %w", candidate, err)
	}
	if taken {
		return "", ErrExhausted
	}
	return candidate, nil
}

func randSuffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = suffixAlphabet[rand.IntN(len(suffixAlphabet))]
	}
	return string(b)
}
