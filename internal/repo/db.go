package repo

import (
	"NoteKeeper/internal/model"
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// InitDB открывает соединение и прогоняет автомиграции.
// Непустой DSN — Postgres, иначе локальный SQLite-файл (удобно для разработки).
func InitDB(dsn string) (*gorm.DB, error) {
	var dial gorm.Dialector
	if dsn != "" {
		dial = postgres.Open(dsn)
	} else {
		dial = gormsqlite.Dialector{DriverName: "sqlite", DSN: "notekeeper.db"}
	}

	db, err := gorm.Open(dial, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.Note{},
		&model.Tag{},
		&model.Attachment{},
	); err != nil {
		return nil, err
	}

	return db, nil
}

// IsUniqueViolation распознаёт нарушение уникального ограничения для обоих
// поддерживаемых драйверов. Перевод ошибок gorm не покрывает modernc-sqlite,
// поэтому дополнительно смотрим код Postgres и текст ошибки SQLite.
// Текст сверяется строго с "UNIQUE constraint failed": прочие классы
// ограничений (NOT NULL, CHECK, FK) не повод для ретрая или 409.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
