package model

import "time"

// User — учётная запись пользователя.
type User struct {
	ID       int64  `gorm:"primaryKey"`
	Login    string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null" json:"-"` // bcrypt-хеш, наружу не отдаём

	Profile *Profile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Допустимые значения пола в профиле.
const (
	GenderMale   = "M"
	GenderFemale = "F"
	GenderOther  = "O"
)

// Profile — профиль пользователя, один-к-одному с User.
type Profile struct {
	ID     int64 `gorm:"primaryKey"`
	UserID int64 `gorm:"uniqueIndex;not null"` // ссылка на users.id

	Bio            string
	Gender         string `gorm:"size:1"` // M | F | O, пустая строка — не указан
	ProfilePicture string
}
