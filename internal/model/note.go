package model

import "time"

// DefaultColor — цвет заметки, если клиент его не прислал.
const DefaultColor = "#FFFFFF"

// Note — заметка пользователя.
// Slug присваивается один раз при создании и больше не меняется,
// даже если заголовок потом правят.
type Note struct {
	ID       int64 `gorm:"primaryKey"`
	AuthorID int64 `gorm:"not null;index"` // ссылка на users.id

	Author *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	Title   string `gorm:"size:100"`
	Content string `gorm:"type:text"`
	Slug    string `gorm:"uniqueIndex;not null"`
	Color   string `gorm:"size:7"` // #RRGGBB

	IsArchived bool `gorm:"not null;default:false"`
	IsPinned   bool `gorm:"not null;default:false;index"`

	// Связи
	Tags        []Tag        `gorm:"many2many:note_tags"`
	Attachments []Attachment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
