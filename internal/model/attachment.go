package model

import "time"

// Attachment — файл, прикреплённый к заметке. Содержимое храним
// прямо в реляционной БД; время жизни привязано к заметке
// (удаление заметки каскадно удаляет вложения).
type Attachment struct {
	ID     string `gorm:"primaryKey;type:uuid"`
	NoteID int64  `gorm:"not null;index"` // ссылка на notes.id

	Note *Note `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	FileName    string
	ContentType string
	Data        []byte `gorm:"not null"`

	UploadedAt time.Time `gorm:"autoCreateTime"`
}
