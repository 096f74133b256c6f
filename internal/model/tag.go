package model

// Tag — метка, общая для всех заметок, которые на неё ссылаются.
// Идентичность — по имени; slug выводится из имени один раз.
// Жизненный цикл метки не зависит от заметок: обновление или удаление
// заметки метку не трогает.
type Tag struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;not null"`
	Slug string `gorm:"uniqueIndex;not null"`
}
