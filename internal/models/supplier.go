package models

import "time"

// Supplier - поставщик. Название не обязано быть уникальным.
type Supplier struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:200;not null"`
	Contact   string `gorm:"type:text"` // телефон, email, адрес в свободной форме
	CreatedAt time.Time
}
