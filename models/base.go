package models

import "time"

// Model mirrors gorm.Model without the soft-delete column: catalog rows are
// removed outright so that component cascades and uniqueness stay exact.
type Model struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
