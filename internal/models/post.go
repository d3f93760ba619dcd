package models

import (
	"time"
)

type Post struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Pid    string `gorm:"uniqueIndex;size:26;not null" json:"pid"` // public ULID
	UserID uint   `gorm:"not null;index" json:"user_id"`
	User   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Title  string `gorm:"not null" json:"title"`
	// Running counter, kept in step with the votes table inside the same
	// transaction as every vote write. The ledger is the source of truth.
	Score     int       `gorm:"default:0" json:"score"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
