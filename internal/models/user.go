package models

import "time"

// User is a registered account. Each trade belongs to exactly one user.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`

	Trades []Trade `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
