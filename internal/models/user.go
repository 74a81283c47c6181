package models

import "time"

type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:25;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"column:password;size:150;not null"`
	CreatedAt    time.Time `json:"created_at"`
}
