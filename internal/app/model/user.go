package model

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// User is either a LINE customer (LineID set, no password) or an admin
// account (Email + PasswordHash set, no LineID).
type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	LineID       *string        `gorm:"uniqueIndex" json:"line_id,omitempty"`
	Email        *string        `gorm:"uniqueIndex" json:"email,omitempty"`
	PasswordHash string         `json:"-"`
	DisplayName  string         `json:"display_name"`
	PictureURL   string         `json:"picture_url"`
	Role         UserRole       `gorm:"type:varchar(20);default:'user'" json:"role"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Addresses []Address `gorm:"foreignKey:UserID" json:"addresses,omitempty"`
	Orders    []Order   `gorm:"foreignKey:UserID" json:"orders,omitempty"`
}

func (User) TableName() string {
	return "users"
}
