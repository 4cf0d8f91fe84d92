package model

import (
	"time"

	"gorm.io/gorm"
)

type Address struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	Label     string         `gorm:"size:100" json:"label"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	Lastname  string         `gorm:"size:100" json:"lastname"`
	Phone     string         `gorm:"size:10;not null" json:"phone"`
	Address   string         `gorm:"type:text;not null" json:"address"`
	ZipCode   string         `gorm:"size:10" json:"zip_code"`
	Province  string         `gorm:"size:100" json:"province"`
	District  string         `gorm:"size:100" json:"district"`
	IsDefault bool           `gorm:"default:false" json:"is_default"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Address) TableName() string {
	return "addresses"
}
