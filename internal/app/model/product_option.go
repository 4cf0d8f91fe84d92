package model

import (
	"time"

	"gorm.io/gorm"
)

// ProductOption is a per-size price/stock variant of a product. Size is
// unique within one product's options.
type ProductOption struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	ProductID uint           `gorm:"index;not null" json:"product_id"`
	Size      string         `gorm:"size:50;not null" json:"size"`
	Price     float64        `gorm:"not null" json:"price"`
	Stock     int            `gorm:"default:0" json:"stock"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-"`

	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

func (ProductOption) TableName() string {
	return "product_options"
}
