package model

import (
	"time"

	"gorm.io/gorm"
)

// FavoriteItem is one product on a user's wishlist. No duplicates per
// user.
type FavoriteItem struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	ProductID uint           `gorm:"not null;index" json:"product_id"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (FavoriteItem) TableName() string {
	return "favorite_items"
}
