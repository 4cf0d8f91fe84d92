package model

import (
	"time"

	"gorm.io/gorm"
)

// CartItem is one line of a user's cart. A (UserID, ProductID, Size)
// triple is kept as a single line; duplicate adds merge into it.
type CartItem struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	ProductID uint           `gorm:"not null;index" json:"product_id"`
	Size      string         `gorm:"size:50;not null" json:"size"`
	Quantity  int            `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

// CartLine is the read-side projection of a cart item joined with live
// product data. Lines whose product or option can no longer be resolved
// are dropped from the response.
type CartLine struct {
	ProductID   uint    `json:"product_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Size        string  `json:"size"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	ImageURL    string  `json:"image_url"`
}
