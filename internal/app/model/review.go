package model

import (
	"time"

	"gorm.io/gorm"
)

// Review holds one rating/comment per order. Creating a review flips
// the order's IsReviewed flag.
type Review struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	OrderID   uint           `gorm:"not null;index" json:"order_id"`
	Rating    int            `gorm:"not null" json:"rating"` // 1-5
	Comment   string         `gorm:"type:text" json:"comment"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Order Order `gorm:"foreignKey:OrderID" json:"order,omitempty"`
}

func (Review) TableName() string {
	return "reviews"
}
