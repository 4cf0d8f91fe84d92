package model

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	Name           string         `gorm:"not null" json:"name"`
	About          string         `gorm:"type:text" json:"about"`
	Description    string         `gorm:"type:text" json:"description"`
	Category       string         `gorm:"size:100;index" json:"category"`
	AnimalType     string         `gorm:"size:100;index;default:''" json:"animal_type"`
	ImageURL       string         `json:"image_url"`
	TotalPurchases int            `gorm:"default:0" json:"total_purchases"`
	// No default tag: GORM would skip a false value on insert and the
	// column default would flip it back to active.
	Status bool `json:"status"` // active flag
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	Options []ProductOption `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"options,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

// Option returns the per-size variant, or nil when the size is unknown.
func (p *Product) Option(size string) *ProductOption {
	for i := range p.Options {
		if p.Options[i].Size == size {
			return &p.Options[i]
		}
	}
	return nil
}
