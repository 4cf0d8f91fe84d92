package model

import (
	"time"

	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// Order is an immutable purchase record derived from a cart at checkout
// time. Item prices are snapshots; they are never recomputed from the
// live product price. TotalPrice = Subtotal + Shipping - Discount.
type Order struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	OrderCode      string         `gorm:"uniqueIndex;size:30;not null" json:"order_code"`
	UserID         uint           `gorm:"not null;index" json:"user_id"`
	AddressID      uint           `gorm:"not null" json:"address_id"`
	Subtotal       float64        `gorm:"default:0" json:"subtotal"`
	Discount       float64        `gorm:"default:0" json:"discount"`
	Shipping       float64        `gorm:"default:0" json:"shipping"`
	TotalPrice     float64        `gorm:"not null" json:"total_price"`
	TotalQuantity  int            `gorm:"not null" json:"total_quantity"`
	Status         OrderStatus    `gorm:"type:varchar(20);default:'Pending'" json:"status"`
	OrderDate      time.Time      `json:"order_date"`
	TrackingNumber string         `gorm:"size:100" json:"tracking_number"`
	IsReviewed     bool           `gorm:"default:false" json:"is_reviewed"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	User    User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Address Address     `gorm:"foreignKey:AddressID" json:"address,omitempty"`
	Items   []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	OrderID   uint           `gorm:"not null;index" json:"order_id"`
	ProductID uint           `gorm:"not null;index" json:"product_id"`
	Size      string         `gorm:"size:50;not null" json:"size"`
	Quantity  int            `gorm:"not null" json:"quantity"`
	Price     float64        `gorm:"not null" json:"price"` // unit price snapshot
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Order   Order   `gorm:"foreignKey:OrderID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
