package models

import "time"

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID          uint        `gorm:"primaryKey;autoIncrement"          json:"id"`
	UserID      uint        `gorm:"index;not null"                    json:"user_id"`
	TotalAmount float64     `gorm:"not null;check:total_amount > 0"   json:"total_amount"`
	Status      string      `gorm:"not null;default:'pending'"        json:"status"`
	Items       []OrderItem `gorm:"constraint:OnDelete:CASCADE"       json:"items"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// OrderItem carries the product name and unit price snapshotted at order
// time; later product changes never touch these rows.
type OrderItem struct {
	ID          uint    `gorm:"primaryKey;autoIncrement"   json:"id"`
	OrderID     uint    `gorm:"index;not null"             json:"order_id"`
	ProductID   uint    `gorm:"not null"                   json:"product_id"`
	ProductName string  `gorm:"not null"                   json:"product_name"`
	Quantity    int     `gorm:"not null;check:quantity > 0" json:"quantity"`
	Price       float64 `gorm:"not null;check:price > 0"   json:"price"`
}
