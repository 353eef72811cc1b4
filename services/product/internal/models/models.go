package models

import "time"

type Product struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"   json:"id"`
	Name        string    `gorm:"not null"                   json:"name"`
	Description string    `gorm:"not null"                   json:"description"`
	Price       float64   `gorm:"not null;check:price > 0"   json:"price"`
	Stock       int       `gorm:"not null;check:stock >= 0"  json:"stock"`
	Category    string    `gorm:"not null"                   json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
