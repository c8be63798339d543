package models

import "time"

type Product struct {
	ID          string         `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `json:"description"`
	Price       float64        `gorm:"not null" json:"price"`
	Images      []string       `gorm:"serializer:json" json:"images"`
	Category    string         `gorm:"index" json:"category"`
	Sizes       []string       `gorm:"serializer:json" json:"sizes"`
	Colors      []string       `gorm:"serializer:json" json:"colors"`
	Stock       map[string]int `gorm:"serializer:json" json:"stock"` // keyed "SIZE-Color"; informational only
	Featured    bool           `gorm:"index" json:"featured"`
	CreatedAt   time.Time      `json:"created_at"`
}
