// Package domain contains the vehicle inventory records.
package domain

import "time"

// InventoryItem is a single vehicle listing owned by a dealership.
type InventoryItem struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Make        string    `json:"make"`
	Model       string    `json:"model"`
	Year        int       `json:"year"`
	Price       float64   `json:"price"`
	Mileage     int       `json:"mileage"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
