package domain

import (
	"context"
	"errors"
)

type Service interface {
	// List returns every inventory item belonging to the email.
	List(ctx context.Context, email string) ([]InventoryItem, error)

	// Upsert inserts the item, or updates the existing row when the item
	// carries an ID. New items receive a generated ID. The flag reports
	// whether the write was durably recorded.
	Upsert(ctx context.Context, item InventoryItem) (InventoryItem, bool, error)
}

var (
	ErrInvalidEmail = errors.New("invalid_email")
	ErrInvalidItem  = errors.New("invalid_item")
)
