package domain

import "context"

// Repository maps inventory items to and from the spreadsheet store.
type Repository interface {
	ListByEmail(ctx context.Context, email string) []InventoryItem
	FindByID(ctx context.Context, id string) *InventoryItem
	Save(ctx context.Context, item InventoryItem) bool
}
