package repository

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/fizzbo19/dealercommand/internal/inventory/domain"
	"github.com/fizzbo19/dealercommand/internal/sheetstore"
	"go.uber.org/zap"
)

// TableName is the spreadsheet tab holding inventory rows.
const TableName = "Inventory"

const (
	colID          = "ID"
	colEmail       = "Email"
	colMake        = "Make"
	colModel       = "Model"
	colYear        = "Year"
	colPrice       = "Price"
	colMileage     = "Mileage"
	colStatus      = "Status"
	colDescription = "Description"
	colCreatedAt   = "Created_At"
	colUpdatedAt   = "Updated_At"
)

type sheetRepository struct {
	store sheetstore.Store
	log   *zap.Logger
}

func Provide(store sheetstore.Store, log *zap.Logger) domain.Repository {
	return &sheetRepository{
		store: store,
		log:   log.Named("inventory.repository"),
	}
}

func (r *sheetRepository) ListByEmail(ctx context.Context, email string) []domain.InventoryItem {
	normalized := strings.ToLower(strings.TrimSpace(email))
	var items []domain.InventoryItem
	for _, row := range r.store.GetTable(ctx, TableName) {
		if strings.ToLower(strings.TrimSpace(row[colEmail])) == normalized {
			items = append(items, fromRow(row))
		}
	}
	return items
}

func (r *sheetRepository) FindByID(ctx context.Context, id string) *domain.InventoryItem {
	id = strings.TrimSpace(id)
	for _, row := range r.store.GetTable(ctx, TableName) {
		if strings.TrimSpace(row[colID]) == id {
			item := fromRow(row)
			return &item
		}
	}
	return nil
}

func (r *sheetRepository) Save(ctx context.Context, item domain.InventoryItem) bool {
	ok := r.store.Upsert(ctx, TableName, colID, toRow(item))
	if !ok {
		r.log.Warn("inventory write lost", zap.String("id", item.ID), zap.String("email", item.Email))
	}
	return ok
}

func fromRow(row sheetstore.Row) domain.InventoryItem {
	return domain.InventoryItem{
		ID:          strings.TrimSpace(row[colID]),
		Email:       strings.TrimSpace(row[colEmail]),
		Make:        row[colMake],
		Model:       row[colModel],
		Year:        parseInt(row[colYear]),
		Price:       parseFloat(row[colPrice]),
		Mileage:     parseInt(row[colMileage]),
		Status:      row[colStatus],
		Description: row[colDescription],
		CreatedAt:   parseTime(row[colCreatedAt]),
		UpdatedAt:   parseTime(row[colUpdatedAt]),
	}
}

func toRow(item domain.InventoryItem) sheetstore.Row {
	return sheetstore.Row{
		colID:          item.ID,
		colEmail:       strings.ToLower(strings.TrimSpace(item.Email)),
		colMake:        item.Make,
		colModel:       item.Model,
		colYear:        strconv.Itoa(item.Year),
		colPrice:       strconv.FormatFloat(item.Price, 'f', 2, 64),
		colMileage:     strconv.Itoa(item.Mileage),
		colStatus:      item.Status,
		colDescription: item.Description,
		colCreatedAt:   formatTime(item.CreatedAt),
		colUpdatedAt:   formatTime(item.UpdatedAt),
	}
}

func parseInt(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}

func parseFloat(raw string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return f
}

func parseTime(raw string) time.Time {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
