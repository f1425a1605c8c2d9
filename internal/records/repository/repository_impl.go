package repository

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/fizzbo19/dealercommand/internal/records/domain"
	"github.com/fizzbo19/dealercommand/internal/sheetstore"
	"go.uber.org/zap"
)

const (
	colID         = "ID"
	colEmail      = "Email"
	colRecordType = "Record_Type"
	colPayload    = "Payload"
	colCreatedAt  = "Created_At"
)

type sheetRepository struct {
	store sheetstore.Store
	log   *zap.Logger
}

func Provide(store sheetstore.Store, log *zap.Logger) domain.Repository {
	return &sheetRepository{
		store: store,
		log:   log.Named("records.repository"),
	}
}

func (r *sheetRepository) ListByEmail(ctx context.Context, email string, recordType domain.RecordType) []domain.Record {
	normalized := strings.ToLower(strings.TrimSpace(email))
	var out []domain.Record
	for _, row := range r.store.GetTable(ctx, string(recordType)) {
		if strings.ToLower(strings.TrimSpace(row[colEmail])) != normalized {
			continue
		}
		out = append(out, fromRow(row, recordType))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (r *sheetRepository) Save(ctx context.Context, record domain.Record) bool {
	payload, err := json.Marshal(record.Payload)
	if err != nil {
		r.log.Warn("payload marshal failed", zap.String("id", record.ID), zap.Error(err))
		return false
	}

	ok := r.store.Upsert(ctx, string(record.Type), colID, sheetstore.Row{
		colID:         record.ID,
		colEmail:      strings.ToLower(strings.TrimSpace(record.Email)),
		colRecordType: string(record.Type),
		colPayload:    string(payload),
		colCreatedAt:  record.CreatedAt.UTC().Format(time.RFC3339),
	})
	if !ok {
		r.log.Warn("record write lost", zap.String("id", record.ID), zap.String("type", string(record.Type)))
	}
	return ok
}

func fromRow(row sheetstore.Row, recordType domain.RecordType) domain.Record {
	payload := map[string]string{}
	if raw := strings.TrimSpace(row[colPayload]); raw != "" {
		// Rows written by older tooling may hold malformed payloads; they
		// come back empty rather than failing the whole listing.
		_ = json.Unmarshal([]byte(raw), &payload)
	}

	createdAt, _ := time.Parse(time.RFC3339, strings.TrimSpace(row[colCreatedAt]))

	return domain.Record{
		ID:        strings.TrimSpace(row[colID]),
		Email:     strings.TrimSpace(row[colEmail]),
		Type:      recordType,
		Payload:   payload,
		CreatedAt: createdAt.UTC(),
	}
}
