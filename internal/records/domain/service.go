package domain

import (
	"context"
	"errors"
)

type Service interface {
	// Save persists a record of the given type. The flag reports whether
	// the write was durably recorded.
	Save(ctx context.Context, email string, recordType RecordType, payload map[string]string) (Record, bool, error)

	// List returns every record of the given type for the email, oldest
	// first.
	List(ctx context.Context, email string, recordType RecordType) ([]Record, error)
}

var (
	ErrInvalidEmail      = errors.New("invalid_email")
	ErrInvalidRecordType = errors.New("invalid_record_type")
	ErrEmptyPayload      = errors.New("empty_payload")
)
