package domain

import (
	"context"
	"errors"
)

type Service interface {
	// Get returns the stored profile or nil when none exists.
	Get(ctx context.Context, email string) (*DealershipProfile, error)

	// Save upserts the profile keyed by email. The returned flag reports
	// whether the write was durably recorded.
	Save(ctx context.Context, profile DealershipProfile) (bool, error)
}

var ErrInvalidEmail = errors.New("invalid_email")
