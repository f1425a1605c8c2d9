package domain

import (
	"context"
	"time"
)

// Repository maps activity records to and from the spreadsheet store.
type Repository interface {
	// FindByEmail returns the stored record or nil when absent. Stored dates
	// that fail to parse are replaced with the supplied fallbacks rather
	// than failing the load; an unrecognized status or plan surfaces
	// ErrInvalidStatus/ErrInvalidPlan.
	FindByEmail(ctx context.Context, email string, fallbackStart, fallbackExpiry time.Time) (*DealershipActivity, error)

	// Save upserts the record keyed by email. Reports whether the write was
	// durably recorded; a false return means the computed state was lost.
	Save(ctx context.Context, activity DealershipActivity) bool
}
