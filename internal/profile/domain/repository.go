package domain

import "context"

// Repository maps profile records to and from the spreadsheet store.
type Repository interface {
	// FindByEmail returns the stored profile or nil when absent.
	FindByEmail(ctx context.Context, email string) *DealershipProfile

	// List returns every profile row. An unreachable table comes back empty,
	// never as an error.
	List(ctx context.Context) []DealershipProfile

	// Save upserts the profile keyed by email.
	Save(ctx context.Context, profile DealershipProfile) bool
}
