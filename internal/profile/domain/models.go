// Package domain contains the dealership profile record.
package domain

// DealershipProfile holds the contact details for a dealership, keyed by
// email. Plan and TrialStatus are denormalized mirrors of the activity
// record, kept here so seat-limit queries only touch one table. Plan stays a
// raw label: the profile table is also written by older tooling and may
// carry tiers the current plan policy does not know.
type DealershipProfile struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Location    string `json:"location"`
	Plan        string `json:"plan"`
	TrialStatus string `json:"trial_status"`
}
