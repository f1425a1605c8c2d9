package domain

import "context"

// Repository maps generic records to and from the spreadsheet store. Each
// record type has its own table named after the type.
type Repository interface {
	ListByEmail(ctx context.Context, email string, recordType RecordType) []Record
	Save(ctx context.Context, record Record) bool
}
