// Package domain contains the generic activity records persisted through
// the single upsert path.
package domain

import (
	"strings"
	"time"
)

// RecordType is the closed set of record tables fed by the generic ingest
// path.
type RecordType string

const (
	RecordTypeUserActivity  RecordType = "User_Activity"
	RecordTypeTrialUsage    RecordType = "Trial_Usage"
	RecordTypePlatinumUsage RecordType = "Platinum_Usage"
	RecordTypeSocialMedia   RecordType = "Social_Media"
	RecordTypeCustomReport  RecordType = "Custom_Report"
	RecordTypeAIScript      RecordType = "AI_Script"
	RecordTypePerformance   RecordType = "Performance"
)

var recordTypes = map[string]RecordType{
	"user_activity":  RecordTypeUserActivity,
	"trial_usage":    RecordTypeTrialUsage,
	"platinum_usage": RecordTypePlatinumUsage,
	"social_media":   RecordTypeSocialMedia,
	"custom_report":  RecordTypeCustomReport,
	"ai_script":      RecordTypeAIScript,
	"performance":    RecordTypePerformance,
}

// ParseRecordType validates a record type label case-insensitively.
func ParseRecordType(raw string) (RecordType, error) {
	if rt, ok := recordTypes[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return rt, nil
	}
	return "", ErrInvalidRecordType
}

// Record is one row of a record table. Payload carries the type-specific
// fields as provided by the caller.
type Record struct {
	ID        string            `json:"id"`
	Email     string            `json:"email"`
	Type      RecordType        `json:"record_type"`
	Payload   map[string]string `json:"payload"`
	CreatedAt time.Time         `json:"created_at"`
}
