package model

import (
	"time"
)

// ActivityType classifies an activity entry.
type ActivityType string

// Valid activity types
const (
	ActivityCall    ActivityType = "call"
	ActivityEmail   ActivityType = "email"
	ActivityMeeting ActivityType = "meeting"
	ActivityTask    ActivityType = "task"
)

// ActivityTypes lists every valid activity type.
var ActivityTypes = []ActivityType{ActivityCall, ActivityEmail, ActivityMeeting, ActivityTask}

// ValidActivityType reports whether s is a known activity type.
func ValidActivityType(s string) bool {
	for _, t := range ActivityTypes {
		if string(t) == s {
			return true
		}
	}
	return false
}

// Activity is a scheduled or logged touchpoint against a contact.
type Activity struct {
	ID        string       `json:"id"`
	Tenant    string       `json:"tenant"`
	Type      ActivityType `json:"type"`
	Subject   string       `json:"subject"`
	ContactID string       `json:"contact_id,omitempty"`
	Owner     string       `json:"owner"`
	DueDate   time.Time    `json:"due_date"`
	Completed bool         `json:"completed"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (a Activity) RecordID() string         { return a.ID }
func (a Activity) RecordTenant() string     { return a.Tenant }
func (a Activity) RecordCreated() time.Time { return a.CreatedAt }

// HistoryEntry records a single field change on a record, written on
// every update so edits are auditable.
type HistoryEntry struct {
	ID        string    `json:"id"`
	Tenant    string    `json:"tenant"`
	EntityID  string    `json:"entity_id"`
	Field     string    `json:"field"`
	OldValue  string    `json:"old_value"`
	NewValue  string    `json:"new_value"`
	ChangedBy string    `json:"changed_by"`
	CreatedAt time.Time `json:"created_at"`
}

func (h HistoryEntry) RecordID() string         { return h.ID }
func (h HistoryEntry) RecordTenant() string     { return h.Tenant }
func (h HistoryEntry) RecordCreated() time.Time { return h.CreatedAt }
