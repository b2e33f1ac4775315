package model

import (
	"time"
)

// JobGrade is an HR pay-grade definition. Key is unique per tenant and
// referenced by ParentKey when a grade is a child of another.
type JobGrade struct {
	ID        string    `json:"id"`
	Tenant    string    `json:"tenant"`
	Key       string    `json:"key"`
	Name      string    `json:"name"`
	Level     int       `json:"level"`
	MinSalary float64   `json:"min_salary"`
	MaxSalary float64   `json:"max_salary"`
	IsChild   bool      `json:"is_child"`
	ParentKey string    `json:"parent_key,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (g JobGrade) RecordID() string         { return g.ID }
func (g JobGrade) RecordTenant() string     { return g.Tenant }
func (g JobGrade) RecordCreated() time.Time { return g.CreatedAt }
