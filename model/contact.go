package model

import (
	"time"
)

// ContactStage is the funnel position of a contact.
type ContactStage string

// Valid contact stages
const (
	StageLead     ContactStage = "Lead"
	StageProspect ContactStage = "Prospect"
	StageCustomer ContactStage = "Customer"
	StagePartner  ContactStage = "Partner"
)

// ContactStages lists every valid stage in funnel order.
var ContactStages = []ContactStage{StageLead, StageProspect, StageCustomer, StagePartner}

// ValidContactStage reports whether s is a known stage.
func ValidContactStage(s string) bool {
	for _, stage := range ContactStages {
		if string(stage) == s {
			return true
		}
	}
	return false
}

// Contact represents a person in the CRM. Contacts are never hard
// deleted; archiving clears IsActive and keeps the record.
type Contact struct {
	ID        string       `json:"id"`
	Tenant    string       `json:"tenant"`
	FirstName string       `json:"first_name"`
	LastName  string       `json:"last_name"`
	Email     string       `json:"email"`
	Phone     string       `json:"phone,omitempty"`
	Company   string       `json:"company"`
	JobTitle  string       `json:"job_title,omitempty"`
	Owner     string       `json:"owner"`
	Stage     ContactStage `json:"stage"`
	Tags      []string     `json:"tags,omitempty"`
	IsActive  bool         `json:"is_active"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (c Contact) RecordID() string         { return c.ID }
func (c Contact) RecordTenant() string     { return c.Tenant }
func (c Contact) RecordCreated() time.Time { return c.CreatedAt }
