package model

import (
	"time"
)

// AccountType classifies a company account.
type AccountType string

// Valid account types
const (
	AccountCustomer AccountType = "Customer"
	AccountPartner  AccountType = "Partner"
	AccountProspect AccountType = "Prospect"
	AccountVendor   AccountType = "Vendor"
)

// AccountTypes lists every valid account type.
var AccountTypes = []AccountType{AccountCustomer, AccountPartner, AccountProspect, AccountVendor}

// ValidAccountType reports whether s is a known account type.
func ValidAccountType(s string) bool {
	for _, t := range AccountTypes {
		if string(t) == s {
			return true
		}
	}
	return false
}

// Account represents a company. Accounts follow the contact policy:
// archived, never removed.
type Account struct {
	ID        string      `json:"id"`
	Tenant    string      `json:"tenant"`
	Name      string      `json:"name"`
	Type      AccountType `json:"type"`
	Industry  string      `json:"industry,omitempty"`
	Website   string      `json:"website,omitempty"`
	Owner     string      `json:"owner"`
	Tags      []string    `json:"tags,omitempty"`
	IsActive  bool        `json:"is_active"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func (a Account) RecordID() string         { return a.ID }
func (a Account) RecordTenant() string     { return a.Tenant }
func (a Account) RecordCreated() time.Time { return a.CreatedAt }
