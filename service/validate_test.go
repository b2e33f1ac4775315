package service

import (
	"strings"
	"testing"
	"time"
)

func validContactInput() ContactInput {
	return ContactInput{
		FirstName: "Maria",
		LastName:  "Garcia",
		Email:     "maria@example.com",
		Owner:     "alice",
		Stage:     "Lead",
	}
}

func TestValidateContactOK(t *testing.T) {
	errs := ValidateContact(validContactInput())
	if !errs.Valid() {
		t.Errorf("Expected valid input, got %v", errs)
	}
}

func TestValidateContactRequiredAndEmail(t *testing.T) {
	in := validContactInput()
	in.FirstName = ""
	in.Email = "not-an-email"

	errs := ValidateContact(in)
	if len(errs) != 2 {
		t.Fatalf("Expected 2 field errors, got %d: %v", len(errs), errs)
	}
	if msg, ok := errs["first_name"]; !ok || !strings.Contains(msg, "required") {
		t.Errorf("Expected required message for first_name, got %q", msg)
	}
	if msg, ok := errs["email"]; !ok || !strings.Contains(msg, "valid email") {
		t.Errorf("Expected valid email message, got %q", msg)
	}
}

func TestValidateContactUnknownStage(t *testing.T) {
	in := validContactInput()
	in.Stage = "Unicorn"

	errs := ValidateContact(in)
	if _, ok := errs["stage"]; !ok {
		t.Errorf("Expected error for unknown stage, got %v", errs)
	}
}

func TestValidateOpportunityAmountAndProbability(t *testing.T) {
	in := OpportunityInput{
		Name:              "Big deal",
		Owner:             "bob",
		Stage:             "Proposal",
		Amount:            0,
		Probability:       150,
		ExpectedCloseDate: time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC),
	}

	errs := ValidateOpportunity(in)
	if _, ok := errs["amount"]; !ok {
		t.Errorf("Expected error for zero amount, got %v", errs)
	}
	if _, ok := errs["probability"]; !ok {
		t.Errorf("Expected error for probability > 100, got %v", errs)
	}

	in.Amount = 5000
	in.Probability = 60
	if errs := ValidateOpportunity(in); !errs.Valid() {
		t.Errorf("Expected valid input, got %v", errs)
	}
}

func validGradeInput() GradeInput {
	return GradeInput{
		Key:       "eng-2",
		Name:      "Engineer II",
		Level:     2,
		MinSalary: 60000,
		MaxSalary: 90000,
	}
}

func TestValidateGradeOK(t *testing.T) {
	errs := ValidateGrade(validGradeInput(), nil)
	if !errs.Valid() {
		t.Errorf("Expected valid input, got %v", errs)
	}
}

func TestValidateGradeParentRequiredForChild(t *testing.T) {
	in := validGradeInput()
	in.IsChild = true
	in.ParentKey = ""

	errs := ValidateGrade(in, nil)
	if msg, ok := errs["parent_key"]; !ok || !strings.Contains(msg, "required") {
		t.Errorf("Expected parent_key required for child grade, got %v", errs)
	}

	// Not required when the grade isn't a child
	in.IsChild = false
	if errs := ValidateGrade(in, nil); !errs.Valid() {
		t.Errorf("Expected valid input, got %v", errs)
	}
}

func TestValidateGradeKeyUniqueness(t *testing.T) {
	existing := map[string]bool{"eng-2": true, "eng-3": true}

	errs := ValidateGrade(validGradeInput(), existing)
	if msg, ok := errs["key"]; !ok || !strings.Contains(msg, "already in use") {
		t.Errorf("Expected duplicate key error, got %v", errs)
	}

	in := validGradeInput()
	in.Key = "eng-4"
	if errs := ValidateGrade(in, existing); !errs.Valid() {
		t.Errorf("Expected unused key to pass, got %v", errs)
	}
}

func TestValidateGradeSalaryBand(t *testing.T) {
	in := validGradeInput()
	in.MaxSalary = 50000 // below min

	errs := ValidateGrade(in, nil)
	if _, ok := errs["max_salary"]; !ok {
		t.Errorf("Expected max_salary error, got %v", errs)
	}
}

func TestValidateDoesNotMutateInput(t *testing.T) {
	in := validContactInput()
	in.Email = "broken"

	ValidateContact(in)

	if in.Email != "broken" || in.FirstName != "Maria" {
		t.Error("Validation mutated its input")
	}
}

func TestValidateActivity(t *testing.T) {
	in := ActivityInput{Type: "call", Subject: "Intro call", Owner: "alice"}
	if errs := ValidateActivity(in); !errs.Valid() {
		t.Errorf("Expected valid input, got %v", errs)
	}

	in.Type = "telepathy"
	in.Subject = ""
	errs := ValidateActivity(in)
	if _, ok := errs["type"]; !ok {
		t.Errorf("Expected error for unknown type, got %v", errs)
	}
	if _, ok := errs["subject"]; !ok {
		t.Errorf("Expected error for empty subject, got %v", errs)
	}
}

func TestValidateAccount(t *testing.T) {
	in := AccountInput{
		Name:    "Acme Corp",
		Type:    "Customer",
		Website: "https://acme.example.com",
		Owner:   "alice",
	}
	if errs := ValidateAccount(in); !errs.Valid() {
		t.Errorf("Expected valid input, got %v", errs)
	}

	in.Type = "Conglomerate"
	in.Website = "not a url"
	errs := ValidateAccount(in)
	if _, ok := errs["type"]; !ok {
		t.Errorf("Expected error for unknown type, got %v", errs)
	}
	if _, ok := errs["website"]; !ok {
		t.Errorf("Expected error for bad website, got %v", errs)
	}
}
