package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mwaldrep/salesdesk/backend/model"
)

// FieldErrors maps a field name to its validation message. An empty map
// means the form is valid.
type FieldErrors map[string]string

// Valid reports whether no field failed.
func (e FieldErrors) Valid() bool {
	return len(e) == 0
}

var formValidate *validator.Validate

func init() {
	formValidate = validator.New(validator.WithRequiredStructEnabled())

	// Report json field names instead of Go struct names
	formValidate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = formValidate.RegisterValidation("contactstage", func(fl validator.FieldLevel) bool {
		return model.ValidContactStage(fl.Field().String())
	})
	_ = formValidate.RegisterValidation("oppstage", func(fl validator.FieldLevel) bool {
		return model.ValidOpportunityStage(fl.Field().String())
	})
	_ = formValidate.RegisterValidation("activitytype", func(fl validator.FieldLevel) bool {
		return model.ValidActivityType(fl.Field().String())
	})
	_ = formValidate.RegisterValidation("accounttype", func(fl validator.FieldLevel) bool {
		return model.ValidAccountType(fl.Field().String())
	})
}

// ContactInput is the create/update form for a contact.
type ContactInput struct {
	FirstName string   `json:"first_name" validate:"required"`
	LastName  string   `json:"last_name" validate:"required"`
	Email     string   `json:"email" validate:"required,email"`
	Phone     string   `json:"phone"`
	Company   string   `json:"company"`
	JobTitle  string   `json:"job_title"`
	Owner     string   `json:"owner" validate:"required"`
	Stage     string   `json:"stage" validate:"required,contactstage"`
	Tags      []string `json:"tags"`
}

// ValidateContact checks the contact form. The input is never mutated.
func ValidateContact(in ContactInput) FieldErrors {
	return translate(formValidate.Struct(in))
}

// OpportunityInput is the create/update form for an opportunity.
type OpportunityInput struct {
	Name              string    `json:"name" validate:"required"`
	Company           string    `json:"company"`
	Owner             string    `json:"owner" validate:"required"`
	Stage             string    `json:"stage" validate:"required,oppstage"`
	Amount            float64   `json:"amount" validate:"required,gt=0"`
	Probability       float64   `json:"probability" validate:"gte=0,lte=100"`
	ExpectedCloseDate time.Time `json:"expected_close_date" validate:"required"`
	Tags              []string  `json:"tags"`
}

// ValidateOpportunity checks the opportunity form.
func ValidateOpportunity(in OpportunityInput) FieldErrors {
	return translate(formValidate.Struct(in))
}

// AccountInput is the create/update form for an account.
type AccountInput struct {
	Name     string   `json:"name" validate:"required"`
	Type     string   `json:"type" validate:"required,accounttype"`
	Industry string   `json:"industry"`
	Website  string   `json:"website" validate:"omitempty,url"`
	Owner    string   `json:"owner" validate:"required"`
	Tags     []string `json:"tags"`
}

// ValidateAccount checks the account form.
func ValidateAccount(in AccountInput) FieldErrors {
	return translate(formValidate.Struct(in))
}

// GradeInput is the create/update form for a job grade. ParentKey is a
// cross-field rule: required only when the grade is marked as a child.
type GradeInput struct {
	Key       string  `json:"key" validate:"required"`
	Name      string  `json:"name" validate:"required"`
	Level     int     `json:"level" validate:"gte=1"`
	MinSalary float64 `json:"min_salary" validate:"gte=0"`
	MaxSalary float64 `json:"max_salary" validate:"gtefield=MinSalary"`
	IsChild   bool    `json:"is_child"`
	ParentKey string  `json:"parent_key" validate:"required_if=IsChild true"`
}

// ValidateGrade checks the grade form. existingKeys holds every key
// already in use; validation itself keeps no state, the caller supplies
// the comparison set.
func ValidateGrade(in GradeInput, existingKeys map[string]bool) FieldErrors {
	errs := translate(formValidate.Struct(in))
	if _, already := errs["key"]; !already && existingKeys[in.Key] {
		errs["key"] = "key is already in use"
	}
	return errs
}

// ActivityInput is the create form for an activity.
type ActivityInput struct {
	Type      string    `json:"type" validate:"required,activitytype"`
	Subject   string    `json:"subject" validate:"required"`
	ContactID string    `json:"contact_id"`
	Owner     string    `json:"owner" validate:"required"`
	DueDate   time.Time `json:"due_date"`
}

// ValidateActivity checks the activity form.
func ValidateActivity(in ActivityInput) FieldErrors {
	return translate(formValidate.Struct(in))
}

// translate converts validator errors into the field→message map the
// API returns. A fresh map is built on every call.
func translate(err error) FieldErrors {
	errs := make(FieldErrors)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs["form"] = "invalid input"
		return errs
	}

	for _, fe := range verrs {
		if _, seen := errs[fe.Field()]; seen {
			continue
		}
		errs[fe.Field()] = messageFor(fe)
	}
	return errs
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gtefield":
		return fmt.Sprintf("must not be less than %s", fe.Param())
	case "contactstage", "oppstage", "activitytype", "accounttype":
		return fmt.Sprintf("%q is not a valid value", fe.Value())
	default:
		return "is invalid"
	}
}
