// Package user defines the user record shared by the API client, the
// session layer, and the screens. The account type is a closed enumeration;
// records coming off the wire are validated before they enter session state.
package user

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/campuskit/campusctl/internal/errors"
)

// Role is the account type that drives routing and guard checks
type Role string

// The three account types the campus API knows about
const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// DefaultRole is assigned at registration when no type is given
const DefaultRole = RoleStudent

// Valid reports whether the role is one of the known account types
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	default:
		return false
	}
}

// String returns the wire representation of the role
func (r Role) String() string {
	return string(r)
}

// ParseRole parses a wire value into a Role, case-insensitively
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("unknown account type %q", s)
	}
	return r, nil
}

// Record is a campus user as returned by the API.
// Points is set for students only.
type Record struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Role         Role   `json:"type"`
	Name         string `json:"name"`
	MobileNumber string `json:"mobileNumber"`
	Department   string `json:"department"`
	Gender       string `json:"gender"`
	DateOfBirth  string `json:"dateOfBirth"`
	Points       *int   `json:"points,omitempty"`
}

// PointsValue returns the student's points, treating absent as zero
func (r Record) PointsValue() int {
	if r.Points == nil {
		return 0
	}
	return *r.Points
}

// Validate checks a record decoded from the API before it is trusted as
// session state
func (r Record) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return errors.NewMalformedResponseError(fmt.Errorf("user record has no id"))
	}
	if strings.TrimSpace(r.Email) == "" {
		return errors.NewMalformedResponseError(fmt.Errorf("user record has no email"))
	}
	if !r.Role.Valid() {
		return errors.NewMalformedResponseError(fmt.Errorf("unknown account type %q", r.Role))
	}
	return nil
}

// RegisterInput is a new-account payload. The tags mirror the registration
// form rules: everything required, email format, password at least six
// characters, mobile number exactly ten digits.
type RegisterInput struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=6"`
	Type         Role   `json:"type"`
	Name         string `json:"name" validate:"required"`
	DateOfBirth  string `json:"dateOfBirth" validate:"required"`
	Gender       string `json:"gender" validate:"required,oneof=male female other"`
	MobileNumber string `json:"mobileNumber" validate:"required,len=10,number"`
	Department   string `json:"department" validate:"required"`
}

// ProfileUpdate carries the mutable profile attributes. Zero-valued fields
// are omitted from the request so the server keeps the prior value.
type ProfileUpdate struct {
	Name         string `json:"name,omitempty"`
	Email        string `json:"email,omitempty" validate:"omitempty,email"`
	MobileNumber string `json:"mobileNumber,omitempty" validate:"omitempty,len=10,number"`
	Department   string `json:"department,omitempty"`
}

// Empty reports whether the update would change nothing
func (p ProfileUpdate) Empty() bool {
	return p.Name == "" && p.Email == "" && p.MobileNumber == "" && p.Department == ""
}

var validate = validator.New()

// Validate checks the registration payload against the form rules and maps
// failures into a field-level validation error
func (in RegisterInput) Validate() error {
	if err := validate.Struct(in); err != nil {
		return fieldError(err)
	}
	if in.Type != "" && !in.Type.Valid() {
		return errors.NewValidationError("unknown account type").WithField("type", string(in.Type))
	}
	return nil
}

// Validate checks the profile update against the form rules
func (p ProfileUpdate) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fieldError(err)
	}
	return nil
}

func fieldError(err error) error {
	verr, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.NewValidationError(err.Error())
	}

	cerr := errors.NewValidationError("some fields are missing or invalid")
	for _, fe := range verr {
		cerr = cerr.WithField(fieldName(fe.Field()), fieldProblem(fe))
	}
	return cerr
}

func fieldName(structField string) string {
	if structField == "" {
		return structField
	}
	return strings.ToLower(structField[:1]) + structField[1:]
}

func fieldProblem(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "len", "number":
		return "must be a 10-digit number"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return "is invalid"
	}
}

// SortByRank orders students by points descending; ties break alphabetically
// by name. The slice is sorted in place.
func SortByRank(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		pi, pj := records[i].PointsValue(), records[j].PointsValue()
		if pi != pj {
			return pi > pj
		}
		return strings.ToLower(records[i].Name) < strings.ToLower(records[j].Name)
	})
}
