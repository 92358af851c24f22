package domain

import (
	"fmt"
	"strings"
)

type UserID string

type User struct {
	ID            UserID `json:"id"`
	UserID        string `json:"userId"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	Role          Role   `json:"role"`
	ContactNumber string `json:"contactNumber"`
	Gender        string `json:"gender"`
}

func (u User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return string(u.ID)
	}
	return name
}

type UserPage struct {
	Users []User
	Page  int
	Limit int
	Total int
}

// PageCount is the number of pages needed for Total at Limit per page.
func (p UserPage) PageCount() int {
	if p.Limit <= 0 || p.Total <= 0 {
		return 0
	}
	return (p.Total + p.Limit - 1) / p.Limit
}

// FieldChange is one edited field, keyed by its remote field name.
type FieldChange struct {
	Field string
	Value string
}

// UserPatch lists the fields that differ between two versions of a user,
// in a stable field order.
type UserPatch []FieldChange

func (p UserPatch) Empty() bool {
	return len(p) == 0
}

func (p UserPatch) Fields() []string {
	fields := make([]string, 0, len(p))
	for _, change := range p {
		fields = append(fields, change.Field)
	}
	return fields
}

// DiffUsers compares the editable fields of original and edited.
func DiffUsers(original, edited User) UserPatch {
	pairs := []struct {
		field  string
		before string
		after  string
	}{
		{"firstName", original.FirstName, edited.FirstName},
		{"lastName", original.LastName, edited.LastName},
		{"email", original.Email, edited.Email},
		{"role", string(original.Role), string(edited.Role)},
		{"contactNumber", original.ContactNumber, edited.ContactNumber},
		{"gender", original.Gender, edited.Gender},
	}

	patch := UserPatch{}
	for _, pair := range pairs {
		if pair.before != pair.after {
			patch = append(patch, FieldChange{Field: pair.field, Value: pair.after})
		}
	}
	return patch
}

// ApplyField sets one editable field by its remote name.
func (u *User) ApplyField(field, value string) error {
	switch field {
	case "firstName":
		u.FirstName = value
	case "lastName":
		u.LastName = value
	case "email":
		u.Email = value
	case "role":
		u.Role = ParseRole(value)
	case "contactNumber":
		u.ContactNumber = value
	case "gender":
		u.Gender = value
	default:
		return fmt.Errorf("unknown user field %q", field)
	}
	return nil
}
