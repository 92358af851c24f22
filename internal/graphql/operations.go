package graphql

import (
	"fmt"

	"github.com/bnema/portal-cli/internal/domain"
	"github.com/go-playground/validator/v10"
)

// Remote operation fields.
const (
	FieldLogin          = "AUTH_SVC_AUTH_SVC_login"
	FieldRegistration   = "AUTH_SVC_AUTH_SVC_registration"
	FieldOTPVerify      = "AUTH_SVC_AUTH_SVC_otpVerify"
	FieldLogout         = "AUTH_SVC_AUTH_SVC_logout"
	FieldSessionByID    = "AUTH_SVC_AUTH_SVC_getSessionById"
	FieldUpdateUser     = "AUTH_SVC_AUTH_SVC_updateUser"
	FieldDeleteUser     = "AUTH_SVC_AUTH_SVC_deleteUser"
	FieldUserByID       = "USER_SVC_userService_getUserById"
	FieldUsers          = "USER_SVC_userService_getUsers"
	userSelectionFields = "id userId firstName lastName email role contactNumber gender"
)

var resultSelection = []string{"error", "message", "status"}

var validate = validator.New()

// Operation is a typed remote call. Its struct tags drive validation.
type Operation interface {
	Document() Document
}

// Build validates op and renders it as a query document.
func Build(op Operation) (string, error) {
	if err := validate.Struct(op); err != nil {
		return "", fmt.Errorf("%w for %s: %w", domain.ErrInvalidInput, op.Document().Field, err)
	}

	return op.Document().Render()
}

type LoginInput struct {
	UserName string `validate:"required"`
	PassWord string `validate:"required"`
}

func (in LoginInput) Document() Document {
	return Document{
		Kind:  KindMutation,
		Field: FieldLogin,
		Arguments: []Argument{
			String("userName", in.UserName),
			String("passWord", in.PassWord),
		},
		Selection: []string{"error", "token", "message", "status", "userId", "role"},
	}
}

type RegistrationInput struct {
	ConfirmPassword string `validate:"required,eqfield=PassWord"`
	ContactNumber   string `validate:"required"`
	Email           string `validate:"required,email"`
	FirstName       string `validate:"required"`
	Gender          string `validate:"required"`
	LastName        string `validate:"required"`
	PassWord        string `validate:"required,min=6"`
	UserName        string `validate:"required"`
}

func (in RegistrationInput) Document() Document {
	return Document{
		Kind:  KindMutation,
		Field: FieldRegistration,
		Arguments: []Argument{
			String("confirmPassword", in.ConfirmPassword),
			String("contactNumber", in.ContactNumber),
			String("email", in.Email),
			String("firstName", in.FirstName),
			String("gender", in.Gender),
			String("lastName", in.LastName),
			String("passWord", in.PassWord),
			String("userName", in.UserName),
		},
		Selection: []string{"error", "id", "message", "status"},
	}
}

type OTPVerifyInput struct {
	ID  string `validate:"required"`
	OTP int    `validate:"gte=0,lte=999999"`
}

func (in OTPVerifyInput) Document() Document {
	return Document{
		Kind:      KindMutation,
		Field:     FieldOTPVerify,
		Arguments: []Argument{String("id", in.ID), Int("otp", in.OTP)},
		Selection: resultSelection,
	}
}

type LogoutInput struct {
	ID string `validate:"required"`
}

func (in LogoutInput) Document() Document {
	return Document{
		Kind:      KindMutation,
		Field:     FieldLogout,
		Arguments: []Argument{String("id", in.ID)},
		Selection: resultSelection,
	}
}

type SessionByIDInput struct {
	ID string `validate:"required"`
}

func (in SessionByIDInput) Document() Document {
	return Document{
		Kind:      KindQuery,
		Field:     FieldSessionByID,
		Arguments: []Argument{String("id", in.ID)},
		Selection: append(append([]string{}, resultSelection...), "userId", "role"),
	}
}

type UserByIDInput struct {
	ID string `validate:"required"`
}

func (in UserByIDInput) Document() Document {
	return Document{
		Kind:      KindQuery,
		Field:     FieldUserByID,
		Arguments: []Argument{String("id", in.ID)},
		Selection: append(append([]string{}, resultSelection...), "user { "+userSelectionFields+" }"),
	}
}

type UsersInput struct {
	Page   int `validate:"gte=1"`
	Limit  int `validate:"gte=1,lte=100"`
	Search string
}

func (in UsersInput) Document() Document {
	return Document{
		Kind:  KindQuery,
		Field: FieldUsers,
		Arguments: []Argument{
			Int("page", in.Page),
			Int("limit", in.Limit),
			String("search", in.Search),
		},
		Selection: append(append([]string{}, resultSelection...), "total", "users { "+userSelectionFields+" }"),
	}
}

type FieldUpdate struct {
	Field string `validate:"oneof=firstName lastName email role contactNumber gender"`
	Value string
}

// UpdateUserInput sends only the changed fields of a user.
type UpdateUserInput struct {
	ID      string        `validate:"required"`
	Changes []FieldUpdate `validate:"required,min=1,dive"`
}

func NewUpdateUserInput(id domain.UserID, patch domain.UserPatch) UpdateUserInput {
	changes := make([]FieldUpdate, 0, len(patch))
	for _, change := range patch {
		changes = append(changes, FieldUpdate{Field: change.Field, Value: change.Value})
	}
	return UpdateUserInput{ID: string(id), Changes: changes}
}

func (in UpdateUserInput) Document() Document {
	args := make([]Argument, 0, len(in.Changes)+1)
	args = append(args, String("id", in.ID))
	for _, change := range in.Changes {
		args = append(args, String(change.Field, change.Value))
	}

	return Document{
		Kind:      KindMutation,
		Field:     FieldUpdateUser,
		Arguments: args,
		Selection: resultSelection,
	}
}

type DeleteUserInput struct {
	ID string `validate:"required"`
}

func (in DeleteUserInput) Document() Document {
	return Document{
		Kind:      KindMutation,
		Field:     FieldDeleteUser,
		Arguments: []Argument{String("id", in.ID)},
		Selection: resultSelection,
	}
}
