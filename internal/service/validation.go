package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/trattoria-labs/restaurant-service/internal/domain"
	apperrors "github.com/trattoria-labs/restaurant-service/pkg/util"
)

// bcrypt refuses anything longer than this many bytes.
const maxPasswordBytes = 72

const (
	msgName            = "Name minimum length 3 characters."
	msgUsername        = "Username must be unique and minimum length 3 characters."
	msgPassword        = "Password minimum length 5 characters."
	msgPasswordTooLong = "Password maximum length 72 bytes."
	msgRole            = "Must be either employee or client"
)

// userMessages and productMessages map "field.tag", or just "field", to the
// message shown to clients.
var userMessages = map[string]string{
	"name":               msgName,
	"username":           msgUsername,
	"password":           msgPassword,
	"password.bcryptlen": msgPasswordTooLong,
	"role":               msgRole,
}

var productMessages = map[string]string{
	"name":           "Name is required.",
	"price.required": "Price is required.",
	"price.gte":      "Price must not be negative.",
	"category":       "Category is required.",
	"vegetarian":     "Vegetarian is required.",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("bcryptlen", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= maxPasswordBytes
	}); err != nil {
		panic(err)
	}
	return v
}

type signUpInput struct {
	Name     string `json:"name" validate:"min=3"`
	Username string `json:"username" validate:"min=3"`
	Password string `json:"password" validate:"min=5,bcryptlen"`
	Role     string `json:"role" validate:"oneof=employee client"`
}

type userUpdateInput struct {
	Name     *string `json:"name" validate:"omitnil,min=3"`
	Username *string `json:"username" validate:"omitnil,min=3"`
	Password *string `json:"password" validate:"omitnil,min=5,bcryptlen"`
	Role     *string `json:"role" validate:"omitnil,oneof=employee client"`
}

type productCreateInput struct {
	Name       string   `json:"name" validate:"required"`
	Price      *float64 `json:"price" validate:"required,gte=0"`
	Category   string   `json:"category" validate:"required"`
	Vegetarian *bool    `json:"vegetarian" validate:"required"`
}

type productUpdateInput struct {
	Name     *string  `json:"name" validate:"omitnil,min=1"`
	Price    *float64 `json:"price" validate:"omitnil,gte=0"`
	Category *string  `json:"category" validate:"omitnil,min=1"`
}

type fieldErrors []apperrors.FieldError

func (f *fieldErrors) add(field, message string) {
	*f = append(*f, apperrors.FieldError{Field: field, Message: message})
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return apperrors.NewValidationError(f)
}

// check runs the struct rules and turns failures into client field errors.
func check(in any, messages map[string]string) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.NewInternalError(err)
	}

	var errs fieldErrors
	for _, fe := range verrs {
		field := fe.Field()
		msg, ok := messages[field+"."+fe.Tag()]
		if !ok {
			msg = messages[field]
		}
		errs.add(field, msg)
	}
	return errs.err()
}

func normalizeUsername(username string) string {
	return strings.TrimSpace(username)
}

func normalizeRole(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// signUpRole defaults an empty role to client. Only sign-up does this.
func signUpRole(raw string) string {
	if role := normalizeRole(raw); role != "" {
		return role
	}
	return string(domain.RoleClient)
}
