// Package inputval validates and normalizes inbound user and order payloads
// against a declarative schema before anything reaches the store.
//
// Validation is synchronous and side-effect free. Every violated constraint
// is reported, not just the first, and defaults for optional fields are
// applied here so that validated output is always a complete entity.
package inputval

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/dalemusser/userhub/internal/app/system/normalize"
	"github.com/dalemusser/userhub/internal/domain/models"
)

// DefaultCreatedBy is the placeholder recorded when a payload does not
// name its creator.
const DefaultCreatedBy = "Admin"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON names so errors match the wire contract.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldError names one violated constraint on one field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error carries every field violation found in a payload.
type Error struct {
	Fields []FieldError `json:"fields"`
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "invalid payload: " + strings.Join(msgs, "; ")
}

// Pointer fields distinguish an absent value from a zero value, so
// "required" means present rather than non-zero and defaults only apply
// when the field was truly omitted.

type fullNameInput struct {
	FirstName *string `json:"firstName" validate:"required,min=1,max=30"`
	LastName  *string `json:"lastName" validate:"required,min=1,max=30"`
}

type addressInput struct {
	Street  *string `json:"street" validate:"required,min=1"`
	City    *string `json:"city" validate:"required,min=1"`
	Country *string `json:"country" validate:"required,min=1"`
}

type orderInput struct {
	ProductName *string  `json:"productName" validate:"required,min=1"`
	Price       *float64 `json:"price" validate:"required"`
	Quantity    *int     `json:"quantity" validate:"required,min=1"`
}

type userInput struct {
	UserID       *int64         `json:"userId" validate:"required"`
	Username     *string        `json:"username" validate:"required,min=1"`
	Password     *string        `json:"password" validate:"required,min=1"`
	FullName     *fullNameInput `json:"fullName" validate:"required"`
	Age          *int           `json:"age" validate:"required"`
	Email        *string        `json:"email" validate:"required,email"`
	IsActive     *bool          `json:"isActive"`
	Hobbies      []string       `json:"hobbies"`
	Address      *addressInput  `json:"address" validate:"required"`
	Orders       []orderInput   `json:"orders" validate:"omitempty,dive"`
	DateCreated  *time.Time     `json:"dateCreated"`
	CreatedBy    *string        `json:"createdBy"`
	DateModified *time.Time     `json:"dateModified"`
	ModifiedBy   *string        `json:"modifiedBy"`
	IsDeleted    *bool          `json:"isDeleted"`
}

// User validates a raw user payload and returns the complete, normalized
// entity. On failure the returned error is a *Error listing every violation.
func User(raw json.RawMessage) (models.User, error) {
	var in userInput
	if err := json.Unmarshal(raw, &in); err != nil {
		return models.User{}, decodeError(err)
	}
	in.trim()

	if err := validate.Struct(&in); err != nil {
		return models.User{}, collectViolations(err)
	}

	u := models.User{
		UserID:   *in.UserID,
		Username: *in.Username,
		Password: *in.Password,
		FullName: models.FullName{
			FirstName: *in.FullName.FirstName,
			LastName:  *in.FullName.LastName,
		},
		Age:   *in.Age,
		Email: *in.Email,
		Address: models.Address{
			Street:  *in.Address.Street,
			City:    *in.Address.City,
			Country: *in.Address.Country,
		},
		IsActive:     true,
		Hobbies:      []string{},
		Orders:       []models.Order{},
		DateCreated:  time.Now().UTC(),
		CreatedBy:    DefaultCreatedBy,
		DateModified: in.DateModified,
		ModifiedBy:   in.ModifiedBy,
	}

	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
	if in.Hobbies != nil {
		u.Hobbies = in.Hobbies
	}
	for _, o := range in.Orders {
		u.Orders = append(u.Orders, models.Order{
			ProductName: *o.ProductName,
			Price:       *o.Price,
			Quantity:    *o.Quantity,
		})
	}
	if in.DateCreated != nil {
		u.DateCreated = *in.DateCreated
	}
	if in.CreatedBy != nil && *in.CreatedBy != "" {
		u.CreatedBy = *in.CreatedBy
	}
	if in.IsDeleted != nil {
		u.IsDeleted = *in.IsDeleted
	}
	return u, nil
}

// Order validates a raw order payload for the order-append operation.
func Order(raw json.RawMessage) (models.Order, error) {
	var in orderInput
	if err := json.Unmarshal(raw, &in); err != nil {
		return models.Order{}, decodeError(err)
	}
	trimPtr(in.ProductName)

	if err := validate.Struct(&in); err != nil {
		return models.Order{}, collectViolations(err)
	}
	return models.Order{
		ProductName: *in.ProductName,
		Price:       *in.Price,
		Quantity:    *in.Quantity,
	}, nil
}

// trim normalizes string fields in place. Passwords are left untouched;
// surrounding whitespace there is significant.
func (in *userInput) trim() {
	if in.Username != nil {
		*in.Username = normalize.Username(*in.Username)
	}
	if in.Email != nil {
		*in.Email = normalize.Email(*in.Email)
	}
	if in.FullName != nil {
		trimPtr(in.FullName.FirstName)
		trimPtr(in.FullName.LastName)
	}
	if in.Address != nil {
		trimPtr(in.Address.Street)
		trimPtr(in.Address.City)
		trimPtr(in.Address.Country)
	}
	for i := range in.Orders {
		trimPtr(in.Orders[i].ProductName)
	}
}

func trimPtr(p *string) {
	if p != nil {
		*p = strings.TrimSpace(*p)
	}
}

// decodeError converts a JSON decoding failure into a *Error so malformed
// payloads (e.g. price sent as a string) are rejected like any other
// validation failure, before the store is touched.
func decodeError(err error) *Error {
	if ute, ok := err.(*json.UnmarshalTypeError); ok {
		field := ute.Field
		if field == "" {
			field = "payload"
		}
		return &Error{Fields: []FieldError{{
			Field:   field,
			Message: fmt.Sprintf("%s should be a %s", label(field), ute.Type.Kind()),
		}}}
	}
	return &Error{Fields: []FieldError{{
		Field:   "payload",
		Message: "payload is not valid JSON",
	}}}
}

func collectViolations(err error) *Error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return &Error{Fields: []FieldError{{Field: "payload", Message: err.Error()}}}
	}
	out := &Error{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		field := fieldPath(fe.Namespace())
		out.Fields = append(out.Fields, FieldError{
			Field:   field,
			Message: messageFor(field, fe),
		})
	}
	return out
}

// fieldPath strips the root struct name from a namespace like
// "userInput.fullName.firstName".
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// labels maps JSON field names to the names used in error messages.
var labels = map[string]string{
	"userId":      "User ID",
	"username":    "Username",
	"password":    "Password",
	"firstName":   "FirstName",
	"lastName":    "LastName",
	"age":         "Age",
	"email":       "Email",
	"street":      "Street",
	"city":        "City",
	"country":     "Country",
	"productName": "ProductName",
	"price":       "Price",
	"quantity":    "Quantity",
}

func label(path string) string {
	leaf := path
	if i := strings.LastIndex(path, "."); i >= 0 {
		leaf = path[i+1:]
	}
	// Array indices ("orders[0].price") reduce to the leaf name too.
	if i := strings.LastIndex(leaf, "]."); i >= 0 {
		leaf = leaf[i+2:]
	}
	if l, ok := labels[leaf]; ok {
		return l
	}
	return leaf
}

func messageFor(path string, fe validator.FieldError) string {
	l := label(path)
	switch fe.Tag() {
	case "required":
		return l + " is required"
	case "email":
		return "Invalid email"
	case "max":
		return fmt.Sprintf("%s should not be more than %s characters", l, fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			// Trimmed-empty strings land here.
			return l + " is required"
		}
		return fmt.Sprintf("%s must be at least %s", l, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", l, fe.Tag())
	}
}
