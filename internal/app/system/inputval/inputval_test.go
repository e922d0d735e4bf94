package inputval_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/dalemusser/userhub/internal/app/system/inputval"
)

const validUserJSON = `{
	"userId": 7,
	"username": "  jdoe  ",
	"password": "hunter2",
	"fullName": {"firstName": "john", "lastName": "DOE"},
	"age": 34,
	"email": "JDoe@Example.com",
	"address": {"street": "1 Main St", "city": "Springfield", "country": "US"}
}`

func TestUser_ValidPayloadAppliesDefaults(t *testing.T) {
	u, err := inputval.User(json.RawMessage(validUserJSON))
	if err != nil {
		t.Fatalf("User() failed: %v", err)
	}

	if u.UserID != 7 {
		t.Errorf("UserID: got %d, want 7", u.UserID)
	}
	if u.Username != "jdoe" {
		t.Errorf("Username not trimmed: got %q", u.Username)
	}
	if u.Email != "jdoe@example.com" {
		t.Errorf("Email not lowercased: got %q", u.Email)
	}
	// Names are validated here; capitalization happens at the store.
	if u.FullName.FirstName != "john" || u.FullName.LastName != "DOE" {
		t.Errorf("FullName: got %+v", u.FullName)
	}

	// Defaults for omitted optional fields.
	if !u.IsActive {
		t.Error("IsActive should default to true")
	}
	if u.Hobbies == nil || len(u.Hobbies) != 0 {
		t.Errorf("Hobbies should default to empty, got %v", u.Hobbies)
	}
	if u.Orders == nil || len(u.Orders) != 0 {
		t.Errorf("Orders should default to empty, got %v", u.Orders)
	}
	if u.DateCreated.IsZero() {
		t.Error("DateCreated should default to now")
	}
	if u.CreatedBy != inputval.DefaultCreatedBy {
		t.Errorf("CreatedBy: got %q, want %q", u.CreatedBy, inputval.DefaultCreatedBy)
	}
	if u.IsDeleted {
		t.Error("IsDeleted should default to false")
	}
}

func TestUser_ExplicitOptionalFieldsKept(t *testing.T) {
	raw := `{
		"userId": 8,
		"username": "amica",
		"password": "pw",
		"fullName": {"firstName": "Amy", "lastName": "Carter"},
		"age": 28,
		"email": "amy@example.com",
		"isActive": false,
		"hobbies": ["chess", "running"],
		"address": {"street": "2 Oak Ave", "city": "Portland", "country": "US"},
		"orders": [{"productName": "Lamp", "price": 19.5, "quantity": 2}],
		"createdBy": "importer"
	}`

	u, err := inputval.User(json.RawMessage(raw))
	if err != nil {
		t.Fatalf("User() failed: %v", err)
	}
	if u.IsActive {
		t.Error("explicit isActive=false should be kept")
	}
	if len(u.Hobbies) != 2 || u.Hobbies[0] != "chess" {
		t.Errorf("Hobbies: got %v", u.Hobbies)
	}
	if len(u.Orders) != 1 || u.Orders[0].ProductName != "Lamp" || u.Orders[0].Quantity != 2 {
		t.Errorf("Orders: got %+v", u.Orders)
	}
	if u.CreatedBy != "importer" {
		t.Errorf("CreatedBy: got %q", u.CreatedBy)
	}
}

func TestUser_EnumeratesEveryViolation(t *testing.T) {
	raw := `{
		"username": "   ",
		"password": "pw",
		"fullName": {"firstName": "ThisFirstNameIsDefinitelyLongerThanThirtyCharacters", "lastName": "Doe"},
		"age": 30,
		"email": "not-an-email",
		"address": {"street": "1 Main St", "city": "Springfield"}
	}`

	_, err := inputval.User(json.RawMessage(raw))
	if err == nil {
		t.Fatal("expected validation failure")
	}

	var verr *inputval.Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *inputval.Error, got %T", err)
	}

	wantFields := map[string]bool{
		"userId":             false, // missing
		"username":           false, // blank after trim
		"fullName.firstName": false, // too long
		"email":              false, // bad format
		"address.country":    false, // missing
	}
	for _, fe := range verr.Fields {
		if _, ok := wantFields[fe.Field]; ok {
			wantFields[fe.Field] = true
		}
	}
	for field, seen := range wantFields {
		if !seen {
			t.Errorf("expected a violation for %q; got %+v", field, verr.Fields)
		}
	}
}

func TestUser_PriceAsStringRejected(t *testing.T) {
	raw := `{
		"userId": 9,
		"username": "bob",
		"password": "pw",
		"fullName": {"firstName": "Bob", "lastName": "Ray"},
		"age": 40,
		"email": "bob@example.com",
		"address": {"street": "3 Elm", "city": "Austin", "country": "US"},
		"orders": [{"productName": "Mug", "price": "twelve", "quantity": 1}]
	}`

	_, err := inputval.User(json.RawMessage(raw))
	if err == nil {
		t.Fatal("expected decode failure for string price")
	}
	var verr *inputval.Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *inputval.Error, got %T", err)
	}
}

func TestOrder_Valid(t *testing.T) {
	o, err := inputval.Order(json.RawMessage(`{"productName": " Desk ", "price": 120, "quantity": 1}`))
	if err != nil {
		t.Fatalf("Order() failed: %v", err)
	}
	if o.ProductName != "Desk" {
		t.Errorf("ProductName not trimmed: got %q", o.ProductName)
	}
	if o.Price != 120 || o.Quantity != 1 {
		t.Errorf("Order: got %+v", o)
	}
}

func TestOrder_QuantityBelowMinimum(t *testing.T) {
	_, err := inputval.Order(json.RawMessage(`{"productName": "Desk", "price": 120, "quantity": 0}`))
	if err == nil {
		t.Fatal("expected failure for quantity 0")
	}
	var verr *inputval.Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *inputval.Error, got %T", err)
	}
	if len(verr.Fields) != 1 || verr.Fields[0].Field != "quantity" {
		t.Errorf("violations: got %+v", verr.Fields)
	}
}

func TestOrder_MissingEverything(t *testing.T) {
	_, err := inputval.Order(json.RawMessage(`{}`))
	if err == nil {
		t.Fatal("expected failure for empty order")
	}
	var verr *inputval.Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *inputval.Error, got %T", err)
	}
	if len(verr.Fields) != 3 {
		t.Errorf("expected 3 violations (productName, price, quantity), got %+v", verr.Fields)
	}
}
