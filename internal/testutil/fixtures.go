package testutil

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dalemusser/userhub/internal/domain/models"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// NewUser returns a fully-populated in-memory user. The password is a
// plain fixture value; tests that need a stored document go through the
// store so hashing and masking behave as in production.
func NewUser(userID int64, username string) models.User {
	return models.User{
		UserID:   userID,
		Username: username,
		Password: "correct-horse",
		FullName: models.FullName{FirstName: "Test", LastName: "User"},
		Age:      30,
		Email:    username + "@example.com",
		IsActive: true,
		Hobbies:  []string{},
		Address: models.Address{
			Street:  "1 Test St",
			City:    "Testville",
			Country: "US",
		},
		Orders:      []models.Order{},
		DateCreated: time.Now().UTC(),
		CreatedBy:   "Admin",
	}
}

// InsertUser writes a user document directly into the users collection,
// bypassing the store. Useful for seeding read-path tests.
func (f *Fixtures) InsertUser(ctx context.Context, u models.User) models.User {
	f.t.Helper()

	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to insert test user: %v", err)
	}
	return u
}

// NewOrder returns an order fixture.
func NewOrder(product string, price float64, qty int) models.Order {
	return models.Order{ProductName: product, Price: price, Quantity: qty}
}
