package userstore_test

import (
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	userstore "github.com/dalemusser/userhub/internal/app/store/users"
	"github.com/dalemusser/userhub/internal/domain/models"
	"github.com/dalemusser/userhub/internal/testutil"
)

func newStore(t *testing.T) (*userstore.Store, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return userstore.New(db, bcrypt.MinCost), testutil.NewFixtures(t, db)
}

func TestStore_Insert(t *testing.T) {
	store, f := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := testutil.NewUser(1, "jdoe")
	u.FullName = models.FullName{FirstName: "jOHN", LastName: "DOE"}

	created, err := store.Insert(ctx, u)
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	// Names are capitalized on the way in.
	if created.FullName.FirstName != "John" || created.FullName.LastName != "Doe" {
		t.Errorf("FullName: got %+v", created.FullName)
	}

	// The returned value carries the mask, never the hash or the plaintext.
	if created.Password != models.PasswordMask {
		t.Errorf("Password: got %q, want mask", created.Password)
	}

	// The stored document carries a bcrypt hash of the original password.
	var stored struct {
		Password string `bson:"password"`
	}
	err = f.DB().Collection("users").FindOne(ctx, map[string]any{"user_id": int64(1)}).Decode(&stored)
	if err != nil {
		t.Fatalf("failed to read stored doc: %v", err)
	}
	if !strings.HasPrefix(stored.Password, "$2") {
		t.Errorf("stored password is not a bcrypt hash: %q", stored.Password)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("correct-horse")); err != nil {
		t.Errorf("stored hash does not match original password: %v", err)
	}
}

func TestStore_Exists(t *testing.T) {
	store, _ := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Insert(ctx, testutil.NewUser(2, "amica")); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	id := int64(2)
	otherID := int64(99)
	name := "amica"
	otherName := "nobody"

	tests := []struct {
		label    string
		userID   *int64
		username *string
		want     bool
	}{
		{"by id", &id, nil, true},
		{"by username", nil, &name, true},
		{"either matches (OR)", &otherID, &name, true},
		{"neither matches", &otherID, &otherName, false},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, err := store.Exists(ctx, tt.userID, tt.username)
			if err != nil {
				t.Fatalf("Exists failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Exists = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStore_Exists_NoIdentifier(t *testing.T) {
	store, _ := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Exists(ctx, nil, nil); err != userstore.ErrNoIdentifier {
		t.Errorf("expected ErrNoIdentifier, got %v", err)
	}
}

func TestStore_GetByUserID_NotFound(t *testing.T) {
	store, _ := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.GetByUserID(ctx, 404); err != mongo.ErrNoDocuments {
		t.Errorf("expected ErrNoDocuments, got %v", err)
	}
}

func TestStore_GetByUserID_MasksPassword(t *testing.T) {
	store, _ := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Insert(ctx, testutil.NewUser(3, "carol")); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := store.GetByUserID(ctx, 3)
	if err != nil {
		t.Fatalf("GetByUserID failed: %v", err)
	}
	if got.Password != models.PasswordMask {
		t.Errorf("Password: got %q, want mask", got.Password)
	}
	if got.Username != "carol" {
		t.Errorf("Username: got %q", got.Username)
	}
}

func TestStore_ReplaceByUserID(t *testing.T) {
	store, _ := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Insert(ctx, testutil.NewUser(4, "dave")); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	repl := testutil.NewUser(4, "dave")
	repl.Age = 44
	repl.FullName = models.FullName{FirstName: "david", LastName: "SMITH"}

	updated, err := store.ReplaceByUserID(ctx, 4, repl)
	if err != nil {
		t.Fatalf("ReplaceByUserID failed: %v", err)
	}

	// The post-update document comes back.
	if updated.Age != 44 {
		t.Errorf("Age: got %d, want 44", updated.Age)
	}
	if updated.FullName.FirstName != "David" || updated.FullName.LastName != "Smith" {
		t.Errorf("FullName: got %+v", updated.FullName)
	}
	if updated.DateModified == nil {
		t.Error("DateModified should be stamped on replace")
	}
	if updated.Password != models.PasswordMask {
		t.Errorf("Password: got %q, want mask", updated.Password)
	}

	// Only one document remains for this user id.
	got, err := store.GetByUserID(ctx, 4)
	if err != nil {
		t.Fatalf("GetByUserID after replace failed: %v", err)
	}
	if got.Age != 44 {
		t.Errorf("persisted Age: got %d, want 44", got.Age)
	}
}

func TestStore_ReplaceByUserID_NotFound(t *testing.T) {
	store, _ := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.ReplaceByUserID(ctx, 404, testutil.NewUser(404, "ghost"))
	if err != mongo.ErrNoDocuments {
		t.Errorf("expected ErrNoDocuments, got %v", err)
	}
}

func TestStore_AppendOrder(t *testing.T) {
	store, _ := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Insert(ctx, testutil.NewUser(5, "erin")); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	first := testutil.NewOrder("Lamp", 19.5, 2)
	second := testutil.NewOrder("Desk", 120, 1)

	if err := store.AppendOrder(ctx, 5, first); err != nil {
		t.Fatalf("AppendOrder failed: %v", err)
	}
	if err := store.AppendOrder(ctx, 5, second); err != nil {
		t.Fatalf("AppendOrder failed: %v", err)
	}

	got, err := store.GetByUserID(ctx, 5)
	if err != nil {
		t.Fatalf("GetByUserID failed: %v", err)
	}
	if len(got.Orders) != 2 {
		t.Fatalf("Orders: got %d, want 2", len(got.Orders))
	}
	// Insertion order is preserved.
	if got.Orders[0].ProductName != "Lamp" || got.Orders[1].ProductName != "Desk" {
		t.Errorf("Orders out of order: %+v", got.Orders)
	}
}

func TestStore_AppendOrder_NotFound(t *testing.T) {
	store, _ := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := store.AppendOrder(ctx, 404, testutil.NewOrder("Lamp", 19.5, 1))
	if err != mongo.ErrNoDocuments {
		t.Errorf("expected ErrNoDocuments, got %v", err)
	}
}

func TestStore_GetAll_MasksPasswords(t *testing.T) {
	store, _ := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for i, name := range []string{"u1", "u2", "u3"} {
		if _, err := store.Insert(ctx, testutil.NewUser(int64(10+i), name)); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	users, err := store.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("GetAll: got %d users, want 3", len(users))
	}
	for _, u := range users {
		if u.Password != models.PasswordMask {
			t.Errorf("user %s: password %q, want mask", u.Username, u.Password)
		}
	}
}
