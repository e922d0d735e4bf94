package userstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/dalemusser/userhub/internal/app/system/normalize"
	"github.com/dalemusser/userhub/internal/domain/models"
)

var (
	// ErrNoIdentifier is returned by Exists when neither a user id nor a
	// username is supplied.
	ErrNoIdentifier = errors.New("either a user id or a username must be provided")

	// ErrDuplicateUser is returned when an insert trips the unique index on
	// user_id or username. The existence check and the insert are not atomic,
	// so a losing racer lands here instead of silently succeeding.
	ErrDuplicateUser = errors.New("a user with this user id or username already exists")
)

type Store struct {
	c          *mongo.Collection
	bcryptCost int
}

func New(db *mongo.Database, bcryptCost int) *Store {
	return &Store{c: db.Collection("users"), bcryptCost: bcryptCost}
}

// Exists reports whether any stored user matches the given user id or
// username (logical OR). Pass nil for an identifier that is not part of
// the check.
func (s *Store) Exists(ctx context.Context, userID *int64, username *string) (bool, error) {
	if userID == nil && username == nil {
		return false, ErrNoIdentifier
	}

	or := bson.A{}
	if userID != nil {
		or = append(or, bson.M{"user_id": *userID})
	}
	if username != nil {
		or = append(or, bson.M{"username": *username})
	}

	err := s.c.FindOne(ctx, bson.M{"$or": or}).Err()
	if err == nil {
		return true, nil
	}
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	return false, err
}

// Insert persists a new validated user: names are capitalized, the password
// is bcrypt-hashed before the write, and the returned value carries the
// password mask rather than the hash. Callers are expected to have checked
// Exists first; the unique indexes turn a lost race into ErrDuplicateUser.
func (s *Store) Insert(ctx context.Context, u models.User) (models.User, error) {
	u.FullName.FirstName = normalize.Capitalize(u.FullName.FirstName)
	u.FullName.LastName = normalize.Capitalize(u.FullName.LastName)

	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), s.bcryptCost)
	if err != nil {
		return models.User{}, err
	}
	u.Password = string(hash)

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateUser
		}
		return models.User{}, err
	}

	u.Password = models.PasswordMask
	return u, nil
}

// GetByUserID loads a user by its numeric user id.
// Returns mongo.ErrNoDocuments when absent.
func (s *Store) GetByUserID(ctx context.Context, userID int64) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"user_id": userID}).Decode(&u); err != nil {
		return models.User{}, err
	}
	u.Password = models.PasswordMask
	return u, nil
}

// GetAll returns every stored user with passwords masked.
func (s *Store) GetAll(ctx context.Context) ([]models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Password = models.PasswordMask
	}
	return users, nil
}

// ReplaceByUserID replaces the whole document for the given user id,
// keeping the stored _id, re-normalizing names, re-hashing the password,
// and stamping the modification fields. Returns the post-update document.
// Returns mongo.ErrNoDocuments when no user matched.
func (s *Store) ReplaceByUserID(ctx context.Context, userID int64, u models.User) (models.User, error) {
	var existing models.User
	if err := s.c.FindOne(ctx, bson.M{"user_id": userID}).Decode(&existing); err != nil {
		return models.User{}, err
	}

	u.ID = existing.ID
	u.FullName.FirstName = normalize.Capitalize(u.FullName.FirstName)
	u.FullName.LastName = normalize.Capitalize(u.FullName.LastName)

	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), s.bcryptCost)
	if err != nil {
		return models.User{}, err
	}
	u.Password = string(hash)

	now := time.Now().UTC()
	u.DateModified = &now
	if u.ModifiedBy == nil {
		u.ModifiedBy = &u.CreatedBy
	}

	if _, err := s.c.ReplaceOne(ctx, bson.M{"_id": existing.ID}, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateUser
		}
		return models.User{}, err
	}

	u.Password = models.PasswordMask
	return u, nil
}

// AppendOrder atomically pushes one order onto the orders array of the
// matching user. The updated document is not returned.
// Returns mongo.ErrNoDocuments when no user matched.
func (s *Store) AppendOrder(ctx context.Context, userID int64, order models.Order) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$push": bson.M{"orders": order}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
