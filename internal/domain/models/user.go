// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PasswordMask replaces the stored password hash in every User value
// handed back to callers. The hash never leaves the store layer.
const PasswordMask = "********"

// User is the root document in the users collection. Orders are embedded;
// they have no identity outside their parent user.
//
// JSON names are the public API contract; BSON names follow the
// snake_case convention used across our collections.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID   int64              `bson:"user_id" json:"userId"`
	Username string             `bson:"username" json:"username"`
	Password string             `bson:"password" json:"password"`
	FullName FullName           `bson:"full_name" json:"fullName"`
	Age      int                `bson:"age" json:"age"`
	Email    string             `bson:"email" json:"email"`
	IsActive bool               `bson:"is_active" json:"isActive"`
	Hobbies  []string           `bson:"hobbies" json:"hobbies"`
	Address  Address            `bson:"address" json:"address"`
	Orders   []Order            `bson:"orders" json:"orders"`

	DateCreated  time.Time  `bson:"date_created" json:"dateCreated"`
	CreatedBy    string     `bson:"created_by" json:"createdBy"`
	DateModified *time.Time `bson:"date_modified,omitempty" json:"dateModified,omitempty"`
	ModifiedBy   *string    `bson:"modified_by,omitempty" json:"modifiedBy,omitempty"`
	IsDeleted    bool       `bson:"is_deleted" json:"isDeleted"`
}

// FullName holds the user's given and family name.
type FullName struct {
	FirstName string `bson:"first_name" json:"firstName"`
	LastName  string `bson:"last_name" json:"lastName"`
}

// Address is the user's postal address.
type Address struct {
	Street  string `bson:"street" json:"street"`
	City    string `bson:"city" json:"city"`
	Country string `bson:"country" json:"country"`
}

// Order is one purchased line item embedded on a User.
type Order struct {
	ProductName string  `bson:"product_name" json:"productName"`
	Price       float64 `bson:"price" json:"price"`
	Quantity    int     `bson:"quantity" json:"quantity"`
}
