package types

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a persisted user record.
type User struct {
	// ID is assigned by the store on creation and never changes.
	ID primitive.ObjectID `json:"_id" bson:"_id"`

	// Name is the user's display name.
	Name string `json:"name" bson:"name"`

	// Email is unique across all users.
	Email string `json:"email" bson:"email"`

	// Age is the user's age in years.
	Age int `json:"age" bson:"age"`

	// CreatedAt is the timestamp when the record was inserted.
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`

	// UpdatedAt is refreshed on every successful update.
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// UserFields holds the caller-supplied fields of a user.
// Age is a pointer so that an absent age can be told apart from zero.
type UserFields struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required"`
	Age   *int   `json:"age" validate:"required"`
}

// Apply copies the fields onto u.
func (f UserFields) Apply(u *User) {
	u.Name = f.Name
	u.Email = f.Email
	if f.Age != nil {
		u.Age = *f.Age
	}
}
