package store

import "go.mongodb.org/mongo-driver/bson/primitive"

// ParseID converts a raw path identifier into an ObjectID.
// The raw value must be exactly 24 hex characters. It never touches the
// database.
func ParseID(raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return id, nil
}
