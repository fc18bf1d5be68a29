package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ProgrammerShajib/fullstack/types"
)

const (
	UsersCollection = "users"
	emailIndexName  = "email_unique"
)

// MongoUserRepository handles persistence for users in a MongoDB collection.
type MongoUserRepository struct {
	coll *mongo.Collection
}

// NewMongoUserRepository constructs a repository over the users collection of db.
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(UsersCollection)}
}

// EnsureIndexes creates the unique email index if it is missing.
func (r *MongoUserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName(emailIndexName),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

func (r *MongoUserRepository) Create(ctx context.Context, fields types.UserFields) (types.User, error) {
	if err := ValidateFields(fields); err != nil {
		return types.User{}, err
	}

	ts := now()
	user := types.User{
		ID:        primitive.NewObjectID(),
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	fields.Apply(&user)

	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return types.User{}, ErrDuplicate
		}
		return types.User{}, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

func (r *MongoUserRepository) List(ctx context.Context) ([]types.User, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}

	users := make([]types.User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

func (r *MongoUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (types.User, error) {
	var user types.User
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&user)
	if err != nil {
		return types.User{}, mapSingleResultErr("find user", err)
	}
	return user, nil
}

func (r *MongoUserRepository) Update(ctx context.Context, id primitive.ObjectID, fields types.UserFields) (types.User, error) {
	if err := ValidateFields(fields); err != nil {
		return types.User{}, err
	}

	// Pipeline form so updatedAt can move past its stored value when the
	// clock has not advanced a full millisecond.
	update := mongo.Pipeline{{{Key: "$set", Value: bson.D{
		{Key: "name", Value: bson.D{{Key: "$literal", Value: fields.Name}}},
		{Key: "email", Value: bson.D{{Key: "$literal", Value: fields.Email}}},
		{Key: "age", Value: *fields.Age},
		{Key: "updatedAt", Value: bson.D{{Key: "$max", Value: bson.A{
			now(),
			bson.D{{Key: "$add", Value: bson.A{"$updatedAt", 1}}},
		}}}},
	}}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user types.User
	err := r.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, update, opts).Decode(&user)
	if err != nil {
		return types.User{}, mapSingleResultErr("update user", err)
	}
	return user, nil
}

func (r *MongoUserRepository) Delete(ctx context.Context, id primitive.ObjectID) (types.User, error) {
	var user types.User
	err := r.coll.FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&user)
	if err != nil {
		return types.User{}, mapSingleResultErr("delete user", err)
	}
	return user, nil
}

func mapSingleResultErr(op string, err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicate
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
