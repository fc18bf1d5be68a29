package store

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ProgrammerShajib/fullstack/types"
)

// MemoryUserRepository keeps users in process memory.
// Records are returned in insertion order.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	order []primitive.ObjectID
	users map[primitive.ObjectID]types.User
}

// NewMemoryUserRepository constructs an empty in-process repository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users: make(map[primitive.ObjectID]types.User),
	}
}

func (r *MemoryUserRepository) Create(ctx context.Context, fields types.UserFields) (types.User, error) {
	if err := ValidateFields(fields); err != nil {
		return types.User{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emailTaken(fields.Email, primitive.NilObjectID) {
		return types.User{}, ErrDuplicate
	}

	ts := now()
	user := types.User{
		ID:        primitive.NewObjectID(),
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	fields.Apply(&user)

	r.users[user.ID] = user
	r.order = append(r.order, user.ID)
	return user, nil
}

func (r *MemoryUserRepository) List(ctx context.Context) ([]types.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]types.User, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.users[id])
	}
	return result, nil
}

func (r *MemoryUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (types.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return types.User{}, ErrNotFound
	}
	return user, nil
}

func (r *MemoryUserRepository) Update(ctx context.Context, id primitive.ObjectID, fields types.UserFields) (types.User, error) {
	if err := ValidateFields(fields); err != nil {
		return types.User{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return types.User{}, ErrNotFound
	}
	if r.emailTaken(fields.Email, id) {
		return types.User{}, ErrDuplicate
	}

	ts := now()
	if !ts.After(user.UpdatedAt) {
		ts = user.UpdatedAt.Add(time.Millisecond)
	}
	fields.Apply(&user)
	user.UpdatedAt = ts

	r.users[id] = user
	return user, nil
}

func (r *MemoryUserRepository) Delete(ctx context.Context, id primitive.ObjectID) (types.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return types.User{}, ErrNotFound
	}
	delete(r.users, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return user, nil
}

// emailTaken must be called with r.mu held.
func (r *MemoryUserRepository) emailTaken(email string, except primitive.ObjectID) bool {
	for id, user := range r.users {
		if id != except && user.Email == email {
			return true
		}
	}
	return false
}
