package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ProgrammerShajib/fullstack/types"
)

func TestMemoryUserRepositoryLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	created, err := repo.Create(ctx, types.UserFields{Name: "Ann", Email: "ann@x.com", Age: intPtr(30)})
	require.NoError(t, err)
	assert.False(t, created.ID.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	fetched, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, fetched)

	updated, err := repo.Update(ctx, created.ID, types.UserFields{Name: "Ann B", Email: "ann@x.com", Age: intPtr(31)})
	require.NoError(t, err)
	assert.Equal(t, "Ann B", updated.Name)
	assert.Equal(t, 31, updated.Age)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	deleted, err := repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, deleted)

	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryUserRepositoryRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	_, err := repo.Create(ctx, types.UserFields{Name: "Ann", Email: "ann@x.com", Age: intPtr(30)})
	require.NoError(t, err)

	_, err = repo.Create(ctx, types.UserFields{Name: "Other Ann", Email: "ann@x.com", Age: intPtr(40)})
	assert.ErrorIs(t, err, ErrDuplicate)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestMemoryUserRepositoryUpdateDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	_, err := repo.Create(ctx, types.UserFields{Name: "Ann", Email: "ann@x.com", Age: intPtr(30)})
	require.NoError(t, err)
	bob, err := repo.Create(ctx, types.UserFields{Name: "Bob", Email: "bob@x.com", Age: intPtr(25)})
	require.NoError(t, err)

	_, err = repo.Update(ctx, bob.ID, types.UserFields{Name: "Bob", Email: "ann@x.com", Age: intPtr(25)})
	assert.ErrorIs(t, err, ErrDuplicate)

	// keeping its own email is not a collision
	_, err = repo.Update(ctx, bob.ID, types.UserFields{Name: "Bobby", Email: "bob@x.com", Age: intPtr(26)})
	assert.NoError(t, err)
}

func TestMemoryUserRepositoryValidation(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	_, err := repo.Create(ctx, types.UserFields{Name: "Ann", Email: "ann@x.com"})
	assert.ErrorIs(t, err, ErrValidation)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
	assert.NotNil(t, users)

	created, err := repo.Create(ctx, types.UserFields{Name: "Ann", Email: "ann@x.com", Age: intPtr(30)})
	require.NoError(t, err)

	_, err = repo.Update(ctx, created.ID, types.UserFields{Email: "ann@x.com", Age: intPtr(30)})
	assert.ErrorIs(t, err, ErrValidation)

	fetched, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann", fetched.Name)
}

func TestMemoryUserRepositoryMissingIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()
	missing := primitive.NewObjectID()

	_, err := repo.GetByID(ctx, missing)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.Update(ctx, missing, types.UserFields{Name: "Ann", Email: "ann@x.com", Age: intPtr(30)})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.Delete(ctx, missing)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryUserRepositoryListOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	var ids []primitive.ObjectID
	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		user, err := repo.Create(ctx, types.UserFields{Name: email, Email: email, Age: intPtr(20)})
		require.NoError(t, err)
		ids = append(ids, user.ID)
	}
	_, err := repo.Delete(ctx, ids[1])
	require.NoError(t, err)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, ids[0], users[0].ID)
	assert.Equal(t, ids[2], users[1].ID)
}
