package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ProgrammerShajib/fullstack/internal/store"
	"github.com/ProgrammerShajib/fullstack/types"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, fields types.UserFields) (types.User, error)
	List(ctx context.Context) ([]types.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (types.User, error)
	Update(ctx context.Context, id primitive.ObjectID, fields types.UserFields) (types.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) (types.User, error)
}

// CreateUserInput is the payload accepted by Create.
type CreateUserInput struct {
	types.UserFields
}

func (in CreateUserInput) Validate() error {
	return store.ValidateFields(in.UserFields)
}

// UpdateUserInput is the payload accepted by Update. All three fields are required.
type UpdateUserInput struct {
	types.UserFields
}

func (in UpdateUserInput) Validate() error {
	return store.ValidateFields(in.UserFields)
}

// UserService encapsulates user use-cases.
type UserService struct {
	repo   UserRepository
	events EventPublisher
	now    func() time.Time
}

// NewUserService builds a service. events may be nil.
func NewUserService(repo UserRepository, events EventPublisher) *UserService {
	return &UserService{
		repo:   repo,
		events: events,
		now:    time.Now,
	}
}

func (s *UserService) Create(ctx context.Context, in CreateUserInput) (types.User, error) {
	if err := in.Validate(); err != nil {
		return types.User{}, err
	}
	user, err := s.repo.Create(ctx, in.UserFields)
	if err != nil {
		return types.User{}, err
	}
	s.publish(ctx, types.UserCreated, user)
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]types.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) Get(ctx context.Context, rawID string) (types.User, error) {
	id, err := store.ParseID(rawID)
	if err != nil {
		return types.User{}, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) Update(ctx context.Context, rawID string, in UpdateUserInput) (types.User, error) {
	id, err := store.ParseID(rawID)
	if err != nil {
		return types.User{}, err
	}
	if err := in.Validate(); err != nil {
		return types.User{}, err
	}
	user, err := s.repo.Update(ctx, id, in.UserFields)
	if err != nil {
		return types.User{}, err
	}
	s.publish(ctx, types.UserUpdated, user)
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, rawID string) (types.User, error) {
	id, err := store.ParseID(rawID)
	if err != nil {
		return types.User{}, err
	}
	user, err := s.repo.Delete(ctx, id)
	if err != nil {
		return types.User{}, err
	}
	s.publish(ctx, types.UserDeleted, user)
	return user, nil
}

// publish never fails the write that triggered it.
func (s *UserService) publish(ctx context.Context, eventType types.UserEventType, user types.User) {
	if s.events == nil {
		return
	}
	event := types.UserEvent{
		Type:       eventType,
		User:       user,
		OccurredAt: s.now().UTC(),
	}
	if err := s.events.PublishUserEvent(ctx, event); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).
			Str("event", string(eventType)).
			Str("user_id", user.ID.Hex()).
			Msg("publish user event failed")
	}
}
