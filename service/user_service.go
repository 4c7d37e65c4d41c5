package service

import (
	"context"
	"fmt"

	"xperiencia/events"
	"xperiencia/models"
)

// userService implements the UserService interface
type userService struct {
	uowFactory UnitOfWorkFactory
}

// NewUserService creates a new user service
func NewUserService(uowFactory UnitOfWorkFactory) UserService {
	return &userService{
		uowFactory: uowFactory,
	}
}

// Register creates a new user. Email uniqueness is checked here and backed by
// the database unique index.
func (s *userService) Register(ctx context.Context, name, email string) (*models.User, error) {
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	existing, err := uow.UserRepository().GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}
	if existing != nil {
		return nil, models.ErrEmailTaken
	}

	user, err := uow.UserRepository().Create(ctx, name, email)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	uow.EventBus().Publish(events.UserCreatedEvent{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return user, nil
}

// GetUser retrieves a user by id
func (s *userService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, models.ErrUserNotFound
	}

	return user, nil
}

// GetUserByEmail retrieves a user by email
func (s *userService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	if user == nil {
		return nil, models.ErrUserNotFound
	}

	return user, nil
}

// ListUsers returns all users
func (s *userService) ListUsers(ctx context.Context) ([]*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	users, err := uow.UserRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// UpdateUser overwrites the user record in full
func (s *userService) UpdateUser(ctx context.Context, user *models.User) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	// The new email must not belong to a different user
	existing, err := uow.UserRepository().GetByEmail(ctx, user.Email)
	if err != nil {
		return fmt.Errorf("failed to check existing email: %w", err)
	}
	if existing != nil && existing.ID != user.ID {
		return models.ErrEmailTaken
	}

	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// DeleteUser removes a user and cascades to their bets and reflections in a
// single transaction. The cascade is enforced here, not by the schema.
func (s *userService) DeleteUser(ctx context.Context, id int64) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return models.ErrUserNotFound
	}

	bets, err := uow.BetRepository().GetByUser(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get user bets: %w", err)
	}
	reflections, err := uow.ReflectionRepository().GetByUser(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get user reflections: %w", err)
	}

	if err := uow.BetRepository().DeleteByUser(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user bets: %w", err)
	}
	if err := uow.ReflectionRepository().DeleteByUser(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user reflections: %w", err)
	}
	if err := uow.UserRepository().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	uow.EventBus().Publish(events.UserDeletedEvent{
		UserID:             id,
		BetsDeleted:        len(bets),
		ReflectionsDeleted: len(reflections),
	})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
