package service

import (
	"context"
	"fmt"
	"time"

	"xperiencia/events"
	"xperiencia/models"
)

// reflectionService implements the ReflectionService interface
type reflectionService struct {
	uowFactory UnitOfWorkFactory
}

// NewReflectionService creates a new reflection service
func NewReflectionService(uowFactory UnitOfWorkFactory) ReflectionService {
	return &reflectionService{
		uowFactory: uowFactory,
	}
}

// RecordReflection registers a reflection for an existing user. The timestamp
// defaults to the creation time when not supplied.
func (s *reflectionService) RecordReflection(ctx context.Context, userID int64, sentiment string, recordedAt time.Time) (*models.Reflection, error) {
	if sentiment == "" {
		return nil, fmt.Errorf("sentiment is required")
	}
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, models.ErrUserNotFound
	}

	reflection := &models.Reflection{
		UserID:     userID,
		Sentiment:  sentiment,
		RecordedAt: recordedAt,
	}
	if err := uow.ReflectionRepository().Create(ctx, reflection); err != nil {
		return nil, fmt.Errorf("failed to create reflection: %w", err)
	}

	uow.EventBus().Publish(events.ReflectionRecordedEvent{
		UserID:       userID,
		ReflectionID: reflection.ID,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return reflection, nil
}

// ListReflections returns all reflections
func (s *reflectionService) ListReflections(ctx context.Context) ([]*models.Reflection, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	reflections, err := uow.ReflectionRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reflections: %w", err)
	}

	return reflections, nil
}

// ListUserReflections returns all reflections for a user
func (s *reflectionService) ListUserReflections(ctx context.Context, userID int64) ([]*models.Reflection, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, models.ErrUserNotFound
	}

	reflections, err := uow.ReflectionRepository().GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user reflections: %w", err)
	}

	return reflections, nil
}

// ListReflectionsBySentiment returns all reflections whose sentiment contains
// the given text. The match normalizes case only.
func (s *reflectionService) ListReflectionsBySentiment(ctx context.Context, sentiment string) ([]*models.Reflection, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	reflections, err := uow.ReflectionRepository().GetBySentiment(ctx, sentiment)
	if err != nil {
		return nil, fmt.Errorf("failed to list reflections by sentiment: %w", err)
	}

	return reflections, nil
}

// UpdateReflection overwrites a reflection record in full. The reflection and
// its new owner must exist.
func (s *reflectionService) UpdateReflection(ctx context.Context, reflection *models.Reflection) error {
	if reflection.Sentiment == "" {
		return fmt.Errorf("sentiment is required")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	existing, err := uow.ReflectionRepository().GetByID(ctx, reflection.ID)
	if err != nil {
		return fmt.Errorf("failed to get reflection: %w", err)
	}
	if existing == nil {
		return models.ErrReflectionNotFound
	}

	owner, err := uow.UserRepository().GetByID(ctx, reflection.UserID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if owner == nil {
		return models.ErrUserNotFound
	}

	if err := uow.ReflectionRepository().Update(ctx, reflection); err != nil {
		return fmt.Errorf("failed to update reflection: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// RemoveReflection deletes a reflection
func (s *reflectionService) RemoveReflection(ctx context.Context, id int64) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.ReflectionRepository().Delete(ctx, id); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
