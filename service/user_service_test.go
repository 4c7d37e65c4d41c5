package service

import (
	"context"
	"testing"
	"time"

	"xperiencia/events"
	"xperiencia/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestUserService_Register_Success(t *testing.T) {
	ctx := context.Background()

	// Setup mocks
	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)

	// Configure unit of work
	mockUoW.SetRepositories(mockUserRepo, nil, nil)

	service := NewUserService(mockFactory)

	created := &models.User{
		ID:     1,
		Name:   "Ana",
		Email:  "ana@example.com",
		Points: 0,
	}

	// Mock expectations
	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByEmail", ctx, "ana@example.com").Return(nil, nil)
	mockUserRepo.On("Create", ctx, "Ana", "ana@example.com").Return(created, nil)

	user, err := service.Register(ctx, "Ana", "ana@example.com")

	assert.NoError(t, err)
	assert.Equal(t, created, user)

	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	ctx := context.Background()

	// Setup mocks
	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)

	// Configure unit of work
	mockUoW.SetRepositories(mockUserRepo, nil, nil)

	service := NewUserService(mockFactory)

	existing := &models.User{
		ID:    1,
		Name:  "Ana",
		Email: "ana@example.com",
	}

	// Mock expectations
	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByEmail", ctx, "ana@example.com").Return(existing, nil)

	user, err := service.Register(ctx, "Ana Clone", "ana@example.com")

	assert.ErrorIs(t, err, models.ErrEmailTaken)
	assert.Nil(t, user)
	mockUserRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)

	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
}

func TestUserService_Register_MissingFields(t *testing.T) {
	ctx := context.Background()

	mockFactory := new(MockUnitOfWorkFactory)
	service := NewUserService(mockFactory)

	_, err := service.Register(ctx, "", "ana@example.com")
	assert.Error(t, err)

	_, err = service.Register(ctx, "Ana", "")
	assert.Error(t, err)

	// Validation fails before any transaction starts
	mockFactory.AssertNotCalled(t, "Create")
}

func TestUserService_GetUser_NotFound(t *testing.T) {
	ctx := context.Background()

	// Setup mocks
	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)

	// Configure unit of work
	mockUoW.SetRepositories(mockUserRepo, nil, nil)

	service := NewUserService(mockFactory)

	// Mock expectations
	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByID", ctx, int64(99)).Return(nil, nil)

	user, err := service.GetUser(ctx, 99)

	assert.ErrorIs(t, err, models.ErrUserNotFound)
	assert.Nil(t, user)

	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
}

func TestUserService_UpdateUser_EmailBelongsToOtherUser(t *testing.T) {
	ctx := context.Background()

	// Setup mocks
	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)

	// Configure unit of work
	mockUoW.SetRepositories(mockUserRepo, nil, nil)

	service := NewUserService(mockFactory)

	other := &models.User{
		ID:    2,
		Name:  "Bruno",
		Email: "bruno@example.com",
	}

	// Mock expectations
	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByEmail", ctx, "bruno@example.com").Return(other, nil)

	err := service.UpdateUser(ctx, &models.User{
		ID:    1,
		Name:  "Ana",
		Email: "bruno@example.com",
	})

	assert.ErrorIs(t, err, models.ErrEmailTaken)
	mockUserRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)

	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
}

func TestUserService_DeleteUser_CascadesDependents(t *testing.T) {
	ctx := context.Background()

	// Setup mocks
	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockBetRepo := new(MockBetRepository)
	mockReflectionRepo := new(MockReflectionRepository)
	mockPublisher := new(MockEventPublisher)

	// Configure unit of work
	mockUoW.SetRepositories(mockUserRepo, mockBetRepo, mockReflectionRepo)
	mockUoW.SetEventBus(mockPublisher)

	service := NewUserService(mockFactory)

	existing := &models.User{
		ID:    1,
		Name:  "Ana",
		Email: "ana@example.com",
	}
	bets := []*models.Bet{
		{ID: 10, UserID: 1, Amount: 100, Result: models.ResultWin, PlacedAt: time.Now()},
		{ID: 11, UserID: 1, Amount: 200, Result: models.ResultLoss, PlacedAt: time.Now()},
	}
	reflections := []*models.Reflection{
		{ID: 20, UserID: 1, Sentiment: "Feliz", RecordedAt: time.Now()},
	}

	// Mock expectations
	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByID", ctx, int64(1)).Return(existing, nil)
	mockBetRepo.On("GetByUser", ctx, int64(1)).Return(bets, nil)
	mockReflectionRepo.On("GetByUser", ctx, int64(1)).Return(reflections, nil)
	mockBetRepo.On("DeleteByUser", ctx, int64(1)).Return(nil)
	mockReflectionRepo.On("DeleteByUser", ctx, int64(1)).Return(nil)
	mockUserRepo.On("Delete", ctx, int64(1)).Return(nil)

	mockPublisher.On("Publish", mock.MatchedBy(func(e events.Event) bool {
		deleted, ok := e.(events.UserDeletedEvent)
		return ok && deleted.UserID == 1 &&
			deleted.BetsDeleted == 2 &&
			deleted.ReflectionsDeleted == 1
	}))

	err := service.DeleteUser(ctx, 1)

	assert.NoError(t, err)

	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
	mockBetRepo.AssertExpectations(t)
	mockReflectionRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestUserService_DeleteUser_NotFound(t *testing.T) {
	ctx := context.Background()

	// Setup mocks
	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockBetRepo := new(MockBetRepository)
	mockReflectionRepo := new(MockReflectionRepository)

	// Configure unit of work
	mockUoW.SetRepositories(mockUserRepo, mockBetRepo, mockReflectionRepo)

	service := NewUserService(mockFactory)

	// Mock expectations
	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByID", ctx, int64(42)).Return(nil, nil)

	err := service.DeleteUser(ctx, 42)

	assert.ErrorIs(t, err, models.ErrUserNotFound)
	mockBetRepo.AssertNotCalled(t, "DeleteByUser", mock.Anything, mock.Anything)

	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
}
