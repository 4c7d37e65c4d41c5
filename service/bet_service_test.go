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

func TestBetService_RecordBet_WinAddsPoints(t *testing.T) {
	ctx := context.Background()

	// Setup mocks
	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockBetRepo := new(MockBetRepository)
	mockPublisher := new(MockEventPublisher)

	// Configure unit of work
	mockUoW.SetRepositories(mockUserRepo, mockBetRepo, nil)
	mockUoW.SetEventBus(mockPublisher)

	service := NewBetService(mockFactory)

	owner := &models.User{
		ID:     1,
		Name:   "Ana",
		Email:  "ana@example.com",
		Points: 10,
	}
	placedAt := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	// Mock expectations
	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByID", ctx, int64(1)).Return(owner, nil)

	mockBetRepo.On("Create", ctx, mock.MatchedBy(func(b *models.Bet) bool {
		return b.UserID == 1 &&
			b.Amount == 250 &&
			b.Result == models.ResultWin &&
			b.PlacedAt.Equal(placedAt)
	})).Return(nil).Run(func(args mock.Arguments) {
		bet := args.Get(1).(*models.Bet)
		bet.ID = 7
	})

	// 250 cents won = 2 whole-currency points
	mockUserRepo.On("AddPoints", ctx, int64(1), int64(2)).Return(nil)

	mockPublisher.On("Publish", mock.MatchedBy(func(e events.Event) bool {
		recorded, ok := e.(events.BetRecordedEvent)
		return ok && recorded.UserID == 1 && recorded.BetID == 7 && recorded.Amount == 250
	}))

	bet, err := service.RecordBet(ctx, 1, "Final da Copa", 250, models.ResultWin, placedAt)

	assert.NoError(t, err)
	assert.NotNil(t, bet)
	assert.Equal(t, int64(7), bet.ID)

	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
	mockBetRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestBetService_RecordBet_LossDeductsPoints(t *testing.T) {
	ctx := context.Background()

	// Setup mocks
	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockBetRepo := new(MockBetRepository)

	// Configure unit of work
	mockUoW.SetRepositories(mockUserRepo, mockBetRepo, nil)

	service := NewBetService(mockFactory)

	owner := &models.User{ID: 1, Name: "Ana", Email: "ana@example.com"}
	placedAt := time.Date(2024, 3, 16, 9, 0, 0, 0, time.UTC)

	// Mock expectations
	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByID", ctx, int64(1)).Return(owner, nil)
	mockBetRepo.On("Create", ctx, mock.AnythingOfType("*models.Bet")).Return(nil)
	mockUserRepo.On("AddPoints", ctx, int64(1), int64(-3)).Return(nil)

	// Lowercase label still matches the loss outcome
	bet, err := service.RecordBet(ctx, 1, "Clássico", 300, "derrota", placedAt)

	assert.NoError(t, err)
	assert.NotNil(t, bet)

	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
	mockBetRepo.AssertExpectations(t)
}

func TestBetService_RecordBet_DrawLeavesPointsUntouched(t *testing.T) {
	ctx := context.Background()

	// Setup mocks
	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockBetRepo := new(MockBetRepository)

	// Configure unit of work
	mockUoW.SetRepositories(mockUserRepo, mockBetRepo, nil)

	service := NewBetService(mockFactory)

	owner := &models.User{ID: 1, Name: "Ana", Email: "ana@example.com"}
	placedAt := time.Date(2024, 3, 17, 9, 0, 0, 0, time.UTC)

	// Mock expectations
	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByID", ctx, int64(1)).Return(owner, nil)
	mockBetRepo.On("Create", ctx, mock.AnythingOfType("*models.Bet")).Return(nil)

	_, err := service.RecordBet(ctx, 1, "Amistoso", 500, models.ResultDraw, placedAt)

	assert.NoError(t, err)
	mockUserRepo.AssertNotCalled(t, "AddPoints", mock.Anything, mock.Anything, mock.Anything)

	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
	mockBetRepo.AssertExpectations(t)
}

func TestBetService_RecordBet_UserNotFound(t *testing.T) {
	ctx := context.Background()

	// Setup mocks
	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockBetRepo := new(MockBetRepository)

	// Configure unit of work
	mockUoW.SetRepositories(mockUserRepo, mockBetRepo, nil)

	service := NewBetService(mockFactory)

	// Mock expectations
	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByID", ctx, int64(42)).Return(nil, nil)

	bet, err := service.RecordBet(ctx, 42, "Sem dono", 100, models.ResultWin, time.Now())

	assert.ErrorIs(t, err, models.ErrUserNotFound)
	assert.Nil(t, bet)
	mockBetRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
}

func TestBetService_RecordBet_InvalidInput(t *testing.T) {
	ctx := context.Background()

	mockFactory := new(MockUnitOfWorkFactory)
	service := NewBetService(mockFactory)

	_, err := service.RecordBet(ctx, 1, "negativa", -100, models.ResultWin, time.Now())
	assert.Error(t, err)

	_, err = service.RecordBet(ctx, 1, "sem resultado", 100, "", time.Now())
	assert.Error(t, err)

	// Validation fails before any transaction starts
	mockFactory.AssertNotCalled(t, "Create")
}

func TestBetService_UpdateBet_ReadjustsPoints(t *testing.T) {
	ctx := context.Background()

	// Setup mocks
	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockBetRepo := new(MockBetRepository)

	// Configure unit of work
	mockUoW.SetRepositories(mockUserRepo, mockBetRepo, nil)

	service := NewBetService(mockFactory)

	owner := &models.User{ID: 1, Name: "Ana", Email: "ana@example.com", Points: 12}
	existing := &models.Bet{
		ID:       7,
		UserID:   1,
		Amount:   250,
		Result:   models.ResultWin,
		PlacedAt: time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC),
	}
	updated := &models.Bet{
		ID:       7,
		UserID:   1,
		Amount:   300,
		Result:   models.ResultLoss,
		PlacedAt: existing.PlacedAt,
	}

	// Mock expectations
	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockBetRepo.On("GetByID", ctx, int64(7)).Return(existing, nil)
	mockUserRepo.On("GetByID", ctx, int64(1)).Return(owner, nil)
	mockBetRepo.On("Update", ctx, updated).Return(nil)

	// The win granted +2; reversing it and applying the loss costs -2 then -3
	mockUserRepo.On("AddPoints", ctx, int64(1), int64(-2)).Return(nil)
	mockUserRepo.On("AddPoints", ctx, int64(1), int64(-3)).Return(nil)

	err := service.UpdateBet(ctx, updated)

	assert.NoError(t, err)

	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
	mockBetRepo.AssertExpectations(t)
}

func TestBetService_UpdateBet_NotFound(t *testing.T) {
	ctx := context.Background()

	// Setup mocks
	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockBetRepo := new(MockBetRepository)

	// Configure unit of work
	mockUoW.SetRepositories(mockUserRepo, mockBetRepo, nil)

	service := NewBetService(mockFactory)

	// Mock expectations
	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockBetRepo.On("GetByID", ctx, int64(99)).Return(nil, nil)

	err := service.UpdateBet(ctx, &models.Bet{ID: 99, UserID: 1, Amount: 100, Result: models.ResultWin})

	assert.ErrorIs(t, err, models.ErrBetNotFound)
	mockBetRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	mockUserRepo.AssertNotCalled(t, "AddPoints", mock.Anything, mock.Anything, mock.Anything)

	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockBetRepo.AssertExpectations(t)
}

func TestBetService_UpdateBet_InvalidInput(t *testing.T) {
	ctx := context.Background()

	mockFactory := new(MockUnitOfWorkFactory)
	service := NewBetService(mockFactory)

	err := service.UpdateBet(ctx, &models.Bet{ID: 1, UserID: 1, Amount: -100, Result: models.ResultWin})
	assert.Error(t, err)

	err = service.UpdateBet(ctx, &models.Bet{ID: 1, UserID: 1, Amount: 100, Result: ""})
	assert.Error(t, err)

	// Validation fails before any transaction starts
	mockFactory.AssertNotCalled(t, "Create")
}

func TestBetService_ListBetsByResult(t *testing.T) {
	ctx := context.Background()

	// Setup mocks
	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockBetRepo := new(MockBetRepository)

	// Configure unit of work
	mockUoW.SetRepositories(nil, mockBetRepo, nil)

	service := NewBetService(mockFactory)

	wins := []*models.Bet{
		{ID: 1, UserID: 1, Amount: 100, Result: models.ResultWin},
		{ID: 3, UserID: 2, Amount: 200, Result: "vitória"},
	}

	// Mock expectations
	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	// The label is handed through untouched; the repository folds case
	mockBetRepo.On("GetByResult", ctx, "VITÓRIA").Return(wins, nil)

	bets, err := service.ListBetsByResult(ctx, "VITÓRIA")

	assert.NoError(t, err)
	assert.Equal(t, wins, bets)

	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockBetRepo.AssertExpectations(t)
}

func TestBetService_GetBet_NotFound(t *testing.T) {
	ctx := context.Background()

	// Setup mocks
	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockBetRepo := new(MockBetRepository)

	// Configure unit of work
	mockUoW.SetRepositories(nil, mockBetRepo, nil)

	service := NewBetService(mockFactory)

	// Mock expectations
	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockBetRepo.On("GetByID", ctx, int64(99)).Return(nil, nil)

	bet, err := service.GetBet(ctx, 99)

	assert.ErrorIs(t, err, models.ErrBetNotFound)
	assert.Nil(t, bet)

	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockBetRepo.AssertExpectations(t)
}
