package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"xperiencia/events"
	"xperiencia/models"
)

// betService implements the BetService interface
type betService struct {
	uowFactory UnitOfWorkFactory
}

// NewBetService creates a new bet service
func NewBetService(uowFactory UnitOfWorkFactory) BetService {
	return &betService{
		uowFactory: uowFactory,
	}
}

// pointsDelta returns the points adjustment a recorded bet applies to its
// owner: won bets add the whole-currency value, lost bets subtract it, any
// other outcome leaves the score untouched. Labels compare case-insensitively.
func pointsDelta(result string, amount int64) int64 {
	switch strings.ToLower(result) {
	case strings.ToLower(models.ResultWin):
		return amount / 100
	case strings.ToLower(models.ResultLoss):
		return -(amount / 100)
	default:
		return 0
	}
}

// RecordBet registers a bet for an existing user. The owner must exist at
// creation time; orphaned bets are not creatable. The bet and the owner's
// points adjustment commit atomically.
func (s *betService) RecordBet(ctx context.Context, userID int64, description string, amount int64, result string, placedAt time.Time) (*models.Bet, error) {
	if amount < 0 {
		return nil, fmt.Errorf("bet amount must not be negative")
	}
	if result == "" {
		return nil, fmt.Errorf("bet result is required")
	}
	if placedAt.IsZero() {
		placedAt = time.Now()
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

	bet := &models.Bet{
		UserID:      userID,
		Description: description,
		Amount:      amount,
		Result:      result,
		PlacedAt:    placedAt,
	}
	if err := uow.BetRepository().Create(ctx, bet); err != nil {
		return nil, fmt.Errorf("failed to create bet: %w", err)
	}

	if delta := pointsDelta(result, amount); delta != 0 {
		if err := uow.UserRepository().AddPoints(ctx, userID, delta); err != nil {
			return nil, fmt.Errorf("failed to adjust points: %w", err)
		}
	}

	uow.EventBus().Publish(events.BetRecordedEvent{
		UserID: userID,
		BetID:  bet.ID,
		Amount: bet.Amount,
		Result: bet.Result,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return bet, nil
}

// GetBet retrieves a bet by id
func (s *betService) GetBet(ctx context.Context, id int64) (*models.Bet, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	bet, err := uow.BetRepository().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get bet: %w", err)
	}
	if bet == nil {
		return nil, models.ErrBetNotFound
	}

	return bet, nil
}

// ListBets returns all bets
func (s *betService) ListBets(ctx context.Context) ([]*models.Bet, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	bets, err := uow.BetRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bets: %w", err)
	}

	return bets, nil
}

// ListUserBets returns all bets for a user
func (s *betService) ListUserBets(ctx context.Context, userID int64) ([]*models.Bet, error) {
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

	bets, err := uow.BetRepository().GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user bets: %w", err)
	}

	return bets, nil
}

// ListBetsByResult returns all bets with a matching result label. The match
// normalizes case only; surrounding whitespace and accents are significant.
func (s *betService) ListBetsByResult(ctx context.Context, result string) ([]*models.Bet, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	bets, err := uow.BetRepository().GetByResult(ctx, result)
	if err != nil {
		return nil, fmt.Errorf("failed to list bets by result: %w", err)
	}

	return bets, nil
}

// UpdateBet overwrites a bet record in full. The bet and its new owner must
// exist. Points the old outcome granted are reversed and the new outcome is
// applied, so the owner's score matches what recording the updated bet
// directly would have produced.
func (s *betService) UpdateBet(ctx context.Context, bet *models.Bet) error {
	if bet.Amount < 0 {
		return fmt.Errorf("bet amount must not be negative")
	}
	if bet.Result == "" {
		return fmt.Errorf("bet result is required")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	existing, err := uow.BetRepository().GetByID(ctx, bet.ID)
	if err != nil {
		return fmt.Errorf("failed to get bet: %w", err)
	}
	if existing == nil {
		return models.ErrBetNotFound
	}

	owner, err := uow.UserRepository().GetByID(ctx, bet.UserID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if owner == nil {
		return models.ErrUserNotFound
	}

	if err := uow.BetRepository().Update(ctx, bet); err != nil {
		return fmt.Errorf("failed to update bet: %w", err)
	}

	if oldDelta := pointsDelta(existing.Result, existing.Amount); oldDelta != 0 {
		if err := uow.UserRepository().AddPoints(ctx, existing.UserID, -oldDelta); err != nil {
			return fmt.Errorf("failed to reverse points: %w", err)
		}
	}
	if newDelta := pointsDelta(bet.Result, bet.Amount); newDelta != 0 {
		if err := uow.UserRepository().AddPoints(ctx, bet.UserID, newDelta); err != nil {
			return fmt.Errorf("failed to adjust points: %w", err)
		}
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// RemoveBet deletes a bet
func (s *betService) RemoveBet(ctx context.Context, id int64) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.BetRepository().Delete(ctx, id); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
