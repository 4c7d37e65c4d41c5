package service

import (
	"context"
	"fmt"
	"time"

	"xperiencia/events"
	"xperiencia/models"
	"xperiencia/report"
)

// reportService implements the ReportService interface. It loads a consistent
// snapshot of the relevant collections inside a single transaction and hands
// it to the pure report builders; the builders themselves perform no I/O.
type reportService struct {
	uowFactory UnitOfWorkFactory
}

// NewReportService creates a new report service
func NewReportService(uowFactory UnitOfWorkFactory) ReportService {
	return &reportService{
		uowFactory: uowFactory,
	}
}

// UserReport builds the per-user report
func (s *reportService) UserReport(ctx context.Context, userID int64) (*models.UserReport, error) {
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
		return nil, fmt.Errorf("failed to get user bets: %w", err)
	}

	reflections, err := uow.ReflectionRepository().GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user reflections: %w", err)
	}

	rep, err := report.BuildUserReport(user, bets, reflections)
	if err != nil {
		return nil, err
	}

	uow.EventBus().Publish(events.ReportGeneratedEvent{Kind: "user", UserID: userID})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return rep, nil
}

// SystemReport builds the system-wide report
func (s *reportService) SystemReport(ctx context.Context) (*models.SystemReport, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	users, err := uow.UserRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	bets, err := uow.BetRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get bets: %w", err)
	}

	reflections, err := uow.ReflectionRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get reflections: %w", err)
	}

	rep := report.BuildSystemReport(users, bets, reflections)

	uow.EventBus().Publish(events.ReportGeneratedEvent{Kind: "system"})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return rep, nil
}

// PeriodReport builds the date-range report over [start, end], inclusive.
// An inverted range is not rejected; it yields an empty report.
func (s *reportService) PeriodReport(ctx context.Context, start, end time.Time) (*models.PeriodReport, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	bets, err := uow.BetRepository().GetByPeriod(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get bets for period: %w", err)
	}

	users, err := uow.UserRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	rep := report.BuildPeriodReport(bets, users, start, end)

	uow.EventBus().Publish(events.ReportGeneratedEvent{Kind: "period"})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return rep, nil
}
