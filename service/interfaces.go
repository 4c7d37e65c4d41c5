package service

import (
	"context"
	"time"

	"xperiencia/events"
	"xperiencia/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// GetByID retrieves a user by id; nil without error when absent
	GetByID(ctx context.Context, id int64) (*models.User, error)

	// GetByEmail retrieves a user by email; nil without error when absent
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// Create creates a new user; identity comes from the database sequence
	Create(ctx context.Context, name, email string) (*models.User, error)

	// Update overwrites the full record (whole-entity update semantics)
	Update(ctx context.Context, user *models.User) error

	// AddPoints adjusts a user's points atomically; delta may be negative
	AddPoints(ctx context.Context, id int64, delta int64) error

	// Delete removes a user; dependents must already be gone
	Delete(ctx context.Context, id int64) error

	// GetAll returns all users
	GetAll(ctx context.Context) ([]*models.User, error)
}

// BetRepository defines the interface for bet data access
type BetRepository interface {
	// Create creates a new bet record
	Create(ctx context.Context, bet *models.Bet) error

	// GetByID retrieves a bet by id; nil without error when absent
	GetByID(ctx context.Context, id int64) (*models.Bet, error)

	// GetByUser returns all bets for a user
	GetByUser(ctx context.Context, userID int64) ([]*models.Bet, error)

	// GetAll returns all bets
	GetAll(ctx context.Context) ([]*models.Bet, error)

	// GetByPeriod returns all bets placed within [start, end], inclusive
	GetByPeriod(ctx context.Context, start, end time.Time) ([]*models.Bet, error)

	// GetByResult returns all bets with a matching result label, ignoring case
	GetByResult(ctx context.Context, result string) ([]*models.Bet, error)

	// Update overwrites the full record (whole-entity update semantics)
	Update(ctx context.Context, bet *models.Bet) error

	// Delete removes a bet
	Delete(ctx context.Context, id int64) error

	// DeleteByUser removes all bets belonging to a user
	DeleteByUser(ctx context.Context, userID int64) error
}

// ReflectionRepository defines the interface for reflection data access
type ReflectionRepository interface {
	// Create creates a new reflection record
	Create(ctx context.Context, reflection *models.Reflection) error

	// GetByID retrieves a reflection by id; nil without error when absent
	GetByID(ctx context.Context, id int64) (*models.Reflection, error)

	// GetByUser returns all reflections for a user
	GetByUser(ctx context.Context, userID int64) ([]*models.Reflection, error)

	// GetAll returns all reflections
	GetAll(ctx context.Context) ([]*models.Reflection, error)

	// GetBySentiment returns all reflections whose sentiment contains the
	// given text, ignoring case
	GetBySentiment(ctx context.Context, sentiment string) ([]*models.Reflection, error)

	// Update overwrites the full record (whole-entity update semantics)
	Update(ctx context.Context, reflection *models.Reflection) error

	// Delete removes a reflection
	Delete(ctx context.Context, id int64) error

	// DeleteByUser removes all reflections belonging to a user
	DeleteByUser(ctx context.Context, userID int64) error
}

// UserService defines the interface for user operations
type UserService interface {
	// Register creates a new user, enforcing email uniqueness
	Register(ctx context.Context, name, email string) (*models.User, error)

	// GetUser retrieves a user by id
	GetUser(ctx context.Context, id int64) (*models.User, error)

	// GetUserByEmail retrieves a user by email
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// ListUsers returns all users
	ListUsers(ctx context.Context) ([]*models.User, error)

	// UpdateUser overwrites a user record in full
	UpdateUser(ctx context.Context, user *models.User) error

	// DeleteUser removes a user and all their bets and reflections atomically
	DeleteUser(ctx context.Context, id int64) error
}

// BetService defines the interface for bet operations
type BetService interface {
	// RecordBet registers a bet for an existing user and adjusts their points
	RecordBet(ctx context.Context, userID int64, description string, amount int64, result string, placedAt time.Time) (*models.Bet, error)

	// GetBet retrieves a bet by id
	GetBet(ctx context.Context, id int64) (*models.Bet, error)

	// ListBets returns all bets
	ListBets(ctx context.Context) ([]*models.Bet, error)

	// ListUserBets returns all bets for a user
	ListUserBets(ctx context.Context, userID int64) ([]*models.Bet, error)

	// ListBetsByResult returns all bets with a matching result label,
	// ignoring case
	ListBetsByResult(ctx context.Context, result string) ([]*models.Bet, error)

	// UpdateBet overwrites a bet record in full, re-adjusting the owner's
	// points for the outcome change
	UpdateBet(ctx context.Context, bet *models.Bet) error

	// RemoveBet deletes a bet
	RemoveBet(ctx context.Context, id int64) error
}

// ReflectionService defines the interface for reflection operations
type ReflectionService interface {
	// RecordReflection registers a reflection for an existing user
	RecordReflection(ctx context.Context, userID int64, sentiment string, recordedAt time.Time) (*models.Reflection, error)

	// ListReflections returns all reflections
	ListReflections(ctx context.Context) ([]*models.Reflection, error)

	// ListUserReflections returns all reflections for a user
	ListUserReflections(ctx context.Context, userID int64) ([]*models.Reflection, error)

	// ListReflectionsBySentiment returns all reflections whose sentiment
	// contains the given text, ignoring case
	ListReflectionsBySentiment(ctx context.Context, sentiment string) ([]*models.Reflection, error)

	// UpdateReflection overwrites a reflection record in full
	UpdateReflection(ctx context.Context, reflection *models.Reflection) error

	// RemoveReflection deletes a reflection
	RemoveReflection(ctx context.Context, id int64) error
}

// ReportService defines the interface for report generation
type ReportService interface {
	// UserReport builds the per-user report from a consistent snapshot
	UserReport(ctx context.Context, userID int64) (*models.UserReport, error)

	// SystemReport builds the system-wide report from a consistent snapshot
	SystemReport(ctx context.Context) (*models.SystemReport, error)

	// PeriodReport builds the date-range report over [start, end], inclusive
	PeriodReport(ctx context.Context, start, end time.Time) (*models.PeriodReport, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	UserRepository() UserRepository
	BetRepository() BetRepository
	ReflectionRepository() ReflectionRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	// Create creates a new UnitOfWork instance
	Create() UnitOfWork
}
