// Package storage defines the persistence interface and its implementations.
package storage

import (
	"context"
	"errors"

	"cricbot/internal/model"
)

// ErrNotFound is returned when the requested tenant does not exist.
var ErrNotFound = errors.New("not found")

// Storage is the interface for all persistence operations.
//
// Mutations are field-scoped on purpose: the scheduler and the command
// handlers run concurrently against the same rows, and writing whole
// records would let a stale in-memory copy clobber the other writer's
// change.
type Storage interface {
	CreateTenant(ctx context.Context, tenant *model.Tenant) error
	GetTenant(ctx context.Context, chatID int64) (*model.Tenant, error)
	ListTenants(ctx context.Context) ([]model.Tenant, error)
	DeleteTenant(ctx context.Context, chatID int64) error

	SetChannel(ctx context.Context, chatID, channelID int64) error
	SetMode(ctx context.Context, chatID int64, mode model.Mode) error
	SetDailyTime(ctx context.Context, chatID int64, dailyTime string) error
	SetCategories(ctx context.Context, chatID int64, categories []model.Category) error
	SetGenders(ctx context.Context, chatID int64, genders []model.Gender) error
	SetTeams(ctx context.Context, chatID int64, teams []string) error
	SetFollowed(ctx context.Context, chatID int64, followed []string) error
	SetPaused(ctx context.Context, chatID int64, paused bool) error
	SetPing(ctx context.Context, chatID int64, enabled bool, roles []string) error

	SetNextDueCustom(ctx context.Context, chatID int64, due int64) error
	SetNextDueFallback(ctx context.Context, chatID int64, due int64) error
	SetNextDueDaily(ctx context.Context, chatID int64, due int64) error

	Close() error
}
