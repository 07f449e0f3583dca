package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver registration.

	"cricbot/internal/model"
	"cricbot/migrations"
)

const timeLayout = "2006-01-02T15:04:05Z"

const selectTenant = `SELECT chat_id, channel_id, mode, categories, genders, teams, followed,
       daily_time, ping_enabled, ping_roles, paused,
       next_due_custom, next_due_fallback, next_due_daily, created_at
  FROM tenants`

// SQLite implements Storage backed by a SQLite database.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at dsn and runs pending migrations.
func NewSQLite(dsn string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=OFF"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("disable foreign keys: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// CreateTenant inserts a new tenant row and populates its CreatedAt.
func (s *SQLite) CreateTenant(ctx context.Context, tenant *model.Tenant) error {
	categories, err := toJSON(tenant.Categories)
	if err != nil {
		return err
	}
	genders, err := toJSON(tenant.Genders)
	if err != nil {
		return err
	}
	teams, err := toJSON(tenant.Teams)
	if err != nil {
		return err
	}
	followed, err := toJSON(tenant.Followed)
	if err != nil {
		return err
	}
	pingRoles, err := toJSON(tenant.PingRoles)
	if err != nil {
		return err
	}

	now := time.Now().UTC().Format(timeLayout)
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO tenants (chat_id, channel_id, mode, categories, genders, teams, followed,
		                      daily_time, ping_enabled, ping_roles, paused,
		                      next_due_custom, next_due_fallback, next_due_daily, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tenant.ChatID, tenant.ChannelID, string(tenant.Mode), categories, genders, teams, followed,
		tenant.DailyTime, boolToInt(tenant.PingEnabled), pingRoles, boolToInt(tenant.Paused),
		tenant.NextDueCustom, tenant.NextDueFallback, tenant.NextDueDaily, now,
	)
	if err != nil {
		return fmt.Errorf("insert tenant: %w", err)
	}
	tenant.CreatedAt, _ = time.Parse(timeLayout, now)
	return nil
}

// GetTenant returns a single tenant by its chat ID.
func (s *SQLite) GetTenant(ctx context.Context, chatID int64) (*model.Tenant, error) {
	row := s.db.QueryRowContext(ctx, selectTenant+` WHERE chat_id = ?`, chatID)
	tenant, err := scanTenant(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return tenant, err
}

// ListTenants returns all tenants ordered by chat ID.
func (s *SQLite) ListTenants(ctx context.Context) ([]model.Tenant, error) {
	rows, err := s.db.QueryContext(ctx, selectTenant+` ORDER BY chat_id`)
	if err != nil {
		return nil, fmt.Errorf("query tenants: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tenants []model.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, *t)
	}
	return tenants, rows.Err()
}

// DeleteTenant removes a tenant row.
func (s *SQLite) DeleteTenant(ctx context.Context, chatID int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM tenants WHERE chat_id = ?`, chatID)
	if err != nil {
		return fmt.Errorf("delete tenant: %w", err)
	}
	return nil
}

// SetChannel points the tenant's posts at a channel, or back at the
// chat itself when channelID is zero.
func (s *SQLite) SetChannel(ctx context.Context, chatID, channelID int64) error {
	return s.update(ctx, chatID, `UPDATE tenants SET channel_id = ? WHERE chat_id = ?`, channelID)
}

// SetMode switches the tenant between custom and daily posting.
func (s *SQLite) SetMode(ctx context.Context, chatID int64, mode model.Mode) error {
	return s.update(ctx, chatID, `UPDATE tenants SET mode = ? WHERE chat_id = ?`, string(mode))
}

// SetDailyTime stores a new daily post time and clears both day-post
// gates so they re-anchor to the new time on the next tick.
func (s *SQLite) SetDailyTime(ctx context.Context, chatID int64, dailyTime string) error {
	return s.update(ctx, chatID,
		`UPDATE tenants SET daily_time = ?, next_due_fallback = 0, next_due_daily = 0 WHERE chat_id = ?`,
		dailyTime)
}

// SetCategories replaces the tenant's category selection.
func (s *SQLite) SetCategories(ctx context.Context, chatID int64, categories []model.Category) error {
	v, err := toJSON(categories)
	if err != nil {
		return err
	}
	return s.update(ctx, chatID, `UPDATE tenants SET categories = ? WHERE chat_id = ?`, v)
}

// SetGenders replaces the tenant's gender selection.
func (s *SQLite) SetGenders(ctx context.Context, chatID int64, genders []model.Gender) error {
	v, err := toJSON(genders)
	if err != nil {
		return err
	}
	return s.update(ctx, chatID, `UPDATE tenants SET genders = ? WHERE chat_id = ?`, v)
}

// SetTeams replaces the tenant's team filters.
func (s *SQLite) SetTeams(ctx context.Context, chatID int64, teams []string) error {
	v, err := toJSON(teams)
	if err != nil {
		return err
	}
	return s.update(ctx, chatID, `UPDATE tenants SET teams = ? WHERE chat_id = ?`, v)
}

// SetFollowed replaces the tenant's followed match identities.
func (s *SQLite) SetFollowed(ctx context.Context, chatID int64, followed []string) error {
	v, err := toJSON(followed)
	if err != nil {
		return err
	}
	return s.update(ctx, chatID, `UPDATE tenants SET followed = ? WHERE chat_id = ?`, v)
}

// SetPaused toggles scheduled posting for the tenant.
func (s *SQLite) SetPaused(ctx context.Context, chatID int64, paused bool) error {
	return s.update(ctx, chatID, `UPDATE tenants SET paused = ? WHERE chat_id = ?`, boolToInt(paused))
}

// SetPing stores the tenant's mention settings.
func (s *SQLite) SetPing(ctx context.Context, chatID int64, enabled bool, roles []string) error {
	v, err := toJSON(roles)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`UPDATE tenants SET ping_enabled = ?, ping_roles = ? WHERE chat_id = ?`,
		boolToInt(enabled), v, chatID,
	)
	if err != nil {
		return fmt.Errorf("update tenant: %w", err)
	}
	return nil
}

// SetNextDueCustom stores the next custom-poll due time.
func (s *SQLite) SetNextDueCustom(ctx context.Context, chatID int64, due int64) error {
	return s.update(ctx, chatID, `UPDATE tenants SET next_due_custom = ? WHERE chat_id = ?`, due)
}

// SetNextDueFallback stores the next fallback-summary due time.
func (s *SQLite) SetNextDueFallback(ctx context.Context, chatID int64, due int64) error {
	return s.update(ctx, chatID, `UPDATE tenants SET next_due_fallback = ? WHERE chat_id = ?`, due)
}

// SetNextDueDaily stores the next daily-post due time.
func (s *SQLite) SetNextDueDaily(ctx context.Context, chatID int64, due int64) error {
	return s.update(ctx, chatID, `UPDATE tenants SET next_due_daily = ? WHERE chat_id = ?`, due)
}

func (s *SQLite) update(ctx context.Context, chatID int64, query string, value any) error {
	if _, err := s.db.ExecContext(ctx, query, value, chatID); err != nil {
		return fmt.Errorf("update tenant: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func toJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal json: %w", err)
	}
	return string(b), nil
}

func fromJSON(s string, dest any) error {
	if s == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		return fmt.Errorf("unmarshal json: %w", err)
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanTenant(row scannable) (*model.Tenant, error) {
	var t model.Tenant
	var mode, categories, genders, teams, followed, pingRoles string
	var pingEnabled, paused int
	var created sql.NullString
	err := row.Scan(
		&t.ChatID, &t.ChannelID, &mode, &categories, &genders, &teams, &followed,
		&t.DailyTime, &pingEnabled, &pingRoles, &paused,
		&t.NextDueCustom, &t.NextDueFallback, &t.NextDueDaily, &created,
	)
	if err != nil {
		return nil, fmt.Errorf("scan tenant: %w", err)
	}
	t.Mode = model.Mode(mode)
	if err := fromJSON(categories, &t.Categories); err != nil {
		return nil, err
	}
	if err := fromJSON(genders, &t.Genders); err != nil {
		return nil, err
	}
	if err := fromJSON(teams, &t.Teams); err != nil {
		return nil, err
	}
	if err := fromJSON(followed, &t.Followed); err != nil {
		return nil, err
	}
	if err := fromJSON(pingRoles, &t.PingRoles); err != nil {
		return nil, err
	}
	t.PingEnabled = pingEnabled == 1
	t.Paused = paused == 1
	if created.Valid {
		t.CreatedAt, _ = time.Parse(timeLayout, created.String)
	}
	return &t, nil
}
