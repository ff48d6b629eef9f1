/*
Package sqlite provides a SQLite-backed implementation of the register interfaces.

PURPOSE:
  Implements generic.AssetStore and generic.ClosingStore using SQLite. The
  calculation core never reads from here; the service loads assets and
  hands them to the depreciation package by value.

KEY TABLES:
  assets:          Asset definitions (upserted)
  period_closings: Year-end figures per asset, one row per (asset, year)

STORAGE FORMATS:
  - Dates: RFC3339 text, empty string for an absent purchasing date
  - Purchase amount: REAL (it is a float64 input to the core)
  - Closing figures: decimal strings, so snapshots sum without drift

APPEND-ONLY CLOSINGS:
  period_closings has UNIQUE(asset_id, year). A second closing for the same
  year is rejected with generic.ErrClosingExists.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety on top of database/sql.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency.

USAGE:
  store, err := sqlite.New("./data/assets.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New().

SEE ALSO:
  - generic/store.go: Interface definitions
  - generic/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/erebos/fixed-asset-engine/generic"
)

// Store implements all storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ generic.Store = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Every connection to ":memory:" is its own database.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS assets (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT,
		lifetime_months INTEGER NOT NULL,
		purchasing_date TEXT NOT NULL DEFAULT '',
		purchase_amount REAL NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_assets_name
		ON assets(name);
	CREATE INDEX IF NOT EXISTS idx_assets_category
		ON assets(category);

	CREATE TABLE IF NOT EXISTS period_closings (
		id TEXT PRIMARY KEY,
		asset_id TEXT NOT NULL REFERENCES assets(id) ON DELETE CASCADE,
		year INTEGER NOT NULL,
		depreciation TEXT NOT NULL,
		net_book_begin TEXT NOT NULL,
		net_book_end TEXT NOT NULL,
		closed_at TEXT NOT NULL,
		UNIQUE(asset_id, year)
	);

	CREATE INDEX IF NOT EXISTS idx_closings_asset_year
		ON period_closings(asset_id, year);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// ASSET STORE (generic.AssetStore interface)
// =============================================================================

// CreateAsset inserts a new asset. A taken id is generic.ErrDuplicateAsset.
func (s *Store) CreateAsset(ctx context.Context, a generic.Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO assets (id, name, category, lifetime_months, purchasing_date, purchase_amount, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		string(a.ID), a.Name, nullString(a.Category), a.LifeTimeInMonths,
		formatDate(a.PurchasingDate), a.PurchaseAmount,
		createdAt.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%s: %w", a.ID, generic.ErrDuplicateAsset)
		}
		return fmt.Errorf("failed to create asset: %w", err)
	}
	return nil
}

// SaveAsset inserts or replaces an asset. CreatedAt is kept on update.
func (s *Store) SaveAsset(ctx context.Context, a generic.Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO assets (id, name, category, lifetime_months, purchasing_date, purchase_amount, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			lifetime_months = excluded.lifetime_months,
			purchasing_date = excluded.purchasing_date,
			purchase_amount = excluded.purchase_amount
	`

	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, query,
		string(a.ID), a.Name, nullString(a.Category), a.LifeTimeInMonths,
		formatDate(a.PurchasingDate), a.PurchaseAmount,
		createdAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save asset: %w", err)
	}
	return nil
}

// GetAsset retrieves an asset by ID. Returns nil, nil when missing.
func (s *Store) GetAsset(ctx context.Context, id generic.AssetID) (*generic.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, category, lifetime_months, purchasing_date, purchase_amount, created_at
		FROM assets WHERE id = ?`, string(id))

	a, err := scanAsset(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListAssets returns all assets ordered by name.
func (s *Store) ListAssets(ctx context.Context) ([]generic.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, category, lifetime_months, purchasing_date, purchase_amount, created_at
		FROM assets ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []generic.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

// DeleteAsset removes an asset; its closings go with it.
func (s *Store) DeleteAsset(ctx context.Context, id generic.AssetID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM assets WHERE id = ?", string(id))
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAsset(row scanner) (generic.Asset, error) {
	var a generic.Asset
	var id, purchasingDate, createdAt string
	var category sql.NullString

	if err := row.Scan(&id, &a.Name, &category, &a.LifeTimeInMonths, &purchasingDate, &a.PurchaseAmount, &createdAt); err != nil {
		return generic.Asset{}, err
	}
	a.ID = generic.AssetID(id)
	a.Category = category.String
	a.PurchasingDate = parseDate(purchasingDate)
	a.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return a, nil
}

// =============================================================================
// CLOSING STORE (generic.ClosingStore interface)
// =============================================================================

// SaveClosing persists year-end figures. A year can be closed once.
func (s *Store) SaveClosing(ctx context.Context, c generic.Closing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	closedAt := c.ClosedAt
	if closedAt.IsZero() {
		closedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO period_closings (id, asset_id, year, depreciation, net_book_begin, net_book_end, closed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, string(c.AssetID), c.Year,
		c.Depreciation.Value.String(), c.NetBookBegin.Value.String(), c.NetBookEnd.Value.String(),
		closedAt.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return generic.ErrClosingExists
		}
		if isForeignKeyError(err) {
			return fmt.Errorf("closing for %s: %w", c.AssetID, generic.ErrAssetNotFound)
		}
		return fmt.Errorf("failed to save closing: %w", err)
	}
	return nil
}

// ListClosings returns closings for an asset ordered by year.
func (s *Store) ListClosings(ctx context.Context, assetID generic.AssetID) ([]generic.Closing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, asset_id, year, depreciation, net_book_begin, net_book_end, closed_at
		FROM period_closings WHERE asset_id = ? ORDER BY year`, string(assetID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var closings []generic.Closing
	for rows.Next() {
		var c generic.Closing
		var id, dep, begin, end, closedAt string
		if err := rows.Scan(&c.ID, &id, &c.Year, &dep, &begin, &end, &closedAt); err != nil {
			return nil, err
		}
		c.AssetID = generic.AssetID(id)
		c.Depreciation = parseAmount(dep)
		c.NetBookBegin = parseAmount(begin)
		c.NetBookEnd = parseAmount(end)
		c.ClosedAt, _ = time.Parse(time.RFC3339, closedAt)
		closings = append(closings, c)
	}
	return closings, rows.Err()
}

// =============================================================================
// ADMIN
// =============================================================================

// Reset removes all data. For demos and tests.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"period_closings", "assets"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to reset %s: %w", table, err)
		}
	}
	return nil
}

// Helper functions

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func formatDate(tp generic.TimePoint) string {
	if tp.IsZero() {
		return ""
	}
	return tp.Time.Format(time.RFC3339)
}

func parseDate(s string) generic.TimePoint {
	if s == "" {
		return generic.TimePoint{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return generic.TimePoint{}
	}
	return generic.FromTime(t)
}

func parseAmount(value string) generic.Amount {
	return generic.Amount{Value: generic.MustParseDecimal(value)}
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
