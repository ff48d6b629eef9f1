/*
store.go - Persistence interfaces for the asset register

PURPOSE:
  Defines the interface between the service layer and the database.
  The calculation core never touches a store; it receives Assets by value.
  Different implementations can use SQLite or in-memory storage.

KEY INTERFACES:
  AssetStore:   Register of assets (create, save, load, list, delete)
  ClosingStore: Year-end figure snapshots (append-only per asset+year)
  Store:        Both of the above, plus Reset

CLOSINGS ARE IMMUTABLE:
  A closing for (asset, year) is written once. A second write for the same
  pair returns ErrClosingExists.

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: Production SQLite
  - generic/store/memory.go: In-memory for testing

SEE ALSO:
  - asset.go: Asset and Closing types
  - api/handlers.go: Uses Store
*/
package generic

import "context"

// AssetStore persists asset definitions.
type AssetStore interface {
	// CreateAsset inserts a new asset and returns ErrDuplicateAsset if the
	// id is taken. The check and the insert are atomic.
	CreateAsset(ctx context.Context, asset Asset) error

	// SaveAsset inserts or replaces an asset.
	SaveAsset(ctx context.Context, asset Asset) error

	// GetAsset returns nil, nil when the asset does not exist.
	GetAsset(ctx context.Context, id AssetID) (*Asset, error)

	// ListAssets returns all assets ordered by name.
	ListAssets(ctx context.Context) ([]Asset, error)

	// DeleteAsset removes an asset and its closings.
	DeleteAsset(ctx context.Context, id AssetID) error
}

// ClosingStore persists year-end snapshots.
type ClosingStore interface {
	// SaveClosing returns ErrClosingExists if the year is already closed.
	SaveClosing(ctx context.Context, c Closing) error

	// ListClosings returns closings for an asset ordered by year.
	ListClosings(ctx context.Context, assetID AssetID) ([]Closing, error)
}

// Store is the full register.
type Store interface {
	AssetStore
	ClosingStore

	// Reset removes all data. For demos and tests.
	Reset(ctx context.Context) error
}
