// Package store provides Store implementations.
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/erebos/fixed-asset-engine/generic"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu       sync.RWMutex
	assets   map[generic.AssetID]generic.Asset
	closings map[key]generic.Closing
}

var _ generic.Store = (*Memory)(nil)

type key struct {
	AssetID generic.AssetID
	Year    int
}

func NewMemory() *Memory {
	return &Memory{
		assets:   make(map[generic.AssetID]generic.Asset),
		closings: make(map[key]generic.Closing),
	}
}

func (m *Memory) CreateAsset(_ context.Context, asset generic.Asset) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.assets[asset.ID]; exists {
		return fmt.Errorf("%s: %w", asset.ID, generic.ErrDuplicateAsset)
	}
	m.assets[asset.ID] = asset
	return nil
}

func (m *Memory) SaveAsset(_ context.Context, asset generic.Asset) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assets[asset.ID] = asset
	return nil
}

func (m *Memory) GetAsset(_ context.Context, id generic.AssetID) (*generic.Asset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.assets[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (m *Memory) ListAssets(_ context.Context) ([]generic.Asset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]generic.Asset, 0, len(m.assets))
	for _, a := range m.assets {
		result = append(result, a)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (m *Memory) DeleteAsset(_ context.Context, id generic.AssetID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.assets, id)
	for k := range m.closings {
		if k.AssetID == id {
			delete(m.closings, k)
		}
	}
	return nil
}

// SaveClosing is append-only per (asset, year).
func (m *Memory) SaveClosing(_ context.Context, c generic.Closing) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.assets[c.AssetID]; !ok {
		return generic.ErrAssetNotFound
	}
	k := key{AssetID: c.AssetID, Year: c.Year}
	if _, exists := m.closings[k]; exists {
		return generic.ErrClosingExists
	}
	m.closings[k] = c
	return nil
}

func (m *Memory) ListClosings(_ context.Context, assetID generic.AssetID) ([]generic.Closing, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []generic.Closing
	for k, c := range m.closings {
		if k.AssetID == assetID {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Year < result[j].Year })
	return result, nil
}

func (m *Memory) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assets = make(map[generic.AssetID]generic.Asset)
	m.closings = make(map[key]generic.Closing)
	return nil
}
