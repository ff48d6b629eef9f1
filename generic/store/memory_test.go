package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erebos/fixed-asset-engine/generic"
	"github.com/erebos/fixed-asset-engine/generic/store"
)

func TestMemory_AssetLifecycle(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	a := generic.Asset{ID: "a-1", Name: "Forklift", LifeTimeInMonths: 60,
		PurchasingDate: generic.NewTimePoint(2021, time.June, 1), PurchaseAmount: 30000}
	b := generic.Asset{ID: "a-2", Name: "Building", LifeTimeInMonths: 11988}
	require.NoError(t, m.SaveAsset(ctx, a))
	require.NoError(t, m.SaveAsset(ctx, b))

	got, err := m.GetAsset(ctx, "a-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Forklift", got.Name)

	missing, err := m.GetAsset(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	list, err := m.ListAssets(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Building", list[0].Name)

	require.NoError(t, m.DeleteAsset(ctx, "a-1"))
	list, _ = m.ListAssets(ctx)
	assert.Len(t, list, 1)
}

func TestMemory_ClosingsAreWrittenOnce(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	require.NoError(t, m.SaveAsset(ctx, generic.Asset{ID: "a-1", Name: "Forklift", LifeTimeInMonths: 60}))

	assert.ErrorIs(t, m.SaveClosing(ctx, generic.Closing{AssetID: "ghost", Year: 2022}), generic.ErrAssetNotFound)

	c := generic.Closing{ID: "c-1", AssetID: "a-1", Year: 2022, NetBookEnd: generic.NewAmount(100)}
	require.NoError(t, m.SaveClosing(ctx, c))
	assert.ErrorIs(t, m.SaveClosing(ctx, c), generic.ErrClosingExists)

	require.NoError(t, m.SaveClosing(ctx, generic.Closing{ID: "c-0", AssetID: "a-1", Year: 2021}))

	closings, err := m.ListClosings(ctx, "a-1")
	require.NoError(t, err)
	require.Len(t, closings, 2)
	assert.Equal(t, 2021, closings[0].Year)
	assert.Equal(t, 2022, closings[1].Year)

	require.NoError(t, m.DeleteAsset(ctx, "a-1"))
	closings, _ = m.ListClosings(ctx, "a-1")
	assert.Empty(t, closings)
}

func TestMemory_Reset(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	require.NoError(t, m.SaveAsset(ctx, generic.Asset{ID: "a-1"}))

	require.NoError(t, m.Reset(ctx))

	list, err := m.ListAssets(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMemory_CreateAssetRejectsDuplicate(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	a := generic.Asset{ID: "a-1", Name: "Forklift", LifeTimeInMonths: 60}
	require.NoError(t, m.CreateAsset(ctx, a))

	again := a
	again.Name = "Overwritten"
	err := m.CreateAsset(ctx, again)
	assert.ErrorIs(t, err, generic.ErrDuplicateAsset)
	assert.True(t, generic.IsConflict(err))

	got, err := m.GetAsset(ctx, "a-1")
	require.NoError(t, err)
	assert.Equal(t, "Forklift", got.Name)
}
