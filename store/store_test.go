package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ojusave/rtms-perplexity/types"
)

func TestMemory_SaveAndList(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Save(ctx, "meeting-1", types.ActionItem{Description: "send the report", Assignee: "Alice"}))
	require.NoError(t, m.Save(ctx, "meeting-1", types.ActionItem{Description: "book the venue"}))
	require.NoError(t, m.Save(ctx, "meeting-2", types.ActionItem{Description: "other meeting task"}))

	items, err := m.List(ctx, "meeting-1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "send the report", items[0].Description)
	assert.Equal(t, "book the venue", items[1].Description)

	other, err := m.List(ctx, "meeting-2")
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

func TestMemory_ListUnknownMeetingIsEmpty(t *testing.T) {
	m := NewMemory()
	items, err := m.List(context.Background(), "nope")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestMemory_ListReturnsCopy(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	require.NoError(t, m.Save(ctx, "m", types.ActionItem{Description: "a"}))

	items, err := m.List(ctx, "m")
	require.NoError(t, err)
	items[0].Description = "mutated"

	again, err := m.List(ctx, "m")
	require.NoError(t, err)
	assert.Equal(t, "a", again[0].Description)
}

func TestNewRedis_BadURL(t *testing.T) {
	_, err := NewRedis(context.Background(), "not-a-url", 0)
	assert.Error(t, err)
}
