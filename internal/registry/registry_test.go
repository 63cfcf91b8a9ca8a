package registry

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenteam/opsboard/internal/models"
)

func TestAll_UniqueNamesAndKeys(t *testing.T) {
	names := make(map[string]bool)
	keys := make(map[string]bool)

	for _, c := range All() {
		assert.False(t, names[c.Name], "duplicate name %q", c.Name)
		assert.False(t, keys[c.Key], "duplicate key %q", c.Key)
		names[c.Name] = true
		keys[c.Key] = true

		require.NotNil(t, c.Default, "collection %q has no default", c.Name)
	}
}

func TestByName(t *testing.T) {
	c, ok := ByName("equipment")
	require.True(t, ok)
	assert.Equal(t, "greenteam-equipment", c.Key)

	_, ok = ByName("unknown")
	assert.False(t, ok)
}

func TestByKey(t *testing.T) {
	c, ok := ByKey("greenteam-announcements")
	require.True(t, ok)
	assert.Equal(t, "announcements", c.Name)

	_, ok = ByKey("greenteam-unknown")
	assert.False(t, ok)
}

func TestResolveInitial(t *testing.T) {
	c, ok := ByName("announcements")
	require.True(t, ok)

	t.Run("absent value falls back to default", func(t *testing.T) {
		v := ResolveInitial(nil, c)
		assert.Equal(t, []models.Announcement{}, v)
	})

	t.Run("json null falls back to default", func(t *testing.T) {
		v := ResolveInitial(json.RawMessage("null"), c)
		assert.Equal(t, []models.Announcement{}, v)
	})

	t.Run("whitespace around null still absent", func(t *testing.T) {
		v := ResolveInitial(json.RawMessage("  null  "), c)
		assert.Equal(t, []models.Announcement{}, v)
	})

	t.Run("present value wins over default", func(t *testing.T) {
		raw := json.RawMessage(`[{"id":"a1","title":"First mow of the season"}]`)
		v := ResolveInitial(raw, c)

		got, ok := v.([]models.Announcement)
		require.True(t, ok)
		require.Len(t, got, 1)
		assert.Equal(t, "a1", got[0].ID)
	})

	t.Run("present empty array is not replaced by seed", func(t *testing.T) {
		checklist, ok := ByName("dailyChecklist")
		require.True(t, ok)
		require.NotEmpty(t, checklist.Default(), "seed checklist must be non-empty for this test")

		v := ResolveInitial(json.RawMessage("[]"), checklist)
		got, ok := v.([]models.ChecklistItem)
		require.True(t, ok)
		assert.Empty(t, got)
	})

	t.Run("malformed value falls back to default", func(t *testing.T) {
		v := ResolveInitial(json.RawMessage(`{"not":"an array"`), c)
		assert.Equal(t, []models.Announcement{}, v)
	})
}

func TestDefault_ReturnsFreshCopy(t *testing.T) {
	c, ok := ByName("dailyChecklist")
	require.True(t, ok)

	first := c.Default().([]models.ChecklistItem)
	require.NotEmpty(t, first)
	first[0].Label = "mutated"

	second := c.Default().([]models.ChecklistItem)
	assert.NotEqual(t, "mutated", second[0].Label)
}

func TestDefaultBuybackBoard_ColumnsMatchOrder(t *testing.T) {
	c, ok := ByName("buybackBoard")
	require.True(t, ok)

	board := c.Default().(models.BuybackBoard)
	require.NotEmpty(t, board.Order)
	for _, col := range board.Order {
		_, ok := board.Columns[col]
		assert.True(t, ok, "column %q listed in order but missing from map", col)
	}
}
