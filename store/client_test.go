// ABOUTME: Tests for slot-level persistence semantics
// ABOUTME: Covers absence reporting, overwrite, and reset behavior
package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSlotAbsent(t *testing.T) {
	c, cleanup := NewTestClient(t)
	defer cleanup()

	data, ok, err := c.GetSlot(SlotHistory)
	require.NoError(t, err)
	assert.False(t, ok, "missing slot must report absence, not error")
	assert.Nil(t, data)
}

func TestSetGetSlotRoundTrip(t *testing.T) {
	c, cleanup := NewTestClient(t)
	defer cleanup()

	payload := []byte(`[{"id":"a"}]`)
	require.NoError(t, c.SetSlot(SlotHistory, payload))

	data, ok, err := c.GetSlot(SlotHistory)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, payload, data)
}

func TestSetSlotOverwrites(t *testing.T) {
	c, cleanup := NewTestClient(t)
	defer cleanup()

	require.NoError(t, c.SetSlot(SlotCategories, []byte(`["a"]`)))
	require.NoError(t, c.SetSlot(SlotCategories, []byte(`["b"]`)))

	data, ok, err := c.GetSlot(SlotCategories)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte(`["b"]`), data)
}

func TestSlotsAreIndependent(t *testing.T) {
	c, cleanup := NewTestClient(t)
	defer cleanup()

	require.NoError(t, c.SetSlot(SlotSignatures, []byte(`[{"id":"s1"}]`)))

	_, ok, err := c.GetSlot(SlotTemplates)
	require.NoError(t, err)
	assert.False(t, ok, "writing one slot must not create another")
}

func TestResetWipesAllSlots(t *testing.T) {
	c, cleanup := NewTestClient(t)
	defer cleanup()

	require.NoError(t, c.SetSlot(SlotHistory, []byte(`[]`)))
	require.NoError(t, c.Reset())

	_, ok, err := c.GetSlot(SlotHistory)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLegacySlotNamesAreDistinct(t *testing.T) {
	c, cleanup := NewTestClient(t)
	defer cleanup()

	require.NoError(t, c.SetSlot(SlotLegacyCategories, []byte(`["VIP"]`)))

	_, ok, err := c.GetSlot(SlotCategories)
	require.NoError(t, err)
	assert.False(t, ok, "legacy and new-format category slots must not alias")
}
