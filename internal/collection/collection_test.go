package collection

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	key   string
	value int
}

func itemKey(i item) string { return i.key }

func TestAppendGrowsPastInitialCapacity(t *testing.T) {
	c := New[item](2, itemKey)
	require.Equal(t, 2, c.Cap())

	for i := 0; i < 12; i++ {
		require.NoError(t, c.Append(item{key: fmt.Sprintf("k%d", i), value: i}))
	}

	assert.Equal(t, 12, c.Len())
	// 2 -> 5 -> 11 -> 23
	assert.Equal(t, 23, c.Cap())
	for i := 0; i < 12; i++ {
		got, ok := c.At(i)
		require.True(t, ok)
		assert.Equal(t, i, got.value)

		byKey, ok := c.Find(fmt.Sprintf("k%d", i))
		require.True(t, ok)
		assert.Equal(t, i, byKey.value)
	}
}

func TestAppendRejectsDuplicateKey(t *testing.T) {
	c := New[item](4, itemKey)
	require.NoError(t, c.Append(item{key: "savings"}))

	err := c.Append(item{key: "savings", value: 9})

	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.Equal(t, 1, c.Len())
}

func TestUnkeyedCollectionAcceptsDuplicates(t *testing.T) {
	c := New[item](1, nil)
	require.NoError(t, c.Append(item{key: "a"}))
	require.NoError(t, c.Append(item{key: "a"}))

	assert.Equal(t, 2, c.Len())
	_, err := c.Remove("a")
	assert.ErrorIs(t, err, ErrUnkeyed)
	_, ok := c.Find("a")
	assert.False(t, ok)
}

func TestGrowthFailureLeavesCollectionUnchanged(t *testing.T) {
	c := New[item](2, itemKey, WithMaxCapacity(3))
	require.NoError(t, c.Append(item{key: "a"}))
	require.NoError(t, c.Append(item{key: "b"}))
	require.NoError(t, c.Append(item{key: "c"}))
	require.Equal(t, 3, c.Cap())

	err := c.Append(item{key: "d"})

	assert.ErrorIs(t, err, ErrGrowthFailed)
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, 3, c.Cap())
	assert.False(t, c.Contains("d"))
}

func TestNegativeMaxCapacityDisablesGrowth(t *testing.T) {
	c := New[item](0, itemKey, WithMaxCapacity(-1))

	assert.ErrorIs(t, c.Append(item{key: "a"}), ErrGrowthFailed)
	assert.Zero(t, c.Len())
	assert.Zero(t, c.Cap())
}

func TestRemoveShiftsRemainingItems(t *testing.T) {
	c := New[item](4, itemKey)
	for _, k := range []string{"a", "b", "c", "d"} {
		require.NoError(t, c.Append(item{key: k}))
	}

	removed, err := c.Remove("b")
	require.NoError(t, err)
	assert.Equal(t, "b", removed.key)

	keys := make([]string, 0, c.Len())
	for _, it := range c.Items() {
		keys = append(keys, it.key)
	}
	assert.Equal(t, []string{"a", "c", "d"}, keys)
	assert.Equal(t, 4, c.Cap())

	_, err = c.Remove("b")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLastAndAtBounds(t *testing.T) {
	c := New[item](1, nil)
	_, ok := c.Last()
	assert.False(t, ok)

	require.NoError(t, c.Append(item{value: 1}))
	require.NoError(t, c.Append(item{value: 2}))

	last, ok := c.Last()
	require.True(t, ok)
	assert.Equal(t, 2, last.value)

	_, ok = c.At(-1)
	assert.False(t, ok)
	_, ok = c.At(2)
	assert.False(t, ok)
}

func TestClearReleasesAndKeepsCapacity(t *testing.T) {
	c := New[item](2, itemKey)
	require.NoError(t, c.Append(item{key: "a"}))
	require.NoError(t, c.Append(item{key: "b"}))
	require.NoError(t, c.Append(item{key: "c"}))

	var released []string
	c.Clear(func(i item) { released = append(released, i.key) })

	assert.Equal(t, []string{"a", "b", "c"}, released)
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 5, c.Cap())
	require.NoError(t, c.Append(item{key: "a"}))
}

func TestItemsReturnsCopy(t *testing.T) {
	c := New[item](2, itemKey)
	require.NoError(t, c.Append(item{key: "a", value: 1}))

	items := c.Items()
	items[0].value = 99

	got, _ := c.Find("a")
	assert.Equal(t, 1, got.value)
}

func TestIsFull(t *testing.T) {
	c := New[item](1, nil)
	assert.False(t, c.IsFull())
	require.NoError(t, c.Append(item{}))
	assert.True(t, c.IsFull())
}

func TestFindFunc(t *testing.T) {
	c := New[item](2, itemKey)
	require.NoError(t, c.Append(item{key: "a", value: 1}))
	require.NoError(t, c.Append(item{key: "b", value: 2}))

	got, ok := c.FindFunc(func(i item) bool { return i.value == 2 })
	require.True(t, ok)
	assert.Equal(t, "b", got.key)

	_, ok = c.FindFunc(func(i item) bool { return i.value == 3 })
	assert.False(t, ok)
}
