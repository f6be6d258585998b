package lookup

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_Get(t *testing.T) {
	table := New[uint8]("colours", "unknown", map[uint8]string{
		2: "green",
		0: "red",
		7: "blue",
	})

	assert.Equal(t, "red", table.Get(0))
	assert.Equal(t, "green", table.Get(2))
	assert.Equal(t, "blue", table.Get(7))
	assert.Equal(t, "unknown", table.Get(1))
	assert.Equal(t, "unknown", table.Get(255))

	label, ok := table.Lookup(2)
	assert.True(t, ok)
	assert.Equal(t, "green", label)

	label, ok = table.Lookup(3)
	assert.False(t, ok)
	assert.Empty(t, label)
}

func TestTable_Ordering(t *testing.T) {
	table := New[uint64]("sparse", "reserved", map[uint64]string{
		200: "c",
		5:   "b",
		0:   "a",
	})

	assert.Equal(t, []uint64{0, 5, 200}, table.Codes())
	assert.Equal(t, []Row{
		{Code: 0, Label: "a"},
		{Code: 5, Label: "b"},
		{Code: 200, Label: "c"},
	}, table.Rows())
	assert.Equal(t, 3, table.Len())
	assert.Equal(t, "sparse", table.Name())
	assert.Equal(t, "reserved", table.Fallback())
}

func TestTable_Immutable(t *testing.T) {
	entries := map[int]string{1: "one"}
	table := New("numbers", "none", entries)

	entries[1] = "changed"
	entries[2] = "two"
	assert.Equal(t, "one", table.Get(1))
	assert.Equal(t, "none", table.Get(2))

	codes := table.Codes()
	codes[0] = 99
	assert.Equal(t, []int{1}, table.Codes())
}

func TestTable_ConcurrentReads(t *testing.T) {
	table := New[uint8]("modes", "reserved", map[uint8]string{0: "a", 1: "b"})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				_ = table.Get(uint8(j % 4))
				_ = table.Rows()
			}
		}(i)
	}
	wg.Wait()
}

func TestFind(t *testing.T) {
	a := New[uint8]("a", "x", map[uint8]string{})
	b := New[uint64]("b", "y", map[uint64]string{1: "one"})

	found, ok := Find("b", a, b)
	require.True(t, ok)
	assert.Equal(t, 1, found.Len())

	_, ok = Find("missing", a, b)
	assert.False(t, ok)
}
