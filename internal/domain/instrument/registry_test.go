package instrument

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey() Key {
	return Key{InstrumentID: 1, MarketCode: "XPAR", Currency: "EUR"}
}

func TestRegistry_Register(t *testing.T) {
	t.Run("first registration wins", func(t *testing.T) {
		r := NewRegistry()
		inst := New(testKey(), "Acme Corp", 100, 2)

		ok := r.Register(inst)

		require.True(t, ok)
		assert.Len(t, r.List(), 1)
	})

	t.Run("duplicate key is rejected and leaves the registry unchanged", func(t *testing.T) {
		r := NewRegistry()
		first := New(testKey(), "Acme Corp", 100, 2)
		second := New(testKey(), "Acme Corp Renamed", 100, 2)

		require.True(t, r.Register(first))
		ok := r.Register(second)

		assert.False(t, ok)
		list := r.List()
		require.Len(t, list, 1)
		assert.Equal(t, "Acme Corp", list[0].Name)
	})
}

func TestRegistry_List_PreservesInsertionOrder(t *testing.T) {
	r := NewRegistry()
	keyA := Key{InstrumentID: 1, MarketCode: "XPAR", Currency: "EUR"}
	keyB := Key{InstrumentID: 2, MarketCode: "XPAR", Currency: "EUR"}

	r.Register(New(keyB, "B", 1, 0))
	r.Register(New(keyA, "A", 1, 0))

	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, "B", list[0].Name)
	assert.Equal(t, "A", list[1].Name)
}

func TestRegistry_Find(t *testing.T) {
	r := NewRegistry()
	inst := New(testKey(), "Acme Corp", 100, 2)
	r.Register(inst)

	t.Run("known key", func(t *testing.T) {
		found, ok := r.Find(testKey())
		require.True(t, ok)
		assert.Equal(t, inst, found)
	})

	t.Run("unknown key is absent", func(t *testing.T) {
		_, ok := r.Find(Key{InstrumentID: 999, MarketCode: "XPAR", Currency: "EUR"})
		assert.False(t, ok)
	})
}

func TestNew_TruncatesNameToBoundedLength(t *testing.T) {
	long := make([]rune, 80)
	for i := range long {
		long[i] = 'x'
	}

	inst := New(testKey(), string(long), 100, 2)

	assert.Len(t, []rune(inst.Name), maxNameLength)
}
