package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderedKeySetSkipsBlanks(t *testing.T) {
	s := NewOrderedKeySet("a", "", "  ", "b", "a")
	assert.Equal(t, []string{"a", "b"}, s.Values())
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Contains("a"))
	assert.False(t, s.Contains("z"))
}

func TestOrderedKeySetValuesIsACopy(t *testing.T) {
	s := NewOrderedKeySet("a")
	got := s.Values()
	got[0] = "mutated"
	assert.Equal(t, []string{"a"}, s.Values())
}

func TestValidatedKeyMapPutRejectsBlank(t *testing.T) {
	m := NewValidatedKeyMap()
	err := m.Put("", "v")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidVariables))

	err = m.Put("k", "  ")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidVariables))
}

func TestValidatedKeyMapPutAllAppliesValidEntriesAndReportsRest(t *testing.T) {
	m := NewValidatedKeyMap()
	err := m.PutAll(map[string]string{"good": "value", "": "dropped"})
	require.Error(t, err)

	v, ok := m.Get("good")
	assert.True(t, ok)
	assert.Equal(t, "value", v)
	assert.Equal(t, 1, m.Len())
}

func TestValidatedKeyMapSnapshotIsIndependent(t *testing.T) {
	m := NewValidatedKeyMap()
	require.NoError(t, m.Put("k", "v"))
	snap := m.Snapshot()
	snap["k"] = "mutated"

	v, _ := m.Get("k")
	assert.Equal(t, "v", v)
}

func TestValidatedKeyMapKeysPreserveInsertionOrder(t *testing.T) {
	m := NewValidatedKeyMap()
	require.NoError(t, m.Put("z", "1"))
	require.NoError(t, m.Put("a", "2"))
	require.NoError(t, m.Put("z", "3"))

	assert.Equal(t, []string{"z", "a"}, m.Keys())
}
