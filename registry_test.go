package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStrategy struct {
	keys []string
}

func (f fakeStrategy) Keys() []string { return f.keys }

func TestStrategyRegistryLookupIsCaseNormalized(t *testing.T) {
	reg := NewStrategyRegistry([]fakeStrategy{
		{keys: []string{"Classpath"}},
	}, nil)

	s, ok := reg.Lookup("CLASSPATH")
	require.True(t, ok)
	assert.Equal(t, []string{"classpath"}, s.keys)
}

func TestStrategyRegistryLaterRegistrationWins(t *testing.T) {
	reg := NewStrategyRegistry([]fakeStrategy{
		{keys: []string{"yaml"}},
		{keys: []string{"yaml", "yml"}},
	}, nil)

	s, ok := reg.Lookup("yaml")
	require.True(t, ok)
	assert.Equal(t, []string{"yaml", "yml"}, s.keys)
}

func TestStrategyRegistryKeysPreserveFirstInsertionOrder(t *testing.T) {
	reg := NewStrategyRegistry([]fakeStrategy{
		{keys: []string{"b"}},
		{keys: []string{"a"}},
		{keys: []string{"b"}},
	}, nil)

	assert.Equal(t, []string{"b", "a"}, reg.Keys())
}

func TestStrategyResolverReturnsNotFoundError(t *testing.T) {
	reg := NewStrategyRegistry([]fakeStrategy{{keys: []string{"a"}}}, nil)
	notFound := errors.New("no strategy for key")
	resolver := NewStrategyResolver(reg, func(key string) error { return notFound })

	_, err := resolver.Resolve("missing")
	assert.ErrorIs(t, err, notFound)
}

func TestStrategyResolverResolvesRegisteredKey(t *testing.T) {
	reg := NewStrategyRegistry([]fakeStrategy{{keys: []string{"a"}}}, nil)
	resolver := NewStrategyResolver(reg, func(key string) error { return errors.New("missing") })

	s, err := resolver.Resolve("a")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, s.keys)
}

func TestNormalizeKey(t *testing.T) {
	assert.Equal(t, "abc", NormalizeKey("ABC"))
}
