package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapPropertySourceDefensiveCopy(t *testing.T) {
	src := map[string]string{"a": "1"}
	ps := NewMapPropertySource(src)
	src["a"] = "mutated"

	v, ok := ps.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "1", v)
}

func TestMapPropertySourceMiss(t *testing.T) {
	ps := NewMapPropertySource(nil)
	_, ok := ps.Get("missing")
	assert.False(t, ok)
}

func TestEnvPropertySource(t *testing.T) {
	os.Setenv("LIANA_TEST_VAR", "hello")
	defer os.Unsetenv("LIANA_TEST_VAR")

	v, ok := EnvPropertySource{}.Get("LIANA_TEST_VAR")
	assert.True(t, ok)
	assert.Equal(t, "hello", v)
}

func TestFuncPropertySource(t *testing.T) {
	ps := FuncPropertySource(func(key string) (string, bool) {
		if key == "k" {
			return "v", true
		}
		return "", false
	})
	v, ok := ps.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestChainSourcesFirstHitWins(t *testing.T) {
	first := NewMapPropertySource(map[string]string{"a": "from-first"})
	second := NewMapPropertySource(map[string]string{"a": "from-second", "b": "only-second"})

	v, ok := chainSources("a", first, second)
	assert.True(t, ok)
	assert.Equal(t, "from-first", v)

	v, ok = chainSources("b", first, second)
	assert.True(t, ok)
	assert.Equal(t, "only-second", v)

	_, ok = chainSources("missing", first, second)
	assert.False(t, ok)
}

func TestChainSourcesSkipsNil(t *testing.T) {
	v, ok := chainSources("a", nil, NewMapPropertySource(map[string]string{"a": "1"}))
	assert.True(t, ok)
	assert.Equal(t, "1", v)
}
