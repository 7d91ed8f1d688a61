package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDurationGoShortForm(t *testing.T) {
	d, err := parseDuration("5s")
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, d)

	d, err = parseDuration("1h30m")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, d)
}

func TestParseDurationISO8601(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"PT1H", time.Hour},
		{"PT30M", 30 * time.Minute},
		{"PT45S", 45 * time.Second},
		{"PT1H30M", time.Hour + 30*time.Minute},
		{"PT1H30M15S", time.Hour + 30*time.Minute + 15*time.Second},
	}
	for _, c := range cases {
		got, err := parseDuration(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
	}
}

func TestParseDurationRejectsEmpty(t *testing.T) {
	_, err := parseDuration("")
	assert.Error(t, err)
}

func TestParseDurationRejectsMalformedISO(t *testing.T) {
	_, err := parseDuration("P")
	assert.Error(t, err)

	_, err = parseDuration("PTX")
	assert.Error(t, err)
}

func TestParseDurationRejectsGarbage(t *testing.T) {
	_, err := parseDuration("not-a-duration")
	assert.Error(t, err)
}
