package models_test

import (
	"encoding/json"
	"testing"

	"github.com/nycdan-n2p/call-intel-widget/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatDegradesToZero(t *testing.T) {
	var missing models.Stat
	assert.False(t, missing.Valid)
	assert.Equal(t, 0.0, missing.Value())

	computed := models.StatOf(0)
	assert.True(t, computed.Valid)
	assert.Equal(t, 0.0, computed.Value())
}

func TestStatMarshalJSON(t *testing.T) {
	tests := map[string]struct {
		stat     models.Stat
		expected string
	}{
		"Missing":  {stat: models.Stat{}, expected: "0"},
		"Zero":     {stat: models.StatOf(0), expected: "0"},
		"Fraction": {stat: models.StatOf(33.3), expected: "33.3"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			data, err := json.Marshal(tt.stat)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(data))
		})
	}
}

func TestCountMarshalJSON(t *testing.T) {
	data, err := json.Marshal(models.Count{})
	require.NoError(t, err)
	assert.Equal(t, "0", string(data))

	data, err = json.Marshal(models.CountOf(42))
	require.NoError(t, err)
	assert.Equal(t, "42", string(data))
}

func TestStatUnmarshalJSON(t *testing.T) {
	var s models.Stat
	require.NoError(t, json.Unmarshal([]byte("12.5"), &s))
	assert.True(t, s.Valid)
	assert.Equal(t, 12.5, s.Val)

	var c models.Count
	require.NoError(t, json.Unmarshal([]byte("7"), &c))
	assert.True(t, c.Valid)
	assert.Equal(t, 7, c.N)
}
