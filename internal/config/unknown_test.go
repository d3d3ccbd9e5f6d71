package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClosestMatch(t *testing.T) {
	tests := []struct {
		unknown string
		want    string
	}{
		{"time_out", "timeout"},
		{"auth_fil", "auth_file"},
		{"entity_gid", "entity_gids"},
		{"loglevel", "log_level"},
		{"something_else_entirely", ""},
	}

	for _, tt := range tests {
		t.Run(tt.unknown, func(t *testing.T) {
			assert.Equal(t, tt.want, closestMatch(tt.unknown, knownKeysList))
		})
	}
}

func TestLevenshtein(t *testing.T) {
	assert.Equal(t, 0, levenshtein("timeout", "timeout"))
	assert.Equal(t, 1, levenshtein("timeout", "timeouts"))
	assert.Equal(t, 3, levenshtein("", "abc"))
	assert.Equal(t, 3, levenshtein("abc", ""))
	assert.Equal(t, 3, levenshtein("kitten", "sitting"))
}
