package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{"unset falls back to default", "", 8},
		{"positive value wins over default", "20", 20},
		{"single digit", "3", 3},
		{"zero falls back to default", "0", 8},
		{"negative falls back to default", "-5", 8},
		{"garbage falls back to default", "lots", 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("COUNT", tt.value)
			assert.Equal(t, tt.want, envInt("COUNT", 8))
		})
	}
}

func TestEnv(t *testing.T) {
	t.Run("set value wins", func(t *testing.T) {
		t.Setenv("API_BASE_URL", "http://example.com:9090")
		assert.Equal(t, "http://example.com:9090", env("API_BASE_URL", "http://localhost:8080"))
	})

	t.Run("unset falls back to default", func(t *testing.T) {
		t.Setenv("API_BASE_URL", "")
		assert.Equal(t, "http://localhost:8080", env("API_BASE_URL", "http://localhost:8080"))
	})
}
