package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractRawDomain(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"example.com", "example.com"},
		{"https://example.com", "example.com"},
		{"https://example.com/health", "example.com"},
		{"http://example.com:8080/path", "example.com"},
		{"www.example.com", "example.com"},
		{"https://www.example.com", "example.com"},
		{"  example.com  ", "example.com"},
		{"example.com/", "example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ExtractRawDomain(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractRawDomain_Invalid(t *testing.T) {
	_, err := ExtractRawDomain("")
	assert.Error(t, err)

	_, err = ExtractRawDomain("https://")
	assert.Error(t, err)
}
