package probes

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		elapsed       time.Duration
		degradedAfter time.Duration
		want          string
	}{
		{"fast success", nil, 100 * time.Millisecond, time.Second, "healthy"},
		{"slow success", nil, 2 * time.Second, time.Second, "degraded"},
		{"exactly at threshold", nil, time.Second, time.Second, "healthy"},
		{"failure", errors.New("connection refused"), 50 * time.Millisecond, time.Second, "unhealthy"},
		{"slow failure", errors.New("timeout"), 5 * time.Second, time.Second, "unhealthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err, tt.elapsed, tt.degradedAfter))
		})
	}
}

func TestClassify_DefaultThreshold(t *testing.T) {
	assert.Equal(t, "healthy", Classify(nil, 500*time.Millisecond, 0))
	assert.Equal(t, "degraded", Classify(nil, 2*time.Second, 0))
	assert.Equal(t, "degraded", Classify(nil, 2*time.Second, -time.Second))
}
