package monitoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindow(t *testing.T) {
	offset, err := window(1, 100)
	require.NoError(t, err)
	assert.Equal(t, 0, offset)

	offset, err = window(3, 25)
	require.NoError(t, err)
	assert.Equal(t, 50, offset)
}

func TestWindow_InvalidPage(t *testing.T) {
	_, err := window(0, 100)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid page")

	_, err = window(-1, 100)
	require.Error(t, err)
}

func TestWindow_InvalidLimit(t *testing.T) {
	_, err := window(1, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid limit")

	_, err = window(1, -10)
	require.Error(t, err)
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, 0, pageCount(0, 100))
	assert.Equal(t, 1, pageCount(1, 100))
	assert.Equal(t, 1, pageCount(100, 100))
	assert.Equal(t, 2, pageCount(101, 100))
	assert.Equal(t, 5, pageCount(401, 100))
}
