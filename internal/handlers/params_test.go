package handlers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T, query string) *gin.Context {
	gin.SetMode(gin.TestMode)

	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ctx.Request = httptest.NewRequest("GET", "/?"+query, nil)

	return ctx
}

func TestParsePagination_Defaults(t *testing.T) {
	page, limit, err := parsePagination(testContext(t, ""))

	require.NoError(t, err)
	assert.Equal(t, 1, page)
	assert.Equal(t, 100, limit)
}

func TestParsePagination(t *testing.T) {
	page, limit, err := parsePagination(testContext(t, "page=3&limit=25"))

	require.NoError(t, err)
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, limit)
}

func TestParsePagination_RejectsInvalidValues(t *testing.T) {
	cases := []string{"page=abc", "page=0", "page=-1", "limit=-5", "limit=0", "limit=ten"}

	for _, query := range cases {
		_, _, err := parsePagination(testContext(t, query))

		assert.Error(t, err, query)
	}
}

func TestParseTime(t *testing.T) {
	parsed, err := parseTime(testContext(t, "start_time=2026-01-15T10%3A00%3A00Z"), "start_time")

	require.NoError(t, err)
	require.NotNil(t, parsed)
	assert.Equal(t, time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC), parsed.UTC())
}

func TestParseTime_Absent(t *testing.T) {
	parsed, err := parseTime(testContext(t, ""), "start_time")

	require.NoError(t, err)
	assert.Nil(t, parsed)
}

func TestParseTime_Malformed(t *testing.T) {
	_, err := parseTime(testContext(t, "start_time=yesterday"), "start_time")

	assert.Error(t, err)
}

func TestParseLabels(t *testing.T) {
	labels, err := parseLabels(testContext(t, `labels=%7B%22region%22%3A%22us-east%22%7D`))

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"region": "us-east"}, labels)
}

func TestParseLabels_Malformed(t *testing.T) {
	_, err := parseLabels(testContext(t, "labels=not-json"))

	assert.Error(t, err)
}
