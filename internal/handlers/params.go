package handlers

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	defaultPage  = 1
	defaultLimit = 100
)

// parsePagination reads page/limit query params, falling back to the
// defaults when absent. Explicitly supplied values must be positive
// integers; anything else is an error rather than a silent clamp.
func parsePagination(ctx *gin.Context) (int, int, error) {
	page := defaultPage
	limit := defaultLimit

	if raw := ctx.Query("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return 0, 0, fmt.Errorf("invalid page: must be a positive integer")
		}
		page = parsed
	}

	if raw := ctx.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return 0, 0, fmt.Errorf("invalid limit: must be a positive integer")
		}
		limit = parsed
	}

	return page, limit, nil
}

// parseTime reads an RFC 3339 query param, nil when absent.
func parseTime(ctx *gin.Context, name string) (*time.Time, error) {
	raw := ctx.Query(name)

	if raw == "" {
		return nil, nil
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: must be RFC 3339", name)
	}

	return &parsed, nil
}

// parseLabels reads the labels query param as a JSON object.
func parseLabels(ctx *gin.Context) (map[string]string, error) {
	raw := ctx.Query("labels")

	if raw == "" {
		return nil, nil
	}

	var labels map[string]string

	if err := json.Unmarshal([]byte(raw), &labels); err != nil {
		return nil, fmt.Errorf("invalid labels: must be a JSON object")
	}

	return labels, nil
}
