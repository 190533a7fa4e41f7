package server

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	ledgerdomain "github.com/smallbiznis/ledgerdesk/internal/ledgerstore/domain"
)

const dateOnlyLayout = "2006-01-02"

// parseDateWindow reads the from/to query parameters. Both are required and
// accept either RFC 3339 or a bare calendar date; a bare "to" date is widened
// to the end of that day so single-day windows behave as expected.
func parseDateWindow(c *gin.Context) (ledgerdomain.DateWindow, error) {
	from, err := parseWindowTime(c.Query("from"), false)
	if err != nil {
		return ledgerdomain.DateWindow{}, newValidationError("from", "invalid_date", "expected RFC 3339 or yyyy-mm-dd")
	}
	to, err := parseWindowTime(c.Query("to"), true)
	if err != nil {
		return ledgerdomain.DateWindow{}, newValidationError("to", "invalid_date", "expected RFC 3339 or yyyy-mm-dd")
	}
	if from == nil || to == nil {
		return ledgerdomain.DateWindow{}, newValidationError("request", "missing_date_window", "from and to are required")
	}
	return ledgerdomain.DateWindow{From: *from, To: *to}, nil
}

func parseWindowTime(value string, endOfDay bool) (*time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	if parsed, err := time.Parse(time.RFC3339, trimmed); err == nil {
		return &parsed, nil
	}
	parsed, err := time.Parse(dateOnlyLayout, trimmed)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		parsed = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
	} else {
		parsed = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
	}
	return &parsed, nil
}

func parseLimit(c *gin.Context, fallback, max int) (int, error) {
	raw := strings.TrimSpace(c.Query("limit"))
	if raw == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 0 {
		return 0, newValidationError("limit", "invalid_limit", "expected a non-negative integer")
	}
	if parsed == 0 || parsed > max {
		return max, nil
	}
	return parsed, nil
}
