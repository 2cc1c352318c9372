package sqlite

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// parseRFC3339 parses an RFC3339 formatted timestamp string.
// Returns an error if parsing fails with a descriptive message including the field name.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// appendPagination appends LIMIT and OFFSET clauses to a query builder if values are > 0.
// SQLite only accepts OFFSET after LIMIT, so an offset without a limit uses LIMIT -1.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit <= 0 && offset <= 0 {
		return
	}
	if limit <= 0 {
		limit = -1
	}
	query.WriteString(" LIMIT ?")
	*args = append(*args, limit)
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}

// encodeDefinitions stores a definition list as a JSON array.
func encodeDefinitions(defs []string) (string, error) {
	if defs == nil {
		defs = []string{}
	}
	b, err := json.Marshal(defs)
	if err != nil {
		return "", fmt.Errorf("failed to encode definitions: %w", err)
	}
	return string(b), nil
}

func decodeDefinitions(value string) ([]string, error) {
	defs := []string{}
	if err := json.Unmarshal([]byte(value), &defs); err != nil {
		return nil, fmt.Errorf("failed to decode definitions: %w", err)
	}
	return defs, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
