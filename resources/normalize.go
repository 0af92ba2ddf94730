package resources

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/agency-portfolio-backend/errs"
)

// NormalizeList accepts list input in any of the shapes clients send: a
// single JSON-encoded array (`["a","b"]`) or the values themselves. A lone
// value that only looks like an array, such as "[wip]", is kept literally.
// Normalising twice is a no-op. A nil input stays nil, meaning "not supplied".
func NormalizeList(values []string) []string {
	if values == nil {
		return nil
	}
	if len(values) == 1 {
		raw := strings.TrimSpace(values[0])
		if decoded, ok := decodeJSONList(raw); ok {
			return decoded
		}
		if raw == "" {
			return []string{}
		}
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.TrimSpace(v))
	}
	return out
}

func decodeJSONList(raw string) ([]string, bool) {
	if !strings.HasPrefix(raw, "[") || !strings.HasSuffix(raw, "]") {
		return nil, false
	}
	var decoded []string
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, false
	}
	if decoded == nil {
		decoded = []string{}
	}
	return decoded, true
}

// splitCSV splits comma separated values, trimming blanks away.
func splitCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseCategoryIDs reads category references given as a JSON array, a comma
// list or repeated values. Duplicates collapse; any malformed id fails the
// whole list with the same message an unresolved id gets.
func parseCategoryIDs(values []string) ([]uuid.UUID, error) {
	var raw []string
	for _, v := range NormalizeList(values) {
		raw = append(raw, splitCSV(v)...)
	}
	if len(raw) == 0 {
		return nil, errs.NewMissingRequiredFieldError("category_ids", "At least one category ID is required")
	}

	seen := make(map[uuid.UUID]bool, len(raw))
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(r)
		if err != nil {
			return nil, errs.NewBadRequestError(invalidCategoryIDs)
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, nil
}
