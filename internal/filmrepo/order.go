package filmrepo

import (
	"fmt"
	"strings"
)

// sortableFields are the columns a listing may be ordered by.
var sortableFields = map[string]bool{
	FieldID:       true,
	FieldTitle:    true,
	FieldYear:     true,
	FieldDirector: true,
	FieldGenre:    true,
}

// ParseOrderBy reads an order such as "year desc" into a column and direction.
// Only "<column>" or "<column> ASC|DESC" is accepted, case-insensitively;
// an empty string means DefaultOrderBy.
func ParseOrderBy(orderBy string) (field string, descending bool, err error) {
	if strings.TrimSpace(orderBy) == "" {
		orderBy = DefaultOrderBy
	}

	parts := strings.Fields(orderBy)
	if len(parts) > 2 {
		return "", false, fmt.Errorf("%w: %q", ErrInvalidOrder, orderBy)
	}

	field = strings.ToLower(parts[0])
	if !sortableFields[field] {
		return "", false, fmt.Errorf("%w: unknown column %q", ErrInvalidOrder, parts[0])
	}

	if len(parts) == 2 {
		switch strings.ToUpper(parts[1]) {
		case "ASC":
		case "DESC":
			descending = true
		default:
			return "", false, fmt.Errorf("%w: unknown direction %q", ErrInvalidOrder, parts[1])
		}
	}
	return field, descending, nil
}

// ValidateLimit checks that 0 <= limit <= maxLimit. Zero means no limit.
func ValidateLimit(limit, maxLimit int) error {
	if limit < 0 || limit > maxLimit {
		return fmt.Errorf("%w: %d (allowed 0..%d)", ErrInvalidLimit, limit, maxLimit)
	}
	return nil
}
