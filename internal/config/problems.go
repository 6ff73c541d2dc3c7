package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ParseProblemRange expands a problem selection expression into an ordered
// list of problem IDs. The expression is a comma-separated list of single
// IDs and inclusive ranges, e.g. "1,5-10,42".
//
// Duplicate IDs are removed and the result is returned in ascending order,
// since presentation order in the document is always ascending by problem
// number. IDs must be positive; ranges must not be descending.
func ParseProblemRange(expr string) ([]int, error) {
	seen := make(map[int]bool)

	for _, group := range strings.Split(expr, ",") {
		group = strings.TrimSpace(group)
		if group == "" {
			return nil, fmt.Errorf("%w: empty element in %q", ErrInvalidProblemRange, expr)
		}

		if start, end, ok := strings.Cut(group, "-"); ok {
			lo, err := parseProblemID(start)
			if err != nil {
				return nil, err
			}
			hi, err := parseProblemID(end)
			if err != nil {
				return nil, err
			}
			if hi < lo {
				return nil, fmt.Errorf("%w: descending range %q", ErrInvalidProblemRange, group)
			}
			for id := lo; id <= hi; id++ {
				seen[id] = true
			}
			continue
		}

		id, err := parseProblemID(group)
		if err != nil {
			return nil, err
		}
		seen[id] = true
	}

	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}

// parseProblemID parses a single positive problem number.
func parseProblemID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidProblemRange, s)
	}
	if id <= 0 {
		return 0, fmt.Errorf("%w: problem IDs are positive, got %d", ErrInvalidProblemRange, id)
	}
	return id, nil
}
