package accounts

import (
	"fmt"
	"strconv"
	"strings"
)

// segmentWidth is the zero-padded width of every generated code segment
// after the category prefix, e.g. 1-0001-0002.
const segmentWidth = 4

// NextRootCode generates the next root code for a category: the fixed
// category prefix followed by a 4-digit sequence one past the highest
// existing root code sharing that prefix.
func NextRootCode(category Category, existing []string) string {
	prefix := CategoryPrefix(category)
	max := 0
	for _, code := range existing {
		parts := strings.Split(code, "-")
		if len(parts) != 2 || parts[0] != prefix {
			continue
		}
		n, err := strconv.Atoi(parts[1])
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s-%0*d", prefix, segmentWidth, max+1)
}

// NextChildCode generates the next child code under parentCode: the parent
// code plus a 4-digit segment one past the highest existing sibling segment.
func NextChildCode(parentCode string, existing []string) string {
	parentSegments := len(strings.Split(parentCode, "-"))
	prefix := parentCode + "-"
	max := 0
	for _, code := range existing {
		if !strings.HasPrefix(code, prefix) {
			continue
		}
		parts := strings.Split(code, "-")
		if len(parts) != parentSegments+1 {
			continue
		}
		n, err := strconv.Atoi(parts[len(parts)-1])
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s%0*d", prefix, segmentWidth, max+1)
}
