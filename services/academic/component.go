// Package academic holds the pure decision logic of the registry: the
// deletion guard rules, evaluation scheme validation, and final grade
// aggregation. Nothing in this package touches the database; callers fetch
// the relevant records and hand them in.
package academic

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sahilchouksey/academic-records-api/model"
)

// ComponentTypes is the fixed vocabulary for evaluation component types.
var ComponentTypes = []string{
	"Exam",
	"Assignment",
	"Project",
	"Final Exam",
	"Presentation",
	"Lab",
}

var ErrInvalidComponentKey = errors.New("invalid component key")

// ComponentKey identifies one evaluation component within a course's scheme.
// The string form "{Type} {Number}" (e.g., "Exam 1") is what grades store;
// everywhere else the structured form is used.
type ComponentKey struct {
	Type   string
	Number int
}

// String renders the storage form of the key.
func (k ComponentKey) String() string {
	return fmt.Sprintf("%s %d", k.Type, k.Number)
}

// ParseComponentKey parses the storage form back into a structured key.
// The number is the last space-separated token; the type may itself contain
// spaces ("Final Exam 2").
func ParseComponentKey(s string) (ComponentKey, error) {
	idx := strings.LastIndex(s, " ")
	if idx <= 0 {
		return ComponentKey{}, ErrInvalidComponentKey
	}
	number, err := strconv.Atoi(s[idx+1:])
	if err != nil || number < 1 {
		return ComponentKey{}, ErrInvalidComponentKey
	}
	return ComponentKey{Type: s[:idx], Number: number}, nil
}

// KeyOf returns the structured key of a scheme component.
func KeyOf(c model.EvaluationComponent) ComponentKey {
	return ComponentKey{Type: c.Type, Number: c.Number}
}

// IsValidComponentType reports whether t belongs to the fixed vocabulary.
func IsValidComponentType(t string) bool {
	for _, known := range ComponentTypes {
		if t == known {
			return true
		}
	}
	return false
}

// NextNumber returns the sequence number to use when adding a new component
// of the given type: 1 + the highest existing number among components sharing
// that type, or 1 if none exist.
func NextNumber(components []model.EvaluationComponent, componentType string) int {
	max := 0
	for _, c := range components {
		if c.Type == componentType && c.Number > max {
			max = c.Number
		}
	}
	return max + 1
}
