package academic

import (
	"fmt"
	"math"

	"github.com/sahilchouksey/academic-records-api/model"
)

// RequiredWeightSum is the total the component weights of a non-empty scheme
// must reach before it can be persisted.
const RequiredWeightSum = 100.0

// WeightSumError reports a scheme whose weights do not sum to 100.
type WeightSumError struct {
	Sum float64
}

func (e *WeightSumError) Error() string {
	return fmt.Sprintf("evaluation weights must sum to 100, got %g", e.Sum)
}

// ComponentError reports an individual component that fails validation.
type ComponentError struct {
	Key    ComponentKey
	Detail string
}

func (e *ComponentError) Error() string {
	return fmt.Sprintf("component %q: %s", e.Key.String(), e.Detail)
}

// weightCents converts a weight percentage to integer hundredths. Sums are
// compared at two decimal places so entries like 33.33+33.33+33.34 validate
// without binary floating-point drift.
func weightCents(w float64) int64 {
	return int64(math.Round(w * 100))
}

// WeightSum returns the scheme's total weight, rounded to two decimals.
func WeightSum(components []model.EvaluationComponent) float64 {
	var cents int64
	for _, c := range components {
		cents += weightCents(c.Weight)
	}
	return float64(cents) / 100
}

// ValidateWeights checks the save-time weight invariant: a non-empty scheme
// must total exactly 100 (at two decimal places). An empty scheme is always
// valid; a course may have no evaluations configured yet.
func ValidateWeights(components []model.EvaluationComponent) error {
	if len(components) == 0 {
		return nil
	}
	var cents int64
	for _, c := range components {
		cents += weightCents(c.Weight)
	}
	if cents != weightCents(RequiredWeightSum) {
		return &WeightSumError{Sum: float64(cents) / 100}
	}
	return nil
}

// ValidateScheme runs the full save-time validation of an evaluation scheme:
// every component carries a known type, a positive sequence number, and a
// weight in (0, 100]; (type, number) pairs are unique; and the weights sum to
// exactly 100. Component-level failures are reported before the sum check.
func ValidateScheme(components []model.EvaluationComponent) error {
	seen := make(map[ComponentKey]bool, len(components))
	for _, c := range components {
		key := KeyOf(c)
		if !IsValidComponentType(c.Type) {
			return &ComponentError{Key: key, Detail: "unknown component type"}
		}
		if c.Number < 1 {
			return &ComponentError{Key: key, Detail: "sequence number must be at least 1"}
		}
		if c.Weight <= 0 || c.Weight > 100 {
			return &ComponentError{Key: key, Detail: "weight must be greater than 0 and at most 100"}
		}
		if seen[key] {
			return &ComponentError{Key: key, Detail: "duplicate component"}
		}
		seen[key] = true
	}
	return ValidateWeights(components)
}
