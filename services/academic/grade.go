package academic

import (
	"sort"

	"github.com/sahilchouksey/academic-records-api/model"
)

// Score bounds of the Chilean grading scale.
const (
	MinScore = 1.0
	MaxScore = 7.0
)

// IsValidScore reports whether a score lies inside the grading scale.
func IsValidScore(score float64) bool {
	return score >= MinScore && score <= MaxScore
}

// ComputeFinal computes the weighted final grade for one enrollment from the
// course's evaluation scheme and the recorded scores, keyed by component.
// The result is only defined once every component has exactly one score:
// complete is false when the scheme is empty or any component is unsatisfied.
// The returned value is unrounded; display formatting rounds to one decimal.
func ComputeFinal(components []model.EvaluationComponent, scores map[ComponentKey]float64) (final float64, complete bool) {
	if len(components) == 0 {
		return 0, false
	}
	for _, c := range components {
		score, ok := scores[KeyOf(c)]
		if !ok {
			return 0, false
		}
		final += score * c.Weight / 100
	}
	return final, true
}

// DisplayLabel derives the label shown for a component key: the type alone
// when the scheme has a single component of that type, the full
// "{Type} {Number}" form when several exist. The derivation depends on the
// scheme's current structure and is recomputed on every read, never stored.
func DisplayLabel(key ComponentKey, components []model.EvaluationComponent) string {
	count := 0
	for _, c := range components {
		if c.Type == key.Type {
			count++
		}
	}
	if count == 1 {
		return key.Type
	}
	return key.String()
}

// SortGrades orders grade records of one enrollment by ascending component
// sequence number, the order they appear in listings. Keys that fail to parse
// sort first with number 0, matching how malformed legacy keys were treated.
func SortGrades(grades []model.Grade) {
	sort.SliceStable(grades, func(i, j int) bool {
		return componentNumber(grades[i].Component) < componentNumber(grades[j].Component)
	})
}

func componentNumber(component string) int {
	key, err := ParseComponentKey(component)
	if err != nil {
		return 0
	}
	return key.Number
}
