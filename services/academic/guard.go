package academic

import (
	"fmt"
	"strings"
)

// Kind names an entity kind the deletion guard knows about.
type Kind string

const (
	KindStudent          Kind = "student"
	KindProfessor        Kind = "professor"
	KindCourse           Kind = "course"
	KindEnrollment       Kind = "enrollment"
	KindCourseAssignment Kind = "course assignment"
	KindGrade            Kind = "grade"
)

// DependentRule declares one kind of dependent record that blocks deletion.
// Rules are ordered; the reason text lists blocking kinds in rule order.
type DependentRule struct {
	Kind Kind
	// FilterField is the column on the dependent that references the entity
	// under deletion. Informational for callers building count queries.
	FilterField string
}

// guardRules is the single parameterized rule table driving every deletion
// verdict. Course assignments do not block course deletion: they are removed
// in the same transaction as the course itself.
var guardRules = map[Kind][]DependentRule{
	KindStudent: {
		{Kind: KindEnrollment, FilterField: "student_id"},
		{Kind: KindGrade, FilterField: "enrollment_id"}, // via the student's enrollments
	},
	KindProfessor: {
		{Kind: KindCourseAssignment, FilterField: "professor_id"},
		{Kind: KindGrade, FilterField: "professor_id"},
	},
	KindCourse: {
		{Kind: KindEnrollment, FilterField: "course_id"},
	},
	KindEnrollment: {
		{Kind: KindGrade, FilterField: "enrollment_id"},
	},
}

// Rules returns the ordered dependent rules for a kind. Kinds without rules
// (grades, course assignments) are always deletable.
func Rules(kind Kind) []DependentRule {
	return guardRules[kind]
}

// Verdict is the outcome of a deletion guard check. Blocking holds the raw
// dependent counts found, keyed by dependent kind; it is empty on Allow.
type Verdict struct {
	Allowed  bool           `json:"allowed"`
	Reason   string         `json:"reason,omitempty"`
	Blocking map[Kind]int64 `json:"blocking,omitempty"`
}

// Allow is the verdict for an entity with no blocking dependents.
var Allow = Verdict{Allowed: true}

// Evaluate produces a verdict for deleting an entity of the given kind, given
// the dependent counts fetched by the caller. Every count for the kind's rules
// must be present; the verdict enumerates all blocking kinds found, in rule
// order ("has N enrollment(s) and M grade(s)").
func Evaluate(kind Kind, counts map[Kind]int64) Verdict {
	blocking := make(map[Kind]int64)
	var parts []string
	for _, rule := range guardRules[kind] {
		if n := counts[rule.Kind]; n > 0 {
			blocking[rule.Kind] = n
			parts = append(parts, fmt.Sprintf("%d %s(s)", n, rule.Kind))
		}
	}
	if len(parts) == 0 {
		return Allow
	}
	return Verdict{
		Allowed:  false,
		Reason:   fmt.Sprintf("cannot delete %s: has %s", kind, strings.Join(parts, " and ")),
		Blocking: blocking,
	}
}
