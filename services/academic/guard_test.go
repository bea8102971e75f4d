package academic

import "testing"

func TestEvaluateAllows(t *testing.T) {
	kinds := []Kind{KindStudent, KindProfessor, KindCourse, KindEnrollment}
	for _, kind := range kinds {
		verdict := Evaluate(kind, map[Kind]int64{})
		if !verdict.Allowed {
			t.Errorf("Evaluate(%s, none) blocked: %s", kind, verdict.Reason)
		}
		if verdict.Reason != "" {
			t.Errorf("allowed verdict for %s carries reason %q", kind, verdict.Reason)
		}
	}
}

func TestEvaluateStudentBlocked(t *testing.T) {
	verdict := Evaluate(KindStudent, map[Kind]int64{
		KindEnrollment: 2,
		KindGrade:      5,
	})
	if verdict.Allowed {
		t.Fatal("expected blocked verdict")
	}
	want := "cannot delete student: has 2 enrollment(s) and 5 grade(s)"
	if verdict.Reason != want {
		t.Errorf("reason = %q, want %q", verdict.Reason, want)
	}
	if verdict.Blocking[KindEnrollment] != 2 || verdict.Blocking[KindGrade] != 5 {
		t.Errorf("blocking counts = %v", verdict.Blocking)
	}
}

func TestEvaluateStudentEnrollmentsOnly(t *testing.T) {
	verdict := Evaluate(KindStudent, map[Kind]int64{KindEnrollment: 1})
	if verdict.Allowed {
		t.Fatal("expected blocked verdict")
	}
	want := "cannot delete student: has 1 enrollment(s)"
	if verdict.Reason != want {
		t.Errorf("reason = %q, want %q", verdict.Reason, want)
	}
	if _, ok := verdict.Blocking[KindGrade]; ok {
		t.Error("grade kind reported with zero count")
	}
}

func TestEvaluateProfessorBlocked(t *testing.T) {
	verdict := Evaluate(KindProfessor, map[Kind]int64{
		KindCourseAssignment: 3,
		KindGrade:            7,
	})
	if verdict.Allowed {
		t.Fatal("expected blocked verdict")
	}
	want := "cannot delete professor: has 3 course assignment(s) and 7 grade(s)"
	if verdict.Reason != want {
		t.Errorf("reason = %q, want %q", verdict.Reason, want)
	}
}

func TestEvaluateCourseIgnoresAssignments(t *testing.T) {
	// Assignments never block a course: they are removed with it
	verdict := Evaluate(KindCourse, map[Kind]int64{KindCourseAssignment: 4})
	if !verdict.Allowed {
		t.Errorf("course with only assignments blocked: %s", verdict.Reason)
	}

	verdict = Evaluate(KindCourse, map[Kind]int64{KindEnrollment: 1})
	if verdict.Allowed {
		t.Fatal("course with enrollments allowed")
	}
	want := "cannot delete course: has 1 enrollment(s)"
	if verdict.Reason != want {
		t.Errorf("reason = %q, want %q", verdict.Reason, want)
	}
}

func TestEvaluateEnrollmentBlockedByGrades(t *testing.T) {
	verdict := Evaluate(KindEnrollment, map[Kind]int64{KindGrade: 1})
	if verdict.Allowed {
		t.Fatal("enrollment with grades allowed")
	}
	want := "cannot delete enrollment: has 1 grade(s)"
	if verdict.Reason != want {
		t.Errorf("reason = %q, want %q", verdict.Reason, want)
	}
}

func TestEvaluateLeafKinds(t *testing.T) {
	// Grades and assignments have no dependents and always delete
	for _, kind := range []Kind{KindGrade, KindCourseAssignment} {
		if verdict := Evaluate(kind, nil); !verdict.Allowed {
			t.Errorf("Evaluate(%s) blocked: %s", kind, verdict.Reason)
		}
	}
}

func TestRulesOrder(t *testing.T) {
	rules := Rules(KindStudent)
	if len(rules) != 2 || rules[0].Kind != KindEnrollment || rules[1].Kind != KindGrade {
		t.Errorf("student rules = %v", rules)
	}
	if len(Rules(KindGrade)) != 0 {
		t.Error("grade has dependent rules")
	}
}
