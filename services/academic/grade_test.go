package academic

import (
	"math"
	"testing"

	"github.com/sahilchouksey/academic-records-api/model"
)

func TestComputeFinal(t *testing.T) {
	components := []model.EvaluationComponent{
		{Type: "Exam", Number: 1, Weight: 40},
		{Type: "Final Exam", Number: 1, Weight: 60},
	}

	scores := map[ComponentKey]float64{
		{Type: "Exam", Number: 1}:       6.0,
		{Type: "Final Exam", Number: 1}: 5.0,
	}

	final, complete := ComputeFinal(components, scores)
	if !complete {
		t.Fatal("expected complete result")
	}
	if math.Abs(final-5.4) > 1e-9 {
		t.Errorf("final = %g, want 5.4", final)
	}
}

func TestComputeFinalIncomplete(t *testing.T) {
	components := []model.EvaluationComponent{
		{Type: "Exam", Number: 1, Weight: 50},
		{Type: "Exam", Number: 2, Weight: 50},
	}
	scores := map[ComponentKey]float64{
		{Type: "Exam", Number: 1}: 7.0,
	}

	if _, complete := ComputeFinal(components, scores); complete {
		t.Error("one missing score reported as complete")
	}
}

func TestComputeFinalEmptyScheme(t *testing.T) {
	if _, complete := ComputeFinal(nil, nil); complete {
		t.Error("empty scheme reported as complete")
	}
}

func TestIsValidScore(t *testing.T) {
	valid := []float64{1.0, 4.0, 7.0, 5.95}
	for _, s := range valid {
		if !IsValidScore(s) {
			t.Errorf("IsValidScore(%g) = false", s)
		}
	}
	invalid := []float64{0.9, 7.1, 0, -1, 70}
	for _, s := range invalid {
		if IsValidScore(s) {
			t.Errorf("IsValidScore(%g) = true", s)
		}
	}
}

func TestDisplayLabel(t *testing.T) {
	components := []model.EvaluationComponent{
		{Type: "Exam", Number: 1, Weight: 30},
		{Type: "Exam", Number: 2, Weight: 30},
		{Type: "Project", Number: 1, Weight: 40},
	}

	if got := DisplayLabel(ComponentKey{Type: "Exam", Number: 1}, components); got != "Exam 1" {
		t.Errorf("label for repeated type = %q, want %q", got, "Exam 1")
	}
	if got := DisplayLabel(ComponentKey{Type: "Project", Number: 1}, components); got != "Project" {
		t.Errorf("label for unique type = %q, want %q", got, "Project")
	}
}

func TestSortGrades(t *testing.T) {
	grades := []model.Grade{
		{Component: "Exam 3"},
		{Component: "Exam 1"},
		{Component: "Exam 2"},
	}
	SortGrades(grades)

	want := []string{"Exam 1", "Exam 2", "Exam 3"}
	for i, g := range grades {
		if g.Component != want[i] {
			t.Fatalf("order = %v", grades)
		}
	}
}

func TestSortGradesMalformedFirst(t *testing.T) {
	grades := []model.Grade{
		{Component: "Exam 2"},
		{Component: "garbage"},
	}
	SortGrades(grades)
	if grades[0].Component != "garbage" {
		t.Errorf("malformed key sorted after parsed keys: %v", grades)
	}
}
