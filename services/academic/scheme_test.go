package academic

import (
	"errors"
	"testing"

	"github.com/sahilchouksey/academic-records-api/model"
)

func scheme(weights ...float64) []model.EvaluationComponent {
	components := make([]model.EvaluationComponent, len(weights))
	for i, w := range weights {
		components[i] = model.EvaluationComponent{Type: "Exam", Number: i + 1, Weight: w}
	}
	return components
}

func TestValidateWeights(t *testing.T) {
	tests := []struct {
		name    string
		weights []float64
		wantSum float64
		wantOK  bool
	}{
		{name: "exact hundred", weights: []float64{40, 30, 30}, wantOK: true},
		{name: "single component", weights: []float64{100}, wantOK: true},
		{name: "two decimal split", weights: []float64{33.33, 33.33, 33.34}, wantOK: true},
		{name: "under by ten", weights: []float64{40, 30, 20}, wantSum: 90},
		{name: "over", weights: []float64{60, 50}, wantSum: 110},
		{name: "off by a cent", weights: []float64{33.33, 33.33, 33.33}, wantSum: 99.99},
		{name: "empty scheme", weights: nil, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWeights(scheme(tt.weights...))
			if tt.wantOK {
				if err != nil {
					t.Fatalf("ValidateWeights() = %v, want nil", err)
				}
				return
			}
			var sumErr *WeightSumError
			if !errors.As(err, &sumErr) {
				t.Fatalf("ValidateWeights() = %v, want WeightSumError", err)
			}
			if sumErr.Sum != tt.wantSum {
				t.Errorf("reported sum = %g, want %g", sumErr.Sum, tt.wantSum)
			}
		})
	}
}

func TestValidateSchemeComponentChecks(t *testing.T) {
	tests := []struct {
		name       string
		components []model.EvaluationComponent
		wantDetail string
	}{
		{
			name: "unknown type",
			components: []model.EvaluationComponent{
				{Type: "Quiz", Number: 1, Weight: 100},
			},
			wantDetail: "unknown component type",
		},
		{
			name: "zero sequence number",
			components: []model.EvaluationComponent{
				{Type: "Exam", Number: 0, Weight: 100},
			},
			wantDetail: "sequence number must be at least 1",
		},
		{
			name: "zero weight",
			components: []model.EvaluationComponent{
				{Type: "Exam", Number: 1, Weight: 0},
			},
			wantDetail: "weight must be greater than 0 and at most 100",
		},
		{
			name: "duplicate pair",
			components: []model.EvaluationComponent{
				{Type: "Exam", Number: 1, Weight: 50},
				{Type: "Exam", Number: 1, Weight: 50},
			},
			wantDetail: "duplicate component",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateScheme(tt.components)
			var compErr *ComponentError
			if !errors.As(err, &compErr) {
				t.Fatalf("ValidateScheme() = %v, want ComponentError", err)
			}
			if compErr.Detail != tt.wantDetail {
				t.Errorf("detail = %q, want %q", compErr.Detail, tt.wantDetail)
			}
		})
	}
}

func TestValidateSchemeSameNumberDifferentType(t *testing.T) {
	components := []model.EvaluationComponent{
		{Type: "Exam", Number: 1, Weight: 60},
		{Type: "Assignment", Number: 1, Weight: 40},
	}
	if err := ValidateScheme(components); err != nil {
		t.Fatalf("ValidateScheme() = %v, want nil", err)
	}
}

func TestValidateSchemeComponentErrorBeforeSum(t *testing.T) {
	// Both a bad type and a bad sum: the component failure wins
	components := []model.EvaluationComponent{
		{Type: "Quiz", Number: 1, Weight: 50},
	}
	err := ValidateScheme(components)
	var compErr *ComponentError
	if !errors.As(err, &compErr) {
		t.Fatalf("ValidateScheme() = %v, want ComponentError", err)
	}
}

func TestWeightSum(t *testing.T) {
	if got := WeightSum(scheme(33.33, 33.33, 33.34)); got != 100 {
		t.Errorf("WeightSum() = %g, want 100", got)
	}
	if got := WeightSum(nil); got != 0 {
		t.Errorf("WeightSum(nil) = %g, want 0", got)
	}
}
