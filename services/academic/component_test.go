package academic

import (
	"testing"

	"github.com/sahilchouksey/academic-records-api/model"
)

func TestParseComponentKey(t *testing.T) {
	tests := []struct {
		in      string
		want    ComponentKey
		wantErr bool
	}{
		{in: "Exam 1", want: ComponentKey{Type: "Exam", Number: 1}},
		{in: "Final Exam 2", want: ComponentKey{Type: "Final Exam", Number: 2}},
		{in: "Lab 12", want: ComponentKey{Type: "Lab", Number: 12}},
		{in: "Exam", wantErr: true},
		{in: "Exam zero", wantErr: true},
		{in: "Exam 0", wantErr: true},
		{in: "Exam -1", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseComponentKey(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseComponentKey(%q) = %v, want error", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseComponentKey(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseComponentKey(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestComponentKeyRoundTrip(t *testing.T) {
	key := ComponentKey{Type: "Final Exam", Number: 3}
	parsed, err := ParseComponentKey(key.String())
	if err != nil {
		t.Fatalf("round trip failed: %v", err)
	}
	if parsed != key {
		t.Errorf("round trip = %v, want %v", parsed, key)
	}
}

func TestNextNumber(t *testing.T) {
	components := []model.EvaluationComponent{
		{Type: "Exam", Number: 1, Weight: 30},
		{Type: "Exam", Number: 2, Weight: 30},
		{Type: "Project", Number: 1, Weight: 40},
	}

	if got := NextNumber(components, "Exam"); got != 3 {
		t.Errorf("NextNumber(Exam) = %d, want 3", got)
	}
	if got := NextNumber(components, "Project"); got != 2 {
		t.Errorf("NextNumber(Project) = %d, want 2", got)
	}
	if got := NextNumber(components, "Lab"); got != 1 {
		t.Errorf("NextNumber(Lab) = %d, want 1", got)
	}
	if got := NextNumber(nil, "Exam"); got != 1 {
		t.Errorf("NextNumber(empty) = %d, want 1", got)
	}
}

func TestIsValidComponentType(t *testing.T) {
	for _, known := range ComponentTypes {
		if !IsValidComponentType(known) {
			t.Errorf("IsValidComponentType(%q) = false", known)
		}
	}
	for _, unknown := range []string{"Quiz", "exam", "FINAL EXAM", ""} {
		if IsValidComponentType(unknown) {
			t.Errorf("IsValidComponentType(%q) = true", unknown)
		}
	}
}
