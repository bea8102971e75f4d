package validation

import "testing"

func TestValidateRUT(t *testing.T) {
	valid := []string{
		"12.345.678-9",
		"12345678-9",
		"9.876.543-K",
		"7.654.321-k",
		"1-9",
		" 12.345.678-9 ",
	}
	for _, rut := range valid {
		if !ValidateRUT(rut) {
			t.Errorf("ValidateRUT(%q) = false", rut)
		}
	}

	invalid := []string{
		"",
		"12.345.678",
		"12.345.678-",
		"12.345.678-99",
		"abc-9",
		"12,345,678-9",
	}
	for _, rut := range invalid {
		if ValidateRUT(rut) {
			t.Errorf("ValidateRUT(%q) = true", rut)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	if !ValidateEmail("user@universidad.cl") {
		t.Error("valid email rejected")
	}
	if ValidateEmail("not-an-email") {
		t.Error("invalid email accepted")
	}
	if ValidateEmail("") {
		t.Error("empty email accepted")
	}
}

func TestRUTTag(t *testing.T) {
	type payload struct {
		RUT string `validate:"required,rut"`
	}

	v := NewValidator()
	if err := v.ValidateStruct(payload{RUT: "12.345.678-9"}); err != nil {
		t.Errorf("valid RUT rejected: %v", err)
	}

	err := v.ValidateStruct(payload{RUT: "nope"})
	if err == nil {
		t.Fatal("invalid RUT accepted")
	}
	formatted := FormatValidationErrors(err)
	if formatted["rut"] != "Invalid RUT format" {
		t.Errorf("formatted error = %v", formatted)
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  hello\x00world  "); got != "helloworld" {
		t.Errorf("SanitizeString = %q", got)
	}
}
