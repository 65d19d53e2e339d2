package validate

import (
	"testing"
	"time"
)

func TestValidatePortRange(t *testing.T) {
	valid := []int{1, 80, 8350, 65535}
	for _, port := range valid {
		if err := ValidatePortRange(port); err != nil {
			t.Errorf("ValidatePortRange(%d): unexpected error: %v", port, err)
		}
	}
	invalid := []int{0, -1, 65536, 100000}
	for _, port := range invalid {
		if err := ValidatePortRange(port); err == nil {
			t.Errorf("ValidatePortRange(%d): expected error", port)
		}
	}
}

func TestValidateField(t *testing.T) {
	if err := ValidateField("EUR", "iso4217"); err != nil {
		t.Errorf("iso4217 EUR: %v", err)
	}
	if err := ValidateField("EURO", "iso4217"); err == nil {
		t.Error("iso4217 EURO accepted")
	}
	if err := ValidateField("a@b.example", "email"); err != nil {
		t.Errorf("email: %v", err)
	}
	if err := ValidateField("nope", "email"); err == nil {
		t.Error("bad email accepted")
	}
}

func TestValidateRequiredString(t *testing.T) {
	if err := ValidateRequiredString("value", "field"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateRequiredString("", "field"); err == nil {
		t.Error("empty string accepted")
	}
}

func TestValidatePositiveTimeout(t *testing.T) {
	if err := ValidatePositiveTimeout(5*time.Second, "timeout"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidatePositiveTimeout(0, "timeout"); err == nil {
		t.Error("zero timeout accepted")
	}
}
