package review

import (
	"errors"
	"strings"
	"testing"
)

func TestDefaultSchemaCheckField(t *testing.T) {
	schema := DefaultSchema()

	tests := []struct {
		name        string
		field       string
		value       string
		expectError bool
	}{
		{name: "integer_amount", field: "amount", value: "50"},
		{name: "fractional_amount", field: "amount", value: "19.95"},
		{name: "negative_amount", field: "amount", value: "-3.20"},
		{name: "non_numeric_amount", field: "amount", value: "fifty", expectError: true},
		{name: "valid_currency", field: "currency", value: "EUR"},
		{name: "invalid_currency", field: "currency", value: "EURO", expectError: true},
		{name: "rfc3339_timestamp", field: "timestamp", value: "2026-08-24T12:00:00Z"},
		{name: "naive_timestamp", field: "timestamp", value: "2026-08-24T12:00:00"},
		{name: "date_only_timestamp", field: "timestamp", value: "2026-08-24", expectError: true},
		{name: "valid_email", field: "email", value: "treasurer@example.org"},
		{name: "invalid_email", field: "email", value: "not-an-email", expectError: true},
		{name: "free_text_name", field: "name", value: "ACME Corp"},
		{name: "undeclared_field", field: "color", value: "red", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := schema.CheckField(tt.field, tt.value)
			if tt.expectError && err == nil {
				t.Errorf("CheckField(%q, %q): expected error", tt.field, tt.value)
			}
			if !tt.expectError && err != nil {
				t.Errorf("CheckField(%q, %q): unexpected error: %v", tt.field, tt.value, err)
			}
		})
	}
}

func TestSchemaValidateReportsAllProblems(t *testing.T) {
	schema := DefaultSchema()

	err := schema.Validate(map[string]string{
		"amount": "fifty",
		"color":  "red",
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{"invalid decimal", "unknown field", "currency"} {
		if !strings.Contains(msg, want) {
			t.Errorf("validation error %q does not mention %q", msg, want)
		}
	}
	if !errors.Is(err, ErrUnknownField) {
		t.Errorf("validation error does not wrap ErrUnknownField")
	}
}

func TestSchemaValidateCleanRecord(t *testing.T) {
	schema := DefaultSchema()

	err := schema.Validate(map[string]string{
		"amount":   "50",
		"currency": "EUR",
		"email":    "treasurer@example.org",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewSchemaNormalizesDeclaredNames(t *testing.T) {
	schema := NewSchema(
		Field{Name: "member-email", Type: FieldEmail, Required: true},
	)

	if err := schema.CheckField("member_email", "a@b.example"); err != nil {
		t.Errorf("normalized name not declared: %v", err)
	}
	if err := schema.Validate(map[string]string{}); err == nil {
		t.Error("required normalized field not enforced")
	}
}
