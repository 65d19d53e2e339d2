package review

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/validate"
)

// FieldType enumerates the typed parses a schema can demand from a record
// field. Values travel as strings on the wire; the type controls how they
// are checked before submission or acceptance.
type FieldType int

const (
	// FieldString accepts any non-empty string.
	FieldString FieldType = iota

	// FieldDecimal requires an exact decimal number, e.g. "50" or "19.95".
	// Floats are never used for amounts.
	FieldDecimal

	// FieldCurrency requires an ISO 4217 currency code, e.g. "EUR".
	FieldCurrency

	// FieldTimestamp requires an RFC 3339 timestamp. Naive timestamps
	// (no offset) are accepted and treated as UTC by the endpoint.
	FieldTimestamp

	// FieldEmail requires a syntactically valid email address.
	FieldEmail
)

// Field declares one known record field: its normalized (underscore) name,
// its type, and whether every record must carry it.
type Field struct {
	Name     string
	Type     FieldType
	Required bool
}

// Schema is the declared set of record fields a pipeline accepts. Replaces
// the historical behavior of forwarding arbitrary scraped attributes: fields
// not declared here are rejected, not silently passed through.
type Schema struct {
	fields map[string]Field
}

// ErrUnknownField reports a record field that the schema does not declare.
var ErrUnknownField = errors.New("unknown field")

// timestampLayouts are the accepted timestamp forms, in match order. The
// second form is a naive local timestamp which the endpoint localizes to UTC.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// NewSchema builds a schema from the given field declarations. Field names
// are normalized so hyphenated declarations and underscore declarations
// collide rather than silently coexisting.
func NewSchema(fields ...Field) *Schema {
	m := make(map[string]Field, len(fields))
	for _, f := range fields {
		f.Name = NormalizeKey(f.Name)
		m[f.Name] = f
	}
	return &Schema{fields: m}
}

// DefaultSchema declares the standard payment record: a required decimal
// amount with its currency, an optional value timestamp, and optional
// counterparty lookup fields.
func DefaultSchema() *Schema {
	return NewSchema(
		Field{Name: "amount", Type: FieldDecimal, Required: true},
		Field{Name: "currency", Type: FieldCurrency, Required: true},
		Field{Name: "timestamp", Type: FieldTimestamp},
		Field{Name: "name", Type: FieldString},
		Field{Name: "email", Type: FieldEmail},
	)
}

// CheckField validates a single field value against its declaration.
// The name must already be normalized.
func (s *Schema) CheckField(name, value string) error {
	f, ok := s.fields[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	switch f.Type {
	case FieldDecimal:
		if _, err := decimal.NewFromString(value); err != nil {
			return fmt.Errorf("field %s: invalid decimal %q", name, value)
		}
	case FieldCurrency:
		if err := validate.ValidateField(value, "iso4217"); err != nil {
			return fmt.Errorf("field %s: invalid currency %q", name, value)
		}
	case FieldTimestamp:
		if !parseableTimestamp(value) {
			return fmt.Errorf("field %s: invalid timestamp %q", name, value)
		}
	case FieldEmail:
		if err := validate.ValidateField(value, "email"); err != nil {
			return fmt.Errorf("field %s: invalid email %q", name, value)
		}
	default:
		if value == "" {
			return fmt.Errorf("field %s: empty value", name)
		}
	}
	return nil
}

// Validate checks a full record field map: every present field must be
// declared and well-typed, and every required field must be present. All
// problems are reported together so a malformed record surfaces completely
// in one pass.
func (s *Schema) Validate(fields map[string]string) error {
	var errs []error
	for name, value := range fields {
		if err := s.CheckField(name, value); err != nil {
			errs = append(errs, err)
		}
	}
	for name, f := range s.fields {
		if !f.Required {
			continue
		}
		if _, ok := fields[name]; !ok {
			errs = append(errs, fmt.Errorf("field %s: required", name))
		}
	}
	return errors.Join(errs...)
}

func parseableTimestamp(value string) bool {
	for _, layout := range timestampLayouts {
		if _, err := time.Parse(layout, value); err == nil {
			return true
		}
	}
	return false
}
