package importer

import (
	"testing"
)

func TestDetectFieldType(t *testing.T) {
	tests := []struct {
		name    string
		column  string
		samples []string
		want    FieldType
	}{
		{"email header", "Email Address", []string{"a@b.com"}, FieldTypeEmail},
		{"phone header", "Phone", []string{"555-123-4567"}, FieldTypePhone},
		{"address header", "Property Address", []string{"1 Main St"}, FieldTypeAddress},
		{"name header", "Contact Name", []string{"Jane"}, FieldTypeName},
		{"city exact", "City", []string{"Springfield"}, FieldTypeCity},
		{"state exact", "State", []string{"IL"}, FieldTypeState},
		{"zip contains", "Zip Code", []string{"62704"}, FieldTypeZipCode},
		{"email by value", "col7", []string{"a@b.com", "c@d.org"}, FieldTypeEmail},
		{"phone by value", "col8", []string{"(555) 123-4567"}, FieldTypePhone},
		{"zip by value", "col9", []string{"90210", "90210-1234"}, FieldTypeZipCode},
		{"unknown", "xyz123", []string{"qqq"}, FieldTypeUnknown},
		{"unknown no samples", "xyz123", nil, FieldTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFieldType(tt.column, tt.samples); got != tt.want {
				t.Errorf("DetectFieldType(%q, %v) = %q, want %q", tt.column, tt.samples, got, tt.want)
			}
		})
	}
}

func TestGenerateFieldMappingSuggestions(t *testing.T) {
	headers := []string{"Email Address", "Phone", "mystery"}
	rows := []Row{
		{"Email Address": "a@b.com", "Phone": "555-123-4567", "mystery": "zzz"},
		{"Email Address": "c@d.com", "Phone": "555-987-6543", "mystery": "yyy"},
	}

	suggestions := GenerateFieldMappingSuggestions(headers, rows, 5)

	if suggestions["Email Address"] != FieldTypeEmail {
		t.Errorf("expected email suggestion, got %q", suggestions["Email Address"])
	}
	if suggestions["Phone"] != FieldTypePhone {
		t.Errorf("expected phone suggestion, got %q", suggestions["Phone"])
	}
	if _, present := suggestions["mystery"]; present {
		t.Error("unknown headers must be omitted from suggestions")
	}
}

func TestValidateEmailField(t *testing.T) {
	result := ValidateEmailField([]string{"a@b.com", "bad", "", "c@d.org"})

	if result.IsValid {
		t.Error("expected invalid result with a bad value present")
	}
	if result.InvalidCount != 1 {
		t.Errorf("InvalidCount = %d, want 1", result.InvalidCount)
	}
	if len(result.ValidEmails) != 2 {
		t.Errorf("ValidEmails = %v, want 2 entries", result.ValidEmails)
	}

	// Empty values are ignored entirely
	allEmpty := ValidateEmailField([]string{"", "  "})
	if !allEmpty.IsValid || allEmpty.InvalidCount != 0 {
		t.Errorf("empty-only input should be valid with zero invalid, got %+v", allEmpty)
	}
}
