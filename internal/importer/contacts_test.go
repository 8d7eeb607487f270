package importer

import (
	"testing"

	"github.com/caseflow-io/caseflow/internal/database"
)

func TestParseContacts(t *testing.T) {
	p := newTestParser(t)

	grid := [][]string{
		{"Company Name", "Contact Name", "Phone", "Email Address", "Role"},
		{"Acme Properties", "John Smith", "(555) 123-4567", "john@acme.com", "Property Manager"},
		{"ACME PROPERTIES", "John Smith", "", "", ""},
		{"Company Name", "Contact Name", "", "", ""},
		{"", "Jane Roe", "5551234567", "jane@law.example", "Attorney"},
	}

	contacts, warnings := p.ParseContacts(grid, SheetPMInfo)

	if len(contacts) != 2 {
		t.Fatalf("expected 2 contacts, got %d", len(contacts))
	}

	first := contacts[0]
	if first.Name != "Acme Properties" {
		t.Errorf("company should take precedence as the contact name, got %q", first.Name)
	}
	if first.Phone != "555-123-4567" {
		t.Errorf("phone = %q, want 555-123-4567", first.Phone)
	}
	if first.Role != database.RolePM {
		t.Errorf("role = %q, want %q", first.Role, database.RolePM)
	}
	if first.ContactID == "" {
		t.Error("contact IDs must be generated")
	}

	second := contacts[1]
	if second.Name != "Jane Roe" {
		t.Errorf("contact without company should use the name field, got %q", second.Name)
	}
	if second.Phone != "555-123-4567" {
		t.Errorf("bare digit phone = %q", second.Phone)
	}
	if second.Role != database.RoleAttorney {
		t.Errorf("role = %q, want %q", second.Role, database.RoleAttorney)
	}

	// One case-insensitive duplicate, one stray header row
	if len(warnings) != 2 {
		t.Errorf("expected 2 warnings, got %v", warnings)
	}
}

func TestFormatPhoneNumber(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"(555) 123-4567", "555-123-4567"},
		{"5551234567", "555-123-4567"},
		{"555-1234", "555-1234"},
		{"+1 555 123 4567", "+1 555 123 4567"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := formatPhoneNumber(tt.raw); got != tt.want {
			t.Errorf("formatPhoneNumber(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestInferContactRole(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Attorney at Law", database.RoleAttorney},
		{"Senior Paralegal", database.RoleParalegal},
		{"PM", database.RolePM},
		{"client", database.RoleClient},
		{"", database.RoleOther},
		{"receptionist", database.RoleOther},
	}

	for _, tt := range tests {
		if got := inferContactRole(tt.raw); got != tt.want {
			t.Errorf("inferContactRole(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestBuildClientPrefixMap(t *testing.T) {
	contacts := []*database.Contact{
		{ContactID: "id-1", Name: "Acme Properties"},
		{ContactID: "id-2", Name: "ACE Holdings"},
		{ContactID: "id-3", Name: "Acme Again"},
	}

	prefixes := BuildClientPrefixMap(contacts)

	if prefixes["ACM"] != "id-1" {
		t.Errorf("ACM = %q, want id-1 (first occurrence wins)", prefixes["ACM"])
	}
	if prefixes["ACE"] != "id-2" {
		t.Errorf("ACE = %q, want id-2", prefixes["ACE"])
	}
	if len(prefixes) != 2 {
		t.Errorf("expected 2 prefixes, got %v", prefixes)
	}
}
