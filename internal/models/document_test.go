// ABOUTME: Tests for document type parsing
// ABOUTME: Empty input defaults to "other"; unknown types are rejected
package models

import "testing"

func TestParseDocumentType(t *testing.T) {
	tests := []struct {
		input   string
		want    DocumentType
		wantErr bool
	}{
		{"menu", DocTypeMenu, false},
		{"recipe", DocTypeRecipe, false},
		{"sop", DocTypeSOP, false},
		{"policy", DocTypePolicy, false},
		{"manual", DocTypeManual, false},
		{"other", DocTypeOther, false},
		{"SOP", DocTypeSOP, false},
		{"  Menu  ", DocTypeMenu, false},
		{"", DocTypeOther, false},
		{"   ", DocTypeOther, false},
		{"spreadsheet", "", true},
		{"menus", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDocumentType(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseDocumentType(%q): expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDocumentType(%q): unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseDocumentType(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
