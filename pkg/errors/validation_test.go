package errors

import (
	"strings"
	"testing"
)

func TestValidateSkillName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "Go", false},
		{"with dot", "Node.js", false},
		{"with spaces", "Team Leadership", false},
		{"unicode", "Café Ops", false},

		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"too long", strings.Repeat("x", 65), true},
		{"newline", "foo\nbar", true},
		{"null byte", "foo\x00bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSkillName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSkillName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidSkill) {
				t.Errorf("ValidateSkillName(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidSkill)
			}
		})
	}
}

func TestIsHexColor(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"#fff", true},
		{"#22d3ee", true},
		{"#22D3EE", true},
		{"22d3ee", false},
		{"#22d3e", false},
		{"#ggg", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsHexColor(tt.input); got != tt.want {
			t.Errorf("IsHexColor(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative file", "field.svg", false},
		{"nested file", "out/field.svg", false},
		{"absolute file", "/tmp/field.svg", false},

		{"empty", "", true},
		{"directory", "out/", true},
		{"too long", strings.Repeat("a", 501), true},
		{"control char", "field\x01.svg", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
