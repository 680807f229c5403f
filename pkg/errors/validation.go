package errors

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

// maxSkillNameLength bounds badge labels so a single entry cannot blow up a layout.
const maxSkillNameLength = 64

// ValidateSkillName validates a skill label shown on a badge.
//
// The rules are conservative:
//   - No empty or whitespace-only names
//   - No control characters
//   - Maximum length of 64 characters
func ValidateSkillName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidSkill, "skill name cannot be empty")
	}

	if len(name) > maxSkillNameLength {
		return New(ErrCodeInvalidSkill, "skill name too long (max %d characters): %q", maxSkillNameLength, name)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidSkill, "skill name contains invalid control characters: %q", name)
		}
	}

	return nil
}

// hexColorRegex matches #rgb and #rrggbb colors.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// IsHexColor reports whether s is a #rgb or #rrggbb color.
func IsHexColor(s string) bool {
	return hexColorRegex.MatchString(s)
}

// ValidateOutputPath validates a file path the CLI is about to write.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - The path must not name a directory ("out/")
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return New(ErrCodeInvalidPath, "output path must name a file, not a directory: %q", path)
	}

	return nil
}
