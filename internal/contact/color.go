package contact

import (
	"regexp"
	"strings"
)

// hexColorPattern is the only accepted theme color shape.
var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// IsHexColor reports whether s is a '#' followed by exactly six hex digits.
func IsHexColor(s string) bool {
	return hexColorPattern.MatchString(s)
}

// ResolveThemeColor returns s when it is a valid hex color and
// DefaultThemeColor otherwise. Case is preserved.
func ResolveThemeColor(s string) string {
	if IsHexColor(s) {
		return s
	}
	return DefaultThemeColor
}

// professionThemes maps profession keywords to preset accent colors,
// checked in order.
var professionThemes = []struct {
	keyword string
	color   string
}{
	{"developer", "#0f172a"},
	{"designer", "#ec4899"},
	{"manager", "#10b981"},
	{"ceo", "#8b5cf6"},
	{"marketing", "#f59e0b"},
}

// ProfessionTheme returns the preset color for the first profession keyword
// found in designation, or DefaultThemeColor.
func ProfessionTheme(designation string) string {
	d := strings.ToLower(designation)
	for _, pt := range professionThemes {
		if strings.Contains(d, pt.keyword) {
			return pt.color
		}
	}
	return DefaultThemeColor
}
