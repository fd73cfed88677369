package model

import (
	"fmt"
	"strings"
)

// ThemeMode is the stored display theme preference.
type ThemeMode string

const (
	ThemeLight  ThemeMode = "light"
	ThemeDark   ThemeMode = "dark"
	ThemeSystem ThemeMode = "system"
)

// DefaultThemeMode follows the terminal's background.
const DefaultThemeMode = ThemeSystem

// Valid reports whether m is a known mode.
func (m ThemeMode) Valid() bool {
	return m == ThemeLight || m == ThemeDark || m == ThemeSystem
}

// Next cycles light -> dark -> system -> light.
func (m ThemeMode) Next() ThemeMode {
	switch m {
	case ThemeLight:
		return ThemeDark
	case ThemeDark:
		return ThemeSystem
	default:
		return ThemeLight
	}
}

// ParseThemeMode parses a mode name case-insensitively.
func ParseThemeMode(s string) (ThemeMode, error) {
	m := ThemeMode(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("unknown theme mode %q (want light, dark or system)", s)
	}
	return m, nil
}
