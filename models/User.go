package models

import "strings"

const (
	ThemeLight   = "light"
	ThemeDark    = "dark"
	DefaultTheme = ThemeLight
)

// User represents a catalog editor that can sign in and change cocktails and ingredients.
type User struct {
	Model
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Name         string
	Theme        string `gorm:"type:varchar(32);default:light"`
}

// ValidTheme reports whether value names a supported theme.
func ValidTheme(value string) bool {
	switch value {
	case ThemeLight, ThemeDark:
		return true
	default:
		return false
	}
}

// NormalizeTheme returns the canonical theme key, falling back to DefaultTheme.
func NormalizeTheme(value string) string {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if ValidTheme(normalized) {
		return normalized
	}
	return DefaultTheme
}
