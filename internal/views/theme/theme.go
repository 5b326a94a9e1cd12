package theme

import (
	"strings"

	"cocktaildb/models"
)

// Option represents a selectable theme exposed to the UI.
type Option struct {
	Value string
	Label string
}

// Theme contains the resolved styling primitives for the page shell.
type Theme struct {
	Key        string
	Label      string
	DataTheme  string
	BodyClass  string
	ShellClass string
	// Toggle is the key offered by the theme switch button.
	Toggle string
}

// DefaultKey defines the fallback theme when no preference exists.
const DefaultKey = models.DefaultTheme

var catalogue = map[string]Theme{
	models.ThemeLight: {
		Key:        models.ThemeLight,
		Label:      "Light",
		DataTheme:  "light",
		BodyClass:  "catalog light",
		ShellClass: "container",
		Toggle:     models.ThemeDark,
	},
	models.ThemeDark: {
		Key:        models.ThemeDark,
		Label:      "Dark",
		DataTheme:  "dark",
		BodyClass:  "catalog dark",
		ShellClass: "container",
		Toggle:     models.ThemeLight,
	},
}

var options = []Option{
	{Value: models.ThemeLight, Label: "Light"},
	{Value: models.ThemeDark, Label: "Dark"},
}

// Lookup returns the theme registered under key and whether it exists.
func Lookup(key string) (Theme, bool) {
	value, ok := catalogue[strings.ToLower(strings.TrimSpace(key))]
	return value, ok
}

// Resolve returns the registered theme for key, falling back to DefaultKey.
func Resolve(key string) Theme {
	if value, ok := Lookup(key); ok {
		return value
	}
	return catalogue[DefaultKey]
}

// Options exposes the available theme selections for rendering in a form control.
func Options() []Option {
	return options
}
