package views

import (
	"html/template"
	"strings"
)

type themeVar struct{ name, value string }

// Theme is the palette of the hosted pages, exposed as CSS custom properties.
type Theme struct {
	FontFamily string
	vars       []themeVar
}

// DefaultTheme is the light Ory theme with the brand accent.
func DefaultTheme() Theme {
	return Theme{
		FontFamily: `"Eudoxus sans", Inter, system-ui, sans-serif`,
		vars: []themeVar{
			{"accent-def", "#6E56D1"},
			{"accent-muted", "#6E56D1"},
			{"accent-emphasis", "#0077B6"},
			{"accent-disabled", "#BABABA"},
			{"accent-subtle", "#BDBDBD"},
			{"foreground-def", "#293C4B"},
			{"foreground-muted", "#293C4B"},
			{"foreground-subtle", "#9E9E9E"},
			{"foreground-disabled", "#BDBDBD"},
			{"foreground-on-dark", "#FFFFFF"},
			{"foreground-on-accent", "#FFFFFF"},
			{"foreground-on-disabled", "#e0e0e0"},
			{"background-surface", "#FFFFFF"},
			{"background-canvas", "#F3F4F6"},
			{"background-subtle", "#EEEEEE"},
			{"error-def", "#C91616"},
			{"error-subtle", "#FFE2E2"},
			{"error-muted", "#F25555"},
			{"error-emphasis", "#DF1642"},
			{"success-emphasis", "#1F8956"},
			{"border-def", "#B4A4F8"},
			{"text-def", "#FFFFFF"},
			{"text-disabled", "#757575"},
			{"input-background", "#FFFFFF"},
			{"input-disabled", "#E0E0E0"},
			{"input-placeholder", "#9E9E9E"},
			{"input-text", "#293c4b"},
		},
	}
}

// CSS renders the :root block. Values are constants, never user input.
func (t Theme) CSS() template.CSS {
	var b strings.Builder
	b.WriteString(":root{")
	b.WriteString("--font-family:" + t.FontFamily + ";")
	for _, v := range t.vars {
		b.WriteString("--" + v.name + ":" + v.value + ";")
	}
	b.WriteString("}")
	return template.CSS(b.String())
}
