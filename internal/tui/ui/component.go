package ui

// MenuHint describes a keyboard shortcut for display in the menu.
type MenuHint struct {
	Key         string
	Description string
	Numeric     bool // displayed in the numeric key color
}

// Component is implemented by every themed widget. ApplyTheme is called on
// startup and whenever the user toggles the theme.
type Component interface {
	Name() string
	ApplyTheme(theme *Theme)
	Hints() []MenuHint
}
