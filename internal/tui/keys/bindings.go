package keys

import (
	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/quickblessing/internal/tui/ui"
)

// Action is a single keybinding.
type Action struct {
	Name        string
	Key         tcell.Key
	Rune        rune
	Label       string // key as shown in hints, e.g. "Enter"
	Description string
	Visible     bool
	Handler     func()
}

// Matches reports whether ev triggers this action.
func (a *Action) Matches(ev *tcell.EventKey) bool {
	if a.Key != tcell.KeyRune {
		return ev.Key() == a.Key
	}
	return ev.Key() == tcell.KeyRune && ev.Rune() == a.Rune
}

// Registry holds keybindings per page plus global ones. Registration order
// is kept so hints render stably.
type Registry struct {
	global []*Action
	pages  map[string][]*Action
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		pages: make(map[string][]*Action),
	}
}

// AddGlobal registers a binding active on every page.
func (r *Registry) AddGlobal(a *Action) {
	r.global = append(r.global, a)
}

// AddPage registers a binding active only on page.
func (r *Registry) AddPage(page string, a *Action) {
	r.pages[page] = append(r.pages[page], a)
}

// Hints returns the visible bindings for page, page bindings first.
func (r *Registry) Hints(page string) []ui.MenuHint {
	var hints []ui.MenuHint
	for _, a := range append(append([]*Action{}, r.pages[page]...), r.global...) {
		if a.Visible {
			hints = append(hints, ui.MenuHint{Key: a.Label, Description: a.Description})
		}
	}
	return hints
}

// HandleEvent runs the first binding on page, then globally, that matches
// ev. Returns true if one did.
func (r *Registry) HandleEvent(page string, ev *tcell.EventKey) bool {
	for _, a := range r.pages[page] {
		if a.Matches(ev) {
			a.Handler()
			return true
		}
	}
	for _, a := range r.global {
		if a.Matches(ev) {
			a.Handler()
			return true
		}
	}
	return false
}
