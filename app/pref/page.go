package pref

import (
	"slices"
	"strings"
)

// Page is an in-memory page model: the class list of the root element plus the toggle
// state. It implements both Document and Control and is rendered by the web handler.
type Page struct {
	classes []string
	checked bool
}

// AddClass adds name to the class list if not present.
func (p *Page) AddClass(name string) {
	if !p.HasClass(name) {
		p.classes = append(p.classes, name)
	}
}

// RemoveClass removes name from the class list.
func (p *Page) RemoveClass(name string) {
	p.classes = slices.DeleteFunc(p.classes, func(c string) bool { return c == name })
}

// HasClass reports whether name is in the class list.
func (p *Page) HasClass(name string) bool {
	return slices.Contains(p.classes, name)
}

// ClassList returns the class attribute value.
func (p *Page) ClassList() string {
	return strings.Join(p.classes, " ")
}

// Checked returns the toggle state.
func (p *Page) Checked() bool { return p.checked }

// SetChecked sets the toggle state without firing any change handler.
func (p *Page) SetChecked(checked bool) { p.checked = checked }
