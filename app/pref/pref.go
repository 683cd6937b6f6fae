// Package pref implements the dark mode preference controller. It keeps three things in
// sync: the visual flag on the page root, the toggle control, and the persisted preference.
package pref

import (
	"context"
	"errors"
	"fmt"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/darkmode/app/enum"
)

// Defaults used when Config leaves fields empty.
const (
	DefaultKey       = "darkMode"
	DefaultClassName = "dark-mode"
	DefaultControlID = "darkModeToggle"
)

// persisted values
const (
	valueEnabled  = "enabled"
	valueDisabled = "disabled"
	valueNull     = "null"
)

// Errors returned by New when a required reference is missing.
var (
	ErrNoDocument = errors.New("document is required")
	ErrNoControl  = errors.New("toggle control is required")
	ErrNoStorage  = errors.New("preference storage is required")
)

// Document is the class list of the page root element.
type Document interface {
	AddClass(name string)
	RemoveClass(name string)
	HasClass(name string) bool
}

// Control is the dark mode toggle.
type Control interface {
	Checked() bool
	SetChecked(checked bool)
}

// Storage persists string preferences by key. GetItem reports absent keys with ok=false.
type Storage interface {
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

// Config customizes the controller.
type Config struct {
	Key            string              // storage key, default "darkMode"
	ClassName      string              // class toggled on the page root, default "dark-mode"
	DisabledPolicy enum.DisabledPolicy // what to persist when switched off
}

// Controller wires a toggle control to the page class and the stored preference.
type Controller struct {
	doc Document
	ctl Control
	st  Storage
	cfg Config
}

// New makes a controller. All references are required.
func New(doc Document, ctl Control, st Storage, cfg Config) (*Controller, error) {
	if doc == nil {
		return nil, ErrNoDocument
	}
	if ctl == nil {
		return nil, ErrNoControl
	}
	if st == nil {
		return nil, ErrNoStorage
	}
	if cfg.Key == "" {
		cfg.Key = DefaultKey
	}
	if cfg.ClassName == "" {
		cfg.ClassName = DefaultClassName
	}
	if cfg.DisabledPolicy == (enum.DisabledPolicy{}) {
		cfg.DisabledPolicy = enum.DisabledPolicyWriteDisabled
	}
	return &Controller{doc: doc, ctl: ctl, st: st, cfg: cfg}, nil
}

// Initialize applies the stored preference, to be called once when the page is ready.
// Only the exact value "enabled" turns dark mode on; an absent key leaves the page untouched.
// On a storage error the page is left untouched and the error returned.
func (c *Controller) Initialize(ctx context.Context) error {
	v, ok, err := c.st.GetItem(ctx, c.cfg.Key)
	if err != nil {
		return fmt.Errorf("read %s preference: %w", c.cfg.Key, err)
	}
	if !ok || enum.ModeFromStored(v) != enum.ModeEnabled {
		return nil
	}
	c.doc.AddClass(c.cfg.ClassName)
	c.ctl.SetChecked(true)
	return nil
}

// OnChange handles a change event of the toggle control.
func (c *Controller) OnChange(ctx context.Context) error {
	if c.ctl.Checked() {
		c.doc.AddClass(c.cfg.ClassName)
		return c.persist(ctx, enum.ModeEnabled)
	}
	c.doc.RemoveClass(c.cfg.ClassName)
	return c.persist(ctx, enum.ModeDisabled)
}

// Set moves the control to the given mode and fires the change handler.
func (c *Controller) Set(ctx context.Context, mode enum.Mode) error {
	c.ctl.SetChecked(mode.Checked())
	return c.OnChange(ctx)
}

// Mode reports the current state, as shown by the page root.
func (c *Controller) Mode() enum.Mode {
	if c.doc.HasClass(c.cfg.ClassName) {
		return enum.ModeEnabled
	}
	return enum.ModeDisabled
}

func (c *Controller) persist(ctx context.Context, mode enum.Mode) error {
	var err error
	switch {
	case mode == enum.ModeEnabled:
		err = c.st.SetItem(ctx, c.cfg.Key, valueEnabled)
	case c.cfg.DisabledPolicy == enum.DisabledPolicyWriteNull:
		err = c.st.SetItem(ctx, c.cfg.Key, valueNull)
	case c.cfg.DisabledPolicy == enum.DisabledPolicyRemoveKey:
		err = c.st.RemoveItem(ctx, c.cfg.Key)
	default:
		err = c.st.SetItem(ctx, c.cfg.Key, valueDisabled)
	}
	if err != nil {
		return fmt.Errorf("persist %s=%s: %w", c.cfg.Key, mode, err)
	}
	log.Printf("[DEBUG] %s preference set to %s", c.cfg.Key, mode)
	return nil
}
