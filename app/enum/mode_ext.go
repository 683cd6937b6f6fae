package enum

// storedEnabled is the only persisted value that means dark mode is on.
const storedEnabled = "enabled"

// ModeFromStored decodes a persisted preference. Only the exact string "enabled" turns
// dark mode on; absent, empty, "null", "disabled" and anything else mean disabled.
func ModeFromStored(v string) Mode {
	if v == storedEnabled {
		return ModeEnabled
	}
	return ModeDisabled
}

// ModeFromChecked maps a checkbox state to a mode.
func ModeFromChecked(checked bool) Mode {
	if checked {
		return ModeEnabled
	}
	return ModeDisabled
}

// Toggle returns the opposite mode.
func (m Mode) Toggle() Mode {
	if m == ModeEnabled {
		return ModeDisabled
	}
	return ModeEnabled
}

// Checked reports the toggle control state implied by the mode.
func (m Mode) Checked() bool {
	return m == ModeEnabled
}
