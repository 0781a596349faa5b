package contract

// PreferenceRepository persists the single user preference that survives
// across sessions: whether the highlight-only filter is active.
type PreferenceRepository interface {
	HighlightOnly() bool
	SetHighlightOnly(v bool) error
}
