package entity

// SessionDescriptor describes one legislative session as reported by the
// session-status endpoint. Observed marks descriptors reconstructed from
// sessions seen embedded in bill records; those carry a synthetic
// "observed:" id so they can never collide with endpoint-sourced ids.
type SessionDescriptor struct {
	SessionId   string `json:"session_id"`
	SessionName string `json:"session_name"`
	YearStart   int    `json:"year_start"`
	YearEnd     int    `json:"year_end"`
	IsActive    bool   `json:"is_active"`
	Observed    bool   `json:"observed,omitempty"`
}

const ObservedSessionIdPrefix = "observed:"
