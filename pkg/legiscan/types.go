package legiscan

import (
	"fmt"
	"strings"
)

// RawBill is one record as the upstream actually sends it: ids may be
// strings or numbers, dates are loose strings, and most fields go missing.
// Nothing here is trusted until it passes through the normalizer.
type RawBill struct {
	Id             any    `json:"id"`
	BillId         any    `json:"bill_id"`
	Title          string `json:"title"`
	BillNumber     string `json:"bill_number"`
	Number         string `json:"number"`
	Jurisdiction   string `json:"jurisdiction"`
	Status         string `json:"status"`
	Category       string `json:"category"`
	Summary        string `json:"summary"`
	Description    string `json:"description"`
	IntroducedDate string `json:"introduced_date"`
	LastActionDate string `json:"last_action_date"`
	SessionId      any    `json:"session_id"`
	SessionName    string `json:"session_name"`
	SourceUrl      string `json:"source_url"`
	Url            string `json:"url"`
}

// StringId returns the explicit upstream id when it came as a string.
func (r *RawBill) StringId() string {
	for _, v := range []any{r.Id, r.BillId} {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// NumericId returns the upstream id rendered as a string when it came as a
// JSON number.
func (r *RawBill) NumericId() string {
	for _, v := range []any{r.Id, r.BillId} {
		if f, ok := v.(float64); ok {
			return fmt.Sprintf("%.0f", f)
		}
	}
	return ""
}

// EffectiveBillNumber tolerates both field names upstream uses.
func (r *RawBill) EffectiveBillNumber() string {
	if r.BillNumber != "" {
		return r.BillNumber
	}
	return r.Number
}

// EffectiveSummary prefers summary over the longer description field.
func (r *RawBill) EffectiveSummary() string {
	if r.Summary != "" {
		return r.Summary
	}
	return r.Description
}

// EffectiveSourceUrl tolerates both field names upstream uses.
func (r *RawBill) EffectiveSourceUrl() string {
	if r.SourceUrl != "" {
		return r.SourceUrl
	}
	return r.Url
}

// SessionIdString renders the session id whether it arrived as string or
// number.
func (r *RawBill) SessionIdString() string {
	switch v := r.SessionId.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return fmt.Sprintf("%.0f", v)
	}
	return ""
}

// BillPage is one extracted page of the catalog. Total/Page/TotalPages are
// zero when the envelope did not carry them (bare-array shape).
type BillPage struct {
	Bills      []RawBill
	Total      int
	Page       int
	TotalPages int
}

type FetchRecentRequest struct {
	Jurisdiction     string `json:"jurisdiction"`
	Limit            int    `json:"limit"`
	EnhancedAnalysis bool   `json:"enhancedAnalysis"`
}

type FetchRecentResult struct {
	Success              bool   `json:"success"`
	BillsFound           int    `json:"billsFound"`
	BillsProcessed       int    `json:"billsProcessed"`
	MostRecentDateBefore string `json:"mostRecentDateBefore"`
	SearchQueryUsed      string `json:"searchQueryUsed"`
}

type CheckAndUpdateResult struct {
	Success        bool `json:"success"`
	ApiBillsFound  int  `json:"apiBillsFound"`
	ExistingBills  int  `json:"existingBills"`
	MissingBills   int  `json:"missingBills"`
	ProcessedBills int  `json:"processedBills"`
	RemainingBills int  `json:"remainingBills"`
}

type HighlightRequest struct {
	UserId    string `json:"userId"`
	OrderId   string `json:"orderId"`
	OrderType string `json:"orderType"`
}

type HighlightResult struct {
	Success     bool   `json:"success"`
	HighlightId string `json:"highlightId"`
	Message     string `json:"message"`
}

// SessionDescriptor is the wire shape of one session from the
// session-status endpoint.
type SessionDescriptor struct {
	SessionId   any    `json:"session_id"`
	SessionName string `json:"session_name"`
	YearStart   int    `json:"year_start"`
	YearEnd     int    `json:"year_end"`
	IsActive    bool   `json:"is_active"`
}

// SessionIdString renders the id whether it arrived as string or number.
func (s *SessionDescriptor) SessionIdString() string {
	switch v := s.SessionId.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return fmt.Sprintf("%.0f", v)
	}
	return ""
}
