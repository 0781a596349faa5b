package dto

type FetchPageRequest struct {
	Jurisdiction string `json:"jurisdiction" validate:"required"`
	Page         int    `json:"page" validate:"min=1"`
}

type FetchPageResponse struct {
	BillsFetched int `json:"bills_fetched"`
	Total        int `json:"total"`
	Page         int `json:"page"`
	TotalPages   int `json:"total_pages"`
}

type FetchRecentRequest struct {
	Jurisdiction string `json:"jurisdiction" validate:"required"`
	Limit        int    `json:"limit" validate:"omitempty,min=1,max=500"`
}

// FetchRecentResponse distinguishes "nothing new upstream" from "found but
// already present": the two success states need different user messages.
type FetchRecentResponse struct {
	BillsFound     int    `json:"bills_found"`
	BillsProcessed int    `json:"bills_processed"`
	Message        string `json:"message"`
}

type ReconcileRequest struct {
	Jurisdiction string `json:"jurisdiction" validate:"required"`
}

// ReconcileResponse surfaces the batch accounting; RemainingBills > 0 means
// the caller should invoke the operation again to resume.
type ReconcileResponse struct {
	ApiBillsFound  int    `json:"api_bills_found"`
	ExistingBills  int    `json:"existing_bills"`
	MissingBills   int    `json:"missing_bills"`
	ProcessedBills int    `json:"processed_bills"`
	RemainingBills int    `json:"remaining_bills"`
	Message        string `json:"message"`
}

// SyncStatusResponse is the navigation-warning signal: WarnBeforeLeaving is
// set while any fetch class is running.
type SyncStatusResponse struct {
	ActiveFetches     []string `json:"active_fetches"`
	WarnBeforeLeaving bool     `json:"warn_before_leaving"`
}
