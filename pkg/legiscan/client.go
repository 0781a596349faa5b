package legiscan

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"legis-catalog-client/pkg/requestcache"
)

// Config holds the upstream endpoint and the per-class timeout bounds.
// Interactive reads get the short bound; fetch-recent and check-and-update
// run server-side AI enrichment and need the bulk bounds.
type Config struct {
	BaseURL            string
	InteractiveTimeout time.Duration
	BulkTimeout        time.Duration
	ReconcileTimeout   time.Duration
}

// Client talks to the legislative data service. Every call goes through the
// request cache so bursts of identical calls collapse to one network call,
// and is bounded by its class timeout with cooperative cancellation.
type Client struct {
	cfg   Config
	http  *http.Client
	cache *requestcache.Cache
}

func NewClient(cfg Config, cache *requestcache.Cache) *Client {
	if cfg.InteractiveTimeout <= 0 {
		cfg.InteractiveTimeout = 2 * time.Minute
	}
	if cfg.BulkTimeout <= 0 {
		cfg.BulkTimeout = 10 * time.Minute
	}
	if cfg.ReconcileTimeout <= 0 {
		cfg.ReconcileTimeout = 15 * time.Minute
	}
	return &Client{
		cfg:   cfg,
		http:  &http.Client{},
		cache: cache,
	}
}

// FetchPage reads one page of the catalog for a jurisdiction.
func (c *Client) FetchPage(ctx context.Context, jurisdiction string, page, perPage int) (*BillPage, error) {
	query := url.Values{}
	query.Set("jurisdiction", jurisdiction)
	query.Set("page", fmt.Sprintf("%d", page))
	query.Set("perPage", fmt.Sprintf("%d", perPage))

	resp, err := c.call(ctx, "fetch page", http.MethodGet, "/state-legislation", query, nil, c.cfg.InteractiveTimeout)
	if err != nil {
		return nil, err
	}
	return parseBillPage("fetch page", resp.Body)
}

// FetchRecent asks the upstream to pull records newer than its own most
// recent date cursor.
func (c *Client) FetchRecent(ctx context.Context, req FetchRecentRequest) (*FetchRecentResult, error) {
	resp, err := c.call(ctx, "fetch recent", http.MethodPost, "/legiscan/fetch-recent", nil, req, c.cfg.BulkTimeout)
	if err != nil {
		return nil, err
	}
	var result FetchRecentResult
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode fetch-recent response: %w", err)
	}
	return &result, nil
}

// CheckAndUpdate asks the upstream to diff its ids against the stored set
// and process one bounded batch of the missing bills. RemainingBills in the
// result drives resumption.
func (c *Client) CheckAndUpdate(ctx context.Context, jurisdiction string) (*CheckAndUpdateResult, error) {
	body := map[string]string{"jurisdiction": jurisdiction}
	resp, err := c.call(ctx, "check and update", http.MethodPost, "/legiscan/check-and-update", nil, body, c.cfg.ReconcileTimeout)
	if err != nil {
		return nil, err
	}
	var result CheckAndUpdateResult
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode check-and-update response: %w", err)
	}
	return &result, nil
}

// UpdateCategory confirms a category edit upstream.
func (c *Client) UpdateCategory(ctx context.Context, billId, category, userId string) error {
	body := map[string]string{"category": category, "userId": userId}
	path := "/state-legislation/" + url.PathEscape(billId) + "/category"
	_, err := c.call(ctx, "update category", http.MethodPatch, path, nil, body, c.cfg.InteractiveTimeout)
	return err
}

// AddHighlight confirms a highlight upstream. A 409 surfaces as
// *HttpStatusError for the caller to treat as already-applied success.
func (c *Client) AddHighlight(ctx context.Context, req HighlightRequest) (*HighlightResult, error) {
	resp, err := c.call(ctx, "add highlight", http.MethodPost, "/highlights", nil, req, c.cfg.InteractiveTimeout)
	if err != nil {
		return nil, err
	}
	var result HighlightResult
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode highlight response: %w", err)
	}
	return &result, nil
}

// RemoveHighlight removes a highlight by its server-side record id.
func (c *Client) RemoveHighlight(ctx context.Context, highlightId, userId string) error {
	query := url.Values{}
	query.Set("userId", userId)
	path := "/highlights/" + url.PathEscape(highlightId)
	_, err := c.call(ctx, "remove highlight", http.MethodDelete, path, query, nil, c.cfg.InteractiveTimeout)
	return err
}

// SessionStatus fetches session descriptors per jurisdiction.
func (c *Client) SessionStatus(ctx context.Context, jurisdictions []string, includeAll bool) (map[string][]SessionDescriptor, error) {
	body := map[string]any{
		"jurisdictions":      jurisdictions,
		"includeAllSessions": includeAll,
	}
	resp, err := c.call(ctx, "session status", http.MethodPost, "/legiscan/session-status", nil, body, c.cfg.InteractiveTimeout)
	if err != nil {
		return nil, err
	}
	var result struct {
		Success        bool                           `json:"success"`
		ActiveSessions map[string][]SessionDescriptor `json:"activeSessions"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode session-status response: %w", err)
	}
	return result.ActiveSessions, nil
}

func (c *Client) call(ctx context.Context, op, method, path string, query url.Values, payload any, timeout time.Duration) (*requestcache.Response, error) {
	fullURL := strings.TrimRight(c.cfg.BaseURL, "/") + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var bodyBytes []byte
	if payload != nil {
		var err error
		bodyBytes, err = json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s request: %w", op, err)
		}
	}

	key := requestcache.Key(method, fullURL, bodyBytes)
	resp, err := c.cache.Execute(ctx, key, func(callCtx context.Context) (*requestcache.Response, error) {
		tctx, cancel := context.WithTimeout(callCtx, timeout)
		defer cancel()

		var reader io.Reader
		if bodyBytes != nil {
			reader = bytes.NewReader(bodyBytes)
		}
		req, err := http.NewRequestWithContext(tctx, method, fullURL, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s request: %w", op, err)
		}
		req.Header.Set("Accept", "application/json")
		if bodyBytes != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		httpResp, err := c.http.Do(req)
		if err != nil {
			if tctx.Err() == context.DeadlineExceeded && callCtx.Err() == nil {
				return nil, &TimeoutError{Op: op, Limit: timeout}
			}
			return nil, fmt.Errorf("%s request failed: %w", op, err)
		}
		defer httpResp.Body.Close()

		raw, err := io.ReadAll(httpResp.Body)
		if err != nil {
			if tctx.Err() == context.DeadlineExceeded && callCtx.Err() == nil {
				return nil, &TimeoutError{Op: op, Limit: timeout}
			}
			return nil, fmt.Errorf("failed to read %s response: %w", op, err)
		}

		return &requestcache.Response{
			Status: httpResp.StatusCode,
			Header: httpResp.Header.Clone(),
			Body:   raw,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	if !resp.IsJSON() {
		return nil, &UnexpectedContentTypeError{
			Op:          op,
			ContentType: resp.Header.Get("Content-Type"),
			Status:      resp.Status,
		}
	}
	if resp.Status >= 400 {
		return nil, &HttpStatusError{Op: op, Status: resp.Status, Message: messageFromBody(resp.Body)}
	}
	return resp, nil
}

// messageFromBody pulls a human-readable message out of a JSON error body
// when the backend provided one.
func messageFromBody(body []byte) string {
	var parsed struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}
	if parsed.Message != "" {
		return parsed.Message
	}
	return parsed.Error
}
