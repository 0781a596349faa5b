package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"legis-catalog-client/internal/dto"
	"legis-catalog-client/internal/entity"
	"legis-catalog-client/internal/pkg/logger"
	"legis-catalog-client/internal/repository/contract"
	"legis-catalog-client/pkg/legiscan"
	"legis-catalog-client/pkg/normalize"
)

// Fetch classes for the in-flight guards. One fetch per class at a time;
// different classes may overlap.
const (
	FetchClassWindowed    = "windowed"
	FetchClassIncremental = "incremental"
	FetchClassReconcile   = "reconcile"
)

type ISyncService interface {
	FetchPage(ctx context.Context, req *dto.FetchPageRequest) (*dto.FetchPageResponse, error)
	FetchRecent(ctx context.Context, req *dto.FetchRecentRequest) (*dto.FetchRecentResponse, error)
	CheckForUpdates(ctx context.Context, req *dto.ReconcileRequest) (*dto.ReconcileResponse, error)
	ActiveFetches() []string
}

type syncService struct {
	client   *legiscan.Client
	bills    contract.BillCollectionRepository
	sessions contract.SessionCatalogRepository
	reviews  contract.MarkSetRepository
	log      logger.ILogger
	perPage  int

	mu     sync.Mutex
	active map[string]bool
}

func NewSyncService(
	client *legiscan.Client,
	bills contract.BillCollectionRepository,
	sessions contract.SessionCatalogRepository,
	reviews contract.MarkSetRepository,
	log logger.ILogger,
	perPage int,
) ISyncService {
	if perPage <= 0 {
		perPage = 20
	}
	return &syncService{
		client:   client,
		bills:    bills,
		sessions: sessions,
		reviews:  reviews,
		log:      log,
		perPage:  perPage,
		active:   make(map[string]bool),
	}
}

func (s *syncService) begin(class string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active[class] {
		return &FetchInFlightError{Class: class}
	}
	s.active[class] = true
	return nil
}

func (s *syncService) end(class string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.active, class)
}

func (s *syncService) ActiveFetches() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.active))
	for class := range s.active {
		out = append(out, class)
	}
	sort.Strings(out)
	return out
}

// FetchPage replaces the local window with one page of the catalog. Every
// upstream record passes through the normalizer before storage; local
// highlight and reviewed marks survive the re-fetch.
func (s *syncService) FetchPage(ctx context.Context, req *dto.FetchPageRequest) (*dto.FetchPageResponse, error) {
	if err := s.begin(FetchClassWindowed); err != nil {
		return nil, err
	}
	defer s.end(FetchClassWindowed)
	return s.loadWindow(ctx, req.Jurisdiction, req.Page)
}

// refreshWindow reloads page 1 after a sync that changed upstream state. It
// takes the windowed guard like a user-initiated page fetch so the two can
// never interleave their ReplaceWindow calls; when a windowed fetch is
// already running the refresh is skipped, since that fetch will load the
// fresh data anyway.
func (s *syncService) refreshWindow(ctx context.Context, jurisdiction string) error {
	if err := s.begin(FetchClassWindowed); err != nil {
		return err
	}
	defer s.end(FetchClassWindowed)
	_, err := s.loadWindow(ctx, jurisdiction, 1)
	return err
}

func (s *syncService) loadWindow(ctx context.Context, jurisdiction string, pageNum int) (*dto.FetchPageResponse, error) {
	page, err := s.client.FetchPage(ctx, jurisdiction, pageNum, s.perPage)
	if err != nil {
		s.log.Error("sync", "windowed fetch failed", map[string]interface{}{
			"jurisdiction": jurisdiction,
			"page":         pageNum,
			"error":        err.Error(),
		})
		return nil, err
	}

	bills := make([]*entity.Bill, 0, len(page.Bills))
	for i := range page.Bills {
		b := s.toCanonicalBill(&page.Bills[i], jurisdiction)
		b.Reviewed = s.reviews.Has(b.Id)
		bills = append(bills, b)

		if b.SessionName != nil && !s.sessions.NameKnown(*b.SessionName) {
			s.sessions.AddObserved(*b.SessionName)
		}
	}

	s.bills.ReplaceWindow(bills)
	total := page.Total
	if total < len(bills) {
		total = len(bills)
	}
	s.bills.SetServerTotal(total)

	s.log.Info("sync", "windowed fetch complete", map[string]interface{}{
		"jurisdiction": jurisdiction,
		"page":         pageNum,
		"bills":        len(bills),
		"total":        total,
	})

	return &dto.FetchPageResponse{
		BillsFetched: len(bills),
		Total:        total,
		Page:         pageNum,
		TotalPages:   page.TotalPages,
	}, nil
}

// FetchRecent runs the incremental strategy: the upstream pulls records
// newer than its own cursor, then the local window is refreshed when
// anything was actually processed.
func (s *syncService) FetchRecent(ctx context.Context, req *dto.FetchRecentRequest) (*dto.FetchRecentResponse, error) {
	if err := s.begin(FetchClassIncremental); err != nil {
		return nil, err
	}
	defer s.end(FetchClassIncremental)

	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}
	result, err := s.client.FetchRecent(ctx, legiscan.FetchRecentRequest{
		Jurisdiction:     req.Jurisdiction,
		Limit:            limit,
		EnhancedAnalysis: true,
	})
	if err != nil {
		s.log.Error("sync", "incremental fetch failed", map[string]interface{}{
			"jurisdiction": req.Jurisdiction,
			"error":        err.Error(),
		})
		return nil, err
	}

	var message string
	switch {
	case result.BillsFound == 0:
		message = "No new bills found."
	case result.BillsProcessed == 0:
		message = fmt.Sprintf("%d bills found; all already present.", result.BillsFound)
	default:
		message = fmt.Sprintf("Processed %d of %d new bills.", result.BillsProcessed, result.BillsFound)
	}

	if result.BillsProcessed > 0 {
		if err := s.refreshWindow(ctx, req.Jurisdiction); err != nil {
			// The upstream accepted the new bills; only the local refresh
			// failed or was skipped. Report the sync as done and let the
			// user re-fetch.
			s.log.Warn("sync", "window refresh after incremental fetch failed", map[string]interface{}{
				"jurisdiction": req.Jurisdiction,
				"error":        err.Error(),
			})
		}
	}

	s.log.Info("sync", "incremental fetch complete", map[string]interface{}{
		"jurisdiction": req.Jurisdiction,
		"found":        result.BillsFound,
		"processed":    result.BillsProcessed,
		"cursor":       result.MostRecentDateBefore,
	})

	return &dto.FetchRecentResponse{
		BillsFound:     result.BillsFound,
		BillsProcessed: result.BillsProcessed,
		Message:        message,
	}, nil
}

// CheckForUpdates runs one bounded reconciliation batch. Idempotent: with
// nothing missing it is a no-op success, and RemainingBills tells the
// caller whether to invoke it again to resume.
func (s *syncService) CheckForUpdates(ctx context.Context, req *dto.ReconcileRequest) (*dto.ReconcileResponse, error) {
	if err := s.begin(FetchClassReconcile); err != nil {
		return nil, err
	}
	defer s.end(FetchClassReconcile)

	result, err := s.client.CheckAndUpdate(ctx, req.Jurisdiction)
	if err != nil {
		s.log.Error("sync", "reconciliation failed", map[string]interface{}{
			"jurisdiction": req.Jurisdiction,
			"error":        err.Error(),
		})
		return nil, err
	}

	var message string
	switch {
	case result.MissingBills == 0:
		message = "Collection is up to date."
	case result.RemainingBills > 0:
		message = fmt.Sprintf("Processed %d bills; %d remaining. Run check again to continue.",
			result.ProcessedBills, result.RemainingBills)
	default:
		message = fmt.Sprintf("Processed %d missing bills.", result.ProcessedBills)
	}

	if result.ProcessedBills > 0 {
		if err := s.refreshWindow(ctx, req.Jurisdiction); err != nil {
			s.log.Warn("sync", "window refresh after reconciliation failed", map[string]interface{}{
				"jurisdiction": req.Jurisdiction,
				"error":        err.Error(),
			})
		}
	}

	s.log.Info("sync", "reconciliation batch complete", map[string]interface{}{
		"jurisdiction": req.Jurisdiction,
		"missing":      result.MissingBills,
		"processed":    result.ProcessedBills,
		"remaining":    result.RemainingBills,
	})

	return &dto.ReconcileResponse{
		ApiBillsFound:  result.ApiBillsFound,
		ExistingBills:  result.ExistingBills,
		MissingBills:   result.MissingBills,
		ProcessedBills: result.ProcessedBills,
		RemainingBills: result.RemainingBills,
		Message:        message,
	}, nil
}

// toCanonicalBill maps one dirty upstream record onto the canonical form.
// StatusStage always comes from the classifier, never from upstream.
func (s *syncService) toCanonicalBill(raw *legiscan.RawBill, jurisdiction string) *entity.Bill {
	if raw.Jurisdiction != "" {
		jurisdiction = raw.Jurisdiction
	}

	id, stable := normalize.DeriveId(
		raw.StringId(), raw.NumericId(), jurisdiction, raw.EffectiveBillNumber(), raw.Title)
	if !stable {
		s.log.Warn("sync", "bill id derived from random fallback", map[string]interface{}{
			"title": raw.Title,
		})
	}

	b := &entity.Bill{
		Id:             id,
		UnstableId:     !stable,
		Title:          normalize.NormalizeTitle(raw.Title),
		Jurisdiction:   jurisdiction,
		StatusStage:    normalize.Classify(raw.Status),
		Category:       normalize.NormalizeCategory(raw.Category),
		Summary:        raw.EffectiveSummary(),
		IntroducedDate: parseUpstreamDate(raw.IntroducedDate),
		LastActionDate: parseUpstreamDate(raw.LastActionDate),
	}
	if bn := raw.EffectiveBillNumber(); bn != "" {
		b.BillNumber = &bn
	}
	if raw.Status != "" {
		status := raw.Status
		b.RawStatus = &status
	}
	if sid := raw.SessionIdString(); sid != "" {
		b.SessionId = &sid
	}
	if raw.SessionName != "" {
		name := raw.SessionName
		b.SessionName = &name
	}
	if u := raw.EffectiveSourceUrl(); u != "" {
		b.SourceUrl = &u
	}
	return b
}

var upstreamDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"01/02/2006",
}

func parseUpstreamDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range upstreamDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
