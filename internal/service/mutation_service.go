package service

import (
	"context"
	"sync"

	"legis-catalog-client/internal/pkg/logger"
	"legis-catalog-client/internal/repository/contract"
	"legis-catalog-client/pkg/legiscan"
	"legis-catalog-client/pkg/normalize"
)

// Order types used when confirming marks through the highlights endpoint.
const (
	orderTypeHighlight = "state-legislation"
	orderTypeReviewed  = "state-legislation-reviewed"
)

type mutationPhase int

const (
	mutationPending mutationPhase = iota
	mutationConfirmed
	mutationRolledBack
)

// mutationState tracks one in-flight optimistic mutation through its
// pending -> confirmed | rolled-back lifecycle. The local value write
// happens on entry to pending; no other state is externally observable
// between "applied" and "settled".
type mutationState struct {
	phase mutationPhase
}

type IMutationService interface {
	SetCategory(ctx context.Context, billId, rawCategory string) error
	SetHighlight(ctx context.Context, billId string, on bool) error
	SetReviewed(ctx context.Context, billId string, reviewed bool) error
}

type mutationService struct {
	client     *legiscan.Client
	bills      contract.BillCollectionRepository
	highlights contract.MarkSetRepository
	reviews    contract.MarkSetRepository
	log        logger.ILogger
	userId     string

	mu       sync.Mutex
	inflight map[string]*mutationState // keyed id+"/"+field
}

func NewMutationService(
	client *legiscan.Client,
	bills contract.BillCollectionRepository,
	highlights contract.MarkSetRepository,
	reviews contract.MarkSetRepository,
	log logger.ILogger,
	userId string,
) IMutationService {
	return &mutationService{
		client:     client,
		bills:      bills,
		highlights: highlights,
		reviews:    reviews,
		log:        log,
		userId:     userId,
		inflight:   make(map[string]*mutationState),
	}
}

// begin rejects a second mutation on the same id+field before the first
// settles. Queueing would apply stale intent; the caller just retries.
func (s *mutationService) begin(key string) (*mutationState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[key]; busy {
		return nil, ErrMutationInFlight
	}
	m := &mutationState{phase: mutationPending}
	s.inflight[key] = m
	return m, nil
}

func (s *mutationService) settle(key string, m *mutationState, phase mutationPhase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.phase = phase
	delete(s.inflight, key)
}

// SetCategory applies a category edit locally, then confirms it upstream.
// On failure it reverts to the normalized prior value, never the raw one,
// so an invalid state can never be reintroduced by rollback.
func (s *mutationService) SetCategory(ctx context.Context, billId, rawCategory string) error {
	key := billId + "/category"
	m, err := s.begin(key)
	if err != nil {
		return err
	}

	bill, ok := s.bills.FindById(billId)
	if !ok {
		s.settle(key, m, mutationRolledBack)
		return ErrBillNotFound
	}
	if bill.UnstableId {
		s.settle(key, m, mutationRolledBack)
		return ErrUnstableBillId
	}

	next := normalize.NormalizeCategory(rawCategory)
	prior := normalize.NormalizeCategory(string(bill.Category))

	s.bills.UpdateCategory(billId, next)

	if err := s.client.UpdateCategory(ctx, billId, string(next), s.userId); err != nil {
		s.bills.UpdateCategory(billId, prior)
		s.settle(key, m, mutationRolledBack)
		s.log.Warn("mutation", "category edit rolled back", map[string]interface{}{
			"bill":  billId,
			"error": err.Error(),
		})
		return &MutationError{BillId: billId, Field: "category", Cause: err}
	}

	s.settle(key, m, mutationConfirmed)
	return nil
}

// SetHighlight toggles membership in the highlight set. A 409 on add means
// the server already has the highlight; that is the intent, so it counts
// as success with the local state retained.
func (s *mutationService) SetHighlight(ctx context.Context, billId string, on bool) error {
	key := billId + "/highlight"
	m, err := s.begin(key)
	if err != nil {
		return err
	}

	if s.highlights.Has(billId) == on {
		s.settle(key, m, mutationConfirmed)
		return nil
	}

	if on {
		s.highlights.Add(billId)
		result, err := s.client.AddHighlight(ctx, legiscan.HighlightRequest{
			UserId:    s.userId,
			OrderId:   billId,
			OrderType: orderTypeHighlight,
		})
		if err != nil {
			if legiscan.IsConflict(err) {
				s.settle(key, m, mutationConfirmed)
				return nil
			}
			s.highlights.Remove(billId)
			s.settle(key, m, mutationRolledBack)
			return &MutationError{BillId: billId, Field: "highlight", Cause: err}
		}
		if result.HighlightId != "" {
			s.highlights.SetRecordId(billId, result.HighlightId)
		}
	} else {
		recordId, ok := s.highlights.RecordId(billId)
		if !ok {
			recordId = billId
		}
		s.highlights.Remove(billId)
		if err := s.client.RemoveHighlight(ctx, recordId, s.userId); err != nil {
			s.highlights.Add(billId)
			s.settle(key, m, mutationRolledBack)
			return &MutationError{BillId: billId, Field: "highlight", Cause: err}
		}
		s.highlights.ClearRecordId(billId)
	}

	s.settle(key, m, mutationConfirmed)
	return nil
}

// SetReviewed toggles the reviewed flag on the record and mirrors it in the
// reviewed mark set so it survives window re-fetches. Confirmed through the
// highlights endpoint under its own order type; 409 on add is success.
func (s *mutationService) SetReviewed(ctx context.Context, billId string, reviewed bool) error {
	key := billId + "/reviewed"
	m, err := s.begin(key)
	if err != nil {
		return err
	}

	bill, ok := s.bills.FindById(billId)
	if !ok {
		s.settle(key, m, mutationRolledBack)
		return ErrBillNotFound
	}
	prior := bill.Reviewed
	if prior == reviewed {
		s.settle(key, m, mutationConfirmed)
		return nil
	}

	s.applyReviewed(billId, reviewed)

	rollback := func() {
		s.applyReviewed(billId, prior)
		s.settle(key, m, mutationRolledBack)
	}

	if reviewed {
		result, err := s.client.AddHighlight(ctx, legiscan.HighlightRequest{
			UserId:    s.userId,
			OrderId:   billId,
			OrderType: orderTypeReviewed,
		})
		if err != nil {
			if legiscan.IsConflict(err) {
				s.settle(key, m, mutationConfirmed)
				return nil
			}
			rollback()
			return &MutationError{BillId: billId, Field: "reviewed", Cause: err}
		}
		if result.HighlightId != "" {
			s.reviews.SetRecordId(billId, result.HighlightId)
		}
	} else {
		recordId, ok := s.reviews.RecordId(billId)
		if !ok {
			recordId = billId
		}
		if err := s.client.RemoveHighlight(ctx, recordId, s.userId); err != nil {
			rollback()
			return &MutationError{BillId: billId, Field: "reviewed", Cause: err}
		}
		s.reviews.ClearRecordId(billId)
	}

	s.settle(key, m, mutationConfirmed)
	return nil
}

func (s *mutationService) applyReviewed(billId string, reviewed bool) {
	s.bills.SetReviewed(billId, reviewed)
	if reviewed {
		s.reviews.Add(billId)
	} else {
		s.reviews.Remove(billId)
	}
}
