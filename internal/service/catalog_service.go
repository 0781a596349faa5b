package service

import (
	"sort"
	"sync"

	"legis-catalog-client/internal/dto"
	"legis-catalog-client/internal/entity"
	"legis-catalog-client/internal/pkg/logger"
	"legis-catalog-client/internal/repository/contract"
	"legis-catalog-client/pkg/normalize"
)

type SortOrder string

const (
	SortLatest   SortOrder = "latest"
	SortEarliest SortOrder = "earliest"
)

// FilterState is entirely derived state. Only HighlightOnly survives the
// session, through the preference repository.
type FilterState struct {
	CategoryFilters map[entity.Category]bool
	StatusFilter    *entity.Stage
	SessionFilters  map[string]bool
	HighlightOnly   bool
	SortOrder       SortOrder
}

// Active reports whether any filter narrows the collection. Sort order is
// not a filter: it never changes the item count.
func (f *FilterState) Active() bool {
	return len(f.CategoryFilters) > 0 ||
		f.StatusFilter != nil ||
		len(f.SessionFilters) > 0 ||
		f.HighlightOnly
}

func (f *FilterState) clone() FilterState {
	out := FilterState{
		HighlightOnly: f.HighlightOnly,
		SortOrder:     f.SortOrder,
	}
	out.CategoryFilters = make(map[entity.Category]bool, len(f.CategoryFilters))
	for k, v := range f.CategoryFilters {
		out.CategoryFilters[k] = v
	}
	out.SessionFilters = make(map[string]bool, len(f.SessionFilters))
	for k, v := range f.SessionFilters {
		out.SessionFilters[k] = v
	}
	if f.StatusFilter != nil {
		stage := *f.StatusFilter
		out.StatusFilter = &stage
	}
	return out
}

// ApplyPipeline is the pure transformation over the canonical collection:
// category filter, stage filter, highlight filter, session filter, sort.
// Everything it reads arrives as an explicit argument so redundant callers
// can never capture stale shared state.
func ApplyPipeline(
	bills []*entity.Bill,
	fs FilterState,
	highlights map[string]bool,
	sessionsById map[string]*entity.SessionDescriptor,
) []*entity.Bill {
	out := make([]*entity.Bill, 0, len(bills))

	// Selected session ids translate to names through the descriptor map;
	// bills match on their session id or, failing that, session name.
	sessionKeys := make(map[string]bool, len(fs.SessionFilters)*2)
	for id := range fs.SessionFilters {
		sessionKeys[id] = true
		if d, ok := sessionsById[id]; ok && d.SessionName != "" {
			sessionKeys[d.SessionName] = true
		}
	}

	for _, b := range bills {
		if len(fs.CategoryFilters) > 0 && !fs.CategoryFilters[b.Category] {
			continue
		}
		if fs.StatusFilter != nil && normalize.Classify(deref(b.RawStatus)) != *fs.StatusFilter {
			continue
		}
		if fs.HighlightOnly && !highlights[b.Id] {
			continue
		}
		if len(fs.SessionFilters) > 0 && !sessionKeys[b.SessionKey()] {
			continue
		}
		out = append(out, b)
	}

	sort.SliceStable(out, func(i, j int) bool {
		di, dj := out[i].SortDate(), out[j].SortDate()
		if fs.SortOrder == SortEarliest {
			return di.Before(dj)
		}
		return dj.Before(di)
	})
	return out
}

// Paginate computes the window over the already-filtered slice. With a
// filter active the totals always come from the filtered length; without
// one the server-reported total may exceed what is held locally.
func Paginate(
	filtered []*entity.Bill,
	page, perPage int,
	filterActive bool,
	serverTotal int,
) ([]*entity.Bill, dto.PaginationWindow) {
	if perPage <= 0 {
		perPage = 20
	}
	totalItems := len(filtered)
	if !filterActive && serverTotal > totalItems {
		totalItems = serverTotal
	}
	totalPages := (totalItems + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * perPage
	end := start + perPage
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return filtered[start:end], dto.PaginationWindow{
		Page:       page,
		PerPage:    perPage,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}

type ICatalogService interface {
	View(page int) *dto.CatalogViewResponse
	SetFilters(req *dto.SetFiltersRequest) (*dto.FilterStateResponse, error)
	Filters() *dto.FilterStateResponse
	Sessions() *dto.SessionListResponse
}

type catalogService struct {
	bills      contract.BillCollectionRepository
	sessions   contract.SessionCatalogRepository
	highlights contract.MarkSetRepository
	prefs      contract.PreferenceRepository
	log        logger.ILogger
	perPage    int

	mu     sync.Mutex
	filter FilterState
}

func NewCatalogService(
	bills contract.BillCollectionRepository,
	sessions contract.SessionCatalogRepository,
	highlights contract.MarkSetRepository,
	prefs contract.PreferenceRepository,
	log logger.ILogger,
	perPage int,
) ICatalogService {
	if perPage <= 0 {
		perPage = 20
	}
	return &catalogService{
		bills:      bills,
		sessions:   sessions,
		highlights: highlights,
		prefs:      prefs,
		log:        log,
		perPage:    perPage,
		filter: FilterState{
			CategoryFilters: make(map[entity.Category]bool),
			SessionFilters:  make(map[string]bool),
			// The one preference that survives across sessions.
			HighlightOnly: prefs.HighlightOnly(),
			SortOrder:     SortLatest,
		},
	}
}

func (s *catalogService) View(page int) *dto.CatalogViewResponse {
	s.mu.Lock()
	fs := s.filter.clone()
	s.mu.Unlock()

	sessionsById := make(map[string]*entity.SessionDescriptor)
	for _, d := range s.sessions.All() {
		sessionsById[d.SessionId] = d
	}
	highlights := s.highlights.AsSet()

	filtered := ApplyPipeline(s.bills.All(), fs, highlights, sessionsById)
	pageBills, window := Paginate(filtered, page, s.perPage, fs.Active(), s.bills.ServerTotal())

	views := make([]dto.BillView, 0, len(pageBills))
	for _, b := range pageBills {
		views = append(views, dto.BillView{Bill: *b, Highlighted: highlights[b.Id]})
	}
	return &dto.CatalogViewResponse{Bills: views, Pagination: window}
}

func (s *catalogService) SetFilters(req *dto.SetFiltersRequest) (*dto.FilterStateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.Categories != nil {
		s.filter.CategoryFilters = make(map[entity.Category]bool, len(*req.Categories))
		for _, raw := range *req.Categories {
			// Dirty input degrades the same way upstream data does.
			s.filter.CategoryFilters[normalize.NormalizeCategory(raw)] = true
		}
	}
	if req.Status != nil {
		if *req.Status == "" {
			s.filter.StatusFilter = nil
		} else {
			stage := entity.Stage(*req.Status)
			s.filter.StatusFilter = &stage
		}
	}
	if req.Sessions != nil {
		s.filter.SessionFilters = make(map[string]bool, len(*req.Sessions))
		for _, id := range *req.Sessions {
			s.filter.SessionFilters[id] = true
		}
	}
	if req.HighlightOnly != nil && *req.HighlightOnly != s.filter.HighlightOnly {
		s.filter.HighlightOnly = *req.HighlightOnly
		if err := s.prefs.SetHighlightOnly(*req.HighlightOnly); err != nil {
			// The toggle still applies locally; only persistence failed.
			s.log.Warn("catalog", "failed to persist highlight-only preference", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	if req.SortOrder != nil {
		s.filter.SortOrder = SortOrder(*req.SortOrder)
	}

	return s.filterStateLocked(), nil
}

func (s *catalogService) Filters() *dto.FilterStateResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filterStateLocked()
}

func (s *catalogService) Sessions() *dto.SessionListResponse {
	return &dto.SessionListResponse{Sessions: s.sessions.All()}
}

func (s *catalogService) filterStateLocked() *dto.FilterStateResponse {
	categories := make([]string, 0, len(s.filter.CategoryFilters))
	for c := range s.filter.CategoryFilters {
		categories = append(categories, string(c))
	}
	sort.Strings(categories)

	sessions := make([]string, 0, len(s.filter.SessionFilters))
	for id := range s.filter.SessionFilters {
		sessions = append(sessions, id)
	}
	sort.Strings(sessions)

	resp := &dto.FilterStateResponse{
		Categories:    categories,
		Sessions:      sessions,
		HighlightOnly: s.filter.HighlightOnly,
		SortOrder:     string(s.filter.SortOrder),
	}
	if s.filter.StatusFilter != nil {
		status := string(*s.filter.StatusFilter)
		resp.Status = &status
	}
	return resp
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
