package memory

import (
	"sync"

	"legis-catalog-client/internal/entity"
)

// SessionCatalogRepository holds the reconciled session descriptor set.
type SessionCatalogRepository struct {
	mu       sync.RWMutex
	order    []string
	byId     map[string]*entity.SessionDescriptor
	byName   map[string]string // name -> id
	observed []string          // observed ids, appended after endpoint-sourced
}

func NewSessionCatalogRepository() *SessionCatalogRepository {
	return &SessionCatalogRepository{
		byId:   make(map[string]*entity.SessionDescriptor),
		byName: make(map[string]string),
	}
}

func (r *SessionCatalogRepository) ReplaceEndpointSourced(sessions []*entity.SessionDescriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Preserve observed descriptors whose names the new endpoint set still
	// does not cover.
	kept := make([]*entity.SessionDescriptor, 0, len(r.observed))
	for _, id := range r.observed {
		if d, ok := r.byId[id]; ok {
			kept = append(kept, d)
		}
	}

	r.order = r.order[:0]
	r.observed = r.observed[:0]
	r.byId = make(map[string]*entity.SessionDescriptor, len(sessions))
	r.byName = make(map[string]string, len(sessions))

	for _, s := range sessions {
		if _, exists := r.byId[s.SessionId]; exists {
			continue
		}
		r.byId[s.SessionId] = s
		r.byName[s.SessionName] = s.SessionId
		r.order = append(r.order, s.SessionId)
	}
	for _, d := range kept {
		if _, known := r.byName[d.SessionName]; known {
			continue
		}
		r.byId[d.SessionId] = d
		r.byName[d.SessionName] = d.SessionId
		r.order = append(r.order, d.SessionId)
		r.observed = append(r.observed, d.SessionId)
	}
}

func (r *SessionCatalogRepository) AddObserved(name string) {
	if name == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, known := r.byName[name]; known {
		return
	}
	d := &entity.SessionDescriptor{
		SessionId:   entity.ObservedSessionIdPrefix + name,
		SessionName: name,
		Observed:    true,
	}
	r.byId[d.SessionId] = d
	r.byName[name] = d.SessionId
	r.order = append(r.order, d.SessionId)
	r.observed = append(r.observed, d.SessionId)
}

func (r *SessionCatalogRepository) All() []*entity.SessionDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.SessionDescriptor, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byId[id])
	}
	return out
}

func (r *SessionCatalogRepository) ById(id string) (*entity.SessionDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.byId[id]
	return d, ok
}

func (r *SessionCatalogRepository) NameKnown(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byName[name]
	return ok
}
