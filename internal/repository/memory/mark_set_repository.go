package memory

import (
	"sort"
	"sync"
)

// MarkSetRepository backs the highlight and reviewed sets with plain maps.
// go-cache is wrong here: marks must never be evicted by time.
type MarkSetRepository struct {
	mu        sync.RWMutex
	ids       map[string]bool
	recordIds map[string]string
}

func NewMarkSetRepository() *MarkSetRepository {
	return &MarkSetRepository{
		ids:       make(map[string]bool),
		recordIds: make(map[string]string),
	}
}

func (r *MarkSetRepository) Add(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids[id] = true
}

func (r *MarkSetRepository) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.ids, id)
}

func (r *MarkSetRepository) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ids[id]
}

func (r *MarkSetRepository) Ids() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.ids))
	for id := range r.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (r *MarkSetRepository) AsSet() map[string]bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]bool, len(r.ids))
	for id := range r.ids {
		out[id] = true
	}
	return out
}

func (r *MarkSetRepository) SetRecordId(billId, recordId string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recordIds[billId] = recordId
}

func (r *MarkSetRepository) RecordId(billId string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	recordId, ok := r.recordIds[billId]
	return recordId, ok
}

func (r *MarkSetRepository) ClearRecordId(billId string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.recordIds, billId)
}
