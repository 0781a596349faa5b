package memory

import (
	"sync"

	"legis-catalog-client/internal/entity"
)

// BillCollectionRepository is the map-backed collection store. Insertion
// order is preserved so unfiltered iteration is stable across reads.
type BillCollectionRepository struct {
	mu          sync.RWMutex
	order       []string
	byId        map[string]*entity.Bill
	serverTotal int
}

func NewBillCollectionRepository() *BillCollectionRepository {
	return &BillCollectionRepository{
		byId: make(map[string]*entity.Bill),
	}
}

func (r *BillCollectionRepository) ReplaceWindow(bills []*entity.Bill) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = r.order[:0]
	r.byId = make(map[string]*entity.Bill, len(bills))
	for _, b := range bills {
		if _, exists := r.byId[b.Id]; exists {
			continue
		}
		r.byId[b.Id] = b
		r.order = append(r.order, b.Id)
	}
}

func (r *BillCollectionRepository) Upsert(bill *entity.Bill) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byId[bill.Id]; !exists {
		r.order = append(r.order, bill.Id)
	}
	r.byId[bill.Id] = bill
}

// FindById returns a copy. In-place writes happen only through the
// repository, so readers must never share memory with the stored record.
func (r *BillCollectionRepository) FindById(id string) (*entity.Bill, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.byId[id]
	if !ok {
		return nil, false
	}
	c := *b
	return &c, true
}

// All returns copies, same rule as FindById.
func (r *BillCollectionRepository) All() []*entity.Bill {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Bill, 0, len(r.order))
	for _, id := range r.order {
		c := *r.byId[id]
		out = append(out, &c)
	}
	return out
}

func (r *BillCollectionRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byId)
}

func (r *BillCollectionRepository) UpdateCategory(id string, category entity.Category) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.byId[id]
	if !ok {
		return false
	}
	b.Category = category
	return true
}

func (r *BillCollectionRepository) SetReviewed(id string, reviewed bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.byId[id]
	if !ok {
		return false
	}
	b.Reviewed = reviewed
	return true
}

func (r *BillCollectionRepository) ServerTotal() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.serverTotal
}

func (r *BillCollectionRepository) SetServerTotal(total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.serverTotal = total
}
