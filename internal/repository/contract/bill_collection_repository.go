package contract

import (
	"legis-catalog-client/internal/entity"
)

// BillCollectionRepository owns the canonical in-memory Bill collection.
// Single-owner: only the sync and mutation services write; the pipeline
// reads. There is no durable store behind it.
type BillCollectionRepository interface {
	// ReplaceWindow swaps the whole collection for a freshly fetched window.
	ReplaceWindow(bills []*entity.Bill)
	Upsert(bill *entity.Bill)
	FindById(id string) (*entity.Bill, bool)
	All() []*entity.Bill
	Count() int
	// UpdateCategory and SetReviewed return false when the id is unknown.
	UpdateCategory(id string, category entity.Category) bool
	SetReviewed(id string, reviewed bool) bool
	// ServerTotal is the server-reported collection size, usable by the
	// pipeline only when no filter is active.
	ServerTotal() int
	SetServerTotal(total int)
}
