package contract

// MarkSetRepository is a set of bill ids mirrored from server state (the
// highlight set and the reviewed set). The local set is the source of truth
// for rendering and may briefly diverge from the server while a mutation is
// in flight. RecordId tracks the server-side record id a mark was stored
// under, needed to delete highlights upstream.
type MarkSetRepository interface {
	Add(id string)
	Remove(id string)
	Has(id string) bool
	Ids() []string
	AsSet() map[string]bool
	SetRecordId(billId, recordId string)
	RecordId(billId string) (string, bool)
	ClearRecordId(billId string)
}
