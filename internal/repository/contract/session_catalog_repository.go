package contract

import (
	"legis-catalog-client/internal/entity"
)

// SessionCatalogRepository reconciles the two sources of session
// descriptors: the session-status endpoint (authoritative) and sessions
// observed embedded in bill records (added only when the name is absent
// from the endpoint-sourced set).
type SessionCatalogRepository interface {
	ReplaceEndpointSourced(sessions []*entity.SessionDescriptor)
	// AddObserved registers a bill-observed session name; no-op when the
	// name is already known.
	AddObserved(name string)
	All() []*entity.SessionDescriptor
	ById(id string) (*entity.SessionDescriptor, bool)
	NameKnown(name string) bool
}
