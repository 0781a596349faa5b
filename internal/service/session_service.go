package service

import (
	"context"

	"legis-catalog-client/internal/entity"
	"legis-catalog-client/internal/pkg/logger"
	"legis-catalog-client/internal/repository/contract"
	"legis-catalog-client/pkg/legiscan"
)

type ISessionService interface {
	Refresh(ctx context.Context, jurisdictions []string, includeAll bool) error
}

type sessionService struct {
	client   *legiscan.Client
	sessions contract.SessionCatalogRepository
	log      logger.ILogger
}

func NewSessionService(client *legiscan.Client, sessions contract.SessionCatalogRepository, log logger.ILogger) ISessionService {
	return &sessionService{client: client, sessions: sessions, log: log}
}

// Refresh loads endpoint-sourced descriptors for the given jurisdictions.
// Bill-observed descriptors with names the endpoint does not cover survive
// the replacement (the repository keeps them).
func (s *sessionService) Refresh(ctx context.Context, jurisdictions []string, includeAll bool) error {
	byJurisdiction, err := s.client.SessionStatus(ctx, jurisdictions, includeAll)
	if err != nil {
		s.log.Error("session", "session-status fetch failed", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}

	var descriptors []*entity.SessionDescriptor
	for _, wire := range byJurisdiction {
		for i := range wire {
			w := &wire[i]
			id := w.SessionIdString()
			if id == "" {
				continue
			}
			descriptors = append(descriptors, &entity.SessionDescriptor{
				SessionId:   id,
				SessionName: w.SessionName,
				YearStart:   w.YearStart,
				YearEnd:     w.YearEnd,
				IsActive:    w.IsActive,
			})
		}
	}
	s.sessions.ReplaceEndpointSourced(descriptors)

	s.log.Info("session", "session catalog refreshed", map[string]interface{}{
		"jurisdictions": jurisdictions,
		"sessions":      len(descriptors),
	})
	return nil
}
