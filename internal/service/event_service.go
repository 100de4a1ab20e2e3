package service

import (
	"context"

	"github.com/promptgate/console/internal/audit"
	"github.com/promptgate/console/internal/models"
	"github.com/promptgate/console/internal/monitoring"
	"github.com/promptgate/console/internal/repository"
)

// EventService combines the repositories, identity resolution and
// audit trail into the operations consumed by the presentation layer
type EventService struct {
	eventRepo   *repository.EventRepository
	catalogRepo *repository.CatalogRepository
	identity    IdentityProvider
	auditLog    *audit.Logger
}

func NewEventService(
	eventRepo *repository.EventRepository,
	catalogRepo *repository.CatalogRepository,
	identity IdentityProvider,
	auditLog *audit.Logger,
) *EventService {
	return &EventService{
		eventRepo:   eventRepo,
		catalogRepo: catalogRepo,
		identity:    identity,
		auditLog:    auditLog,
	}
}

// CreateEvent validates the input, resolves the caller identity and
// creates the event through the atomic add_event procedure
func (s *EventService) CreateEvent(ctx context.Context, input models.EventInput) (*models.Event, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	ownerID, err := s.identity.CurrentIdentity(ctx)
	if err != nil {
		return nil, err
	}

	event, err := s.eventRepo.Create(ctx, ownerID, input)
	if err != nil {
		return nil, err
	}

	monitoring.EventMutations.WithLabelValues("create").Inc()
	s.auditLog.Record(ctx, models.AuditEventCreated, ownerID, event.ID, map[string]interface{}{
		"code": event.Code,
	})
	return event, nil
}

// GetEvent returns the event with catalogs, or (nil, nil) when absent
func (s *EventService) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	return s.eventRepo.FindByID(ctx, id)
}

// ListOwnerEvents returns the caller's events, active first, then by
// start timestamp ascending
func (s *EventService) ListOwnerEvents(ctx context.Context) ([]models.Event, error) {
	ownerID, err := s.identity.CurrentIdentity(ctx)
	if err != nil {
		return nil, err
	}
	return s.eventRepo.ListByOwner(ctx, ownerID)
}

// UpdateEvent overwrites all mutable fields; (nil, nil) when absent
func (s *EventService) UpdateEvent(ctx context.Context, id string, input models.EventInput) (*models.Event, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	event, err := s.eventRepo.Update(ctx, id, input)
	if err != nil || event == nil {
		return event, err
	}

	monitoring.EventMutations.WithLabelValues("update").Inc()
	s.auditLog.Record(ctx, models.AuditEventUpdated, s.actor(ctx), id, map[string]interface{}{
		"code": event.Code,
	})
	return event, nil
}

// UpdateModelsForEvent replaces the event's catalog assignment set
// wholesale. Unknown ids are silently dropped by the catalog lookup;
// (nil, nil) when the event is absent.
func (s *EventService) UpdateModelsForEvent(ctx context.Context, id string, modelIDs []string) (*models.Event, error) {
	catalogs, err := s.catalogRepo.FindByIDs(ctx, modelIDs)
	if err != nil {
		return nil, err
	}

	event, err := s.eventRepo.ReplaceCatalogs(ctx, id, catalogs)
	if err != nil || event == nil {
		return event, err
	}

	monitoring.EventMutations.WithLabelValues("replace_models").Inc()
	s.auditLog.Record(ctx, models.AuditModelsReplaced, s.actor(ctx), id, map[string]interface{}{
		"requested": len(modelIDs),
		"assigned":  len(event.Catalogs),
	})
	return event, nil
}

// ListCatalogs returns the catalog entries available for assignment
func (s *EventService) ListCatalogs(ctx context.Context) ([]models.Catalog, error) {
	return s.catalogRepo.ListActive(ctx)
}

// actor resolves the caller identity for audit purposes only; a
// missing identity degrades to an empty actor instead of failing the
// already-committed mutation
func (s *EventService) actor(ctx context.Context) string {
	identity, err := s.identity.CurrentIdentity(ctx)
	if err != nil {
		return ""
	}
	return identity
}

// validateInput checks the required fields explicitly so a missing
// field surfaces as a typed error instead of a downstream crash
func validateInput(input models.EventInput) error {
	if input.Code == "" {
		return &models.ValidationError{Field: "code", Reason: "required"}
	}
	if input.StartsAt.IsZero() {
		return &models.ValidationError{Field: "starts_at", Reason: "required"}
	}
	if input.EndsAt.IsZero() {
		return &models.ValidationError{Field: "ends_at", Reason: "required"}
	}
	// StartsAt <= EndsAt is expected but deliberately not enforced in
	// this layer.
	return nil
}
