package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/promptgate/console/internal/models"
	"gorm.io/gorm"
)

// addEventSQL invokes the server-side creation procedure. All scalar
// fields are bound positionally; optional text fields must arrive as
// NULL, not as empty strings, so the procedure can distinguish
// "unset" from "set to blank".
const addEventSQL = `SELECT add_event(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) AS event_id`

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create invokes the atomic add_event procedure and returns the fully
// populated entity. The procedure assigns the identifier and writes
// the owner mapping in the same transaction.
func (r *EventRepository) Create(ctx context.Context, ownerID string, input models.EventInput) (*models.Event, error) {
	var row struct {
		EventID string
	}
	err := r.db.WithContext(ctx).Raw(addEventSQL,
		ownerID,
		input.Code,
		normalizeOptional(input.SharedCode),
		input.Markdown,
		input.StartsAt.UTC(),
		input.EndsAt.UTC(),
		input.TimeZoneOffsetMinutes,
		input.TimeZoneLabel,
		input.OrganizerName,
		input.OrganizerEmail,
		input.MaxTokenCap,
		input.DailyRequestCap,
		input.Active,
		normalizeOptional(input.ImageURL),
	).Scan(&row).Error
	if err != nil {
		return nil, models.NewPersistenceError("add_event", err)
	}
	if row.EventID == "" {
		return nil, models.NewPersistenceError("add_event", errors.New("procedure returned no event id"))
	}

	event, err := r.FindByID(ctx, row.EventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, models.NewPersistenceError("add_event", errors.New("created event not readable"))
	}
	return event, nil
}

// FindByID fetches one event with its assigned catalogs eagerly
// loaded. Returns (nil, nil) when no row matches.
func (r *EventRepository) FindByID(ctx context.Context, id string) (*models.Event, error) {
	var event models.Event
	err := r.db.WithContext(ctx).
		Preload("Catalogs").
		Where("id = ?", id).
		First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewPersistenceError("find event", err)
	}
	return &event, nil
}

// ListByOwner returns the caller's events, active ones first, then
// ascending by start timestamp within each activity group.
func (r *EventRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Event, error) {
	var events []models.Event
	err := r.db.WithContext(ctx).
		Preload("Catalogs").
		Joins("JOIN event_owners ON event_owners.event_id = events.id").
		Where("event_owners.owner_id = ?", ownerID).
		Order("events.active DESC, events.starts_at ASC").
		Find(&events).Error
	if err != nil {
		return nil, models.NewPersistenceError("list owner events", err)
	}
	return events, nil
}

// Update overwrites all mutable fields from input and persists in a
// single write. Returns (nil, nil) when the event does not exist.
func (r *EventRepository) Update(ctx context.Context, id string, input models.EventInput) (*models.Event, error) {
	var event models.Event
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewPersistenceError("load event", err)
	}

	applyInput(&event, input)
	if err := r.db.WithContext(ctx).Save(&event).Error; err != nil {
		return nil, models.NewPersistenceError("update event", err)
	}
	return r.FindByID(ctx, id)
}

// ReplaceCatalogs replaces the event's entire catalog assignment set
// with the given catalogs. An empty set clears all assignments. Last
// writer wins, there is no concurrency token on this path.
func (r *EventRepository) ReplaceCatalogs(ctx context.Context, id string, catalogs []models.Catalog) (*models.Event, error) {
	var event models.Event
	err := r.db.WithContext(ctx).
		Preload("Catalogs").
		Where("id = ?", id).
		First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewPersistenceError("load event", err)
	}

	if err := r.db.WithContext(ctx).Model(&event).Association("Catalogs").Replace(catalogs); err != nil {
		return nil, models.NewPersistenceError("replace catalogs", err)
	}
	return r.FindByID(ctx, id)
}

// applyInput overwrites the mutable fields of an event from input,
// with the same optional-field normalization as create
func applyInput(e *models.Event, in models.EventInput) {
	e.Code = in.Code
	e.SharedCode = normalizeOptional(in.SharedCode)
	e.ImageURL = normalizeOptional(in.ImageURL)
	e.Markdown = in.Markdown
	e.StartsAt = in.StartsAt.UTC()
	e.EndsAt = in.EndsAt.UTC()
	e.TimeZoneOffsetMinutes = in.TimeZoneOffsetMinutes
	e.TimeZoneLabel = in.TimeZoneLabel
	e.OrganizerName = in.OrganizerName
	e.OrganizerEmail = in.OrganizerEmail
	e.MaxTokenCap = in.MaxTokenCap
	e.DailyRequestCap = in.DailyRequestCap
	e.Active = in.Active
}

// normalizeOptional maps a blank optional text field to absent (NULL)
func normalizeOptional(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
