package models

import (
	"time"
)

// Event represents a time-bounded activity with usage quotas and
// assigned model catalog entries, owned by an organizer.
type Event struct {
	// Assigned by the add_event database procedure, immutable afterwards
	ID string `gorm:"primaryKey;size:64" json:"id"`

	// Display name shown on the dashboard
	Code       string  `gorm:"size:128;not null" json:"code"`
	SharedCode *string `gorm:"size:128" json:"shared_code,omitempty"`
	ImageURL   *string `gorm:"size:512" json:"image_url,omitempty"`
	Markdown   string  `gorm:"type:text" json:"markdown"`

	// UTC instants
	StartsAt time.Time `gorm:"not null;index" json:"starts_at"`
	EndsAt   time.Time `gorm:"not null" json:"ends_at"`

	// Display-only snapshot of the timezone selected at write time.
	// The offset is NOT recomputed for DST.
	TimeZoneOffsetMinutes int    `json:"timezone_offset_minutes"`
	TimeZoneLabel         string `gorm:"size:64" json:"timezone_label"`

	OrganizerName  string `gorm:"size:128" json:"organizer_name"`
	OrganizerEmail string `gorm:"size:255" json:"organizer_email"`

	// Usage limits, unset means unlimited
	MaxTokenCap     *int64 `json:"max_token_cap,omitempty"`
	DailyRequestCap *int64 `json:"daily_request_cap,omitempty"`

	Active bool `gorm:"default:true;index" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Catalogs []Catalog `gorm:"many2many:event_catalogs" json:"catalogs,omitempty"`
}

func (Event) TableName() string {
	return "events"
}

// EventOwner maps an owner identity to an event (1:N owner to events)
type EventOwner struct {
	OwnerID   string    `gorm:"primaryKey;size:255" json:"owner_id"`
	EventID   string    `gorm:"primaryKey;size:64;index" json:"event_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (EventOwner) TableName() string {
	return "event_owners"
}

// Catalog is an assignable model entry available to events
type Catalog struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	ModelName   string    `gorm:"size:128;not null;uniqueIndex" json:"model_name"`
	DisplayName string    `gorm:"size:128" json:"display_name"`
	Provider    string    `gorm:"size:64" json:"provider"`
	Active      bool      `gorm:"default:true" json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Catalog) TableName() string {
	return "catalogs"
}

// Attendee is a user registered to an event. Written by the
// registration flow, read-only in this service.
type Attendee struct {
	EventID   string    `gorm:"primaryKey;size:64" json:"event_id"`
	UserID    string    `gorm:"primaryKey;size:255" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (Attendee) TableName() string {
	return "event_attendees"
}

// EventInput carries the caller-supplied fields for event create and
// update. Optional text fields are normalized before persistence:
// blank strings become NULL.
type EventInput struct {
	Code                  string    `json:"code" binding:"required"`
	SharedCode            string    `json:"shared_code"`
	ImageURL              string    `json:"image_url"`
	Markdown              string    `json:"markdown"`
	StartsAt              time.Time `json:"starts_at" binding:"required"`
	EndsAt                time.Time `json:"ends_at" binding:"required"`
	TimeZoneOffsetMinutes int       `json:"timezone_offset_minutes"`
	TimeZoneLabel         string    `json:"timezone_label"`
	OrganizerName         string    `json:"organizer_name"`
	OrganizerEmail        string    `json:"organizer_email"`
	MaxTokenCap           *int64    `json:"max_token_cap"`
	DailyRequestCap       *int64    `json:"daily_request_cap"`
	Active                bool      `json:"active"`
}
