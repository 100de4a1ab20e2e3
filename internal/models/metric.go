package models

import (
	"time"
)

// MetricRecord is one logged proxied API request with token usage,
// attributed to an event. Append-only, owned by the metering
// subsystem; this service never writes it.
type MetricRecord struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	EventID    string     `gorm:"size:64;not null;index" json:"event_id"`
	RecordedAt time.Time  `gorm:"not null;index" json:"recorded_at"`
	Resource   string     `gorm:"size:128;not null" json:"resource"`

	// Token columns are nullable at the source: a record can carry
	// partial usage data. Aggregation treats NULL as 0.
	PromptTokens     *int64 `json:"prompt_tokens,omitempty"`
	CompletionTokens *int64 `json:"completion_tokens,omitempty"`
	TotalTokens      *int64 `json:"total_tokens,omitempty"`

	APIKeyHash string `gorm:"size:128" json:"-"`
}

func (MetricRecord) TableName() string {
	return "metric_records"
}

// UsageTimeSeriesPoint is a per (date, resource) aggregate of metric
// records, bucketed by day for charting. Not persisted.
type UsageTimeSeriesPoint struct {
	Date             string `json:"date"`
	Resource         string `json:"resource"`
	Requests         int64  `json:"requests"`
	PromptTokens     int64  `json:"prompt_tokens"`
	CompletionTokens int64  `json:"completion_tokens"`
	TotalTokens      int64  `json:"total_tokens"`
}

// ModelUsageSummary is a per-resource aggregate across all dates.
// Derived in-process from the time series, not persisted.
type ModelUsageSummary struct {
	Resource         string `json:"resource"`
	Requests         int64  `json:"requests"`
	PromptTokens     int64  `json:"prompt_tokens"`
	CompletionTokens int64  `json:"completion_tokens"`
	TotalTokens      int64  `json:"total_tokens"`
}

// EventMetrics is the composite dashboard read model for one event.
// Constructed fresh per query, never cached.
type EventMetrics struct {
	EventID       string                 `json:"event_id"`
	AttendeeCount int64                  `json:"attendee_count"`
	RequestCount  int64                  `json:"request_count"`
	ModelUsage    []ModelUsageSummary    `json:"model_usage"`
	TimeSeries    []UsageTimeSeriesPoint `json:"time_series"`
}
