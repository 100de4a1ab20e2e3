package repository

import (
	"context"

	"github.com/promptgate/console/internal/models"
	"gorm.io/gorm"
)

// eventCountsSQL resolves both counts in one round trip. The request
// count rides along as a scalar subquery instead of a join so the
// attendee aggregation cannot multiply rows; with zero attendees the
// outer aggregate still yields exactly one row.
const eventCountsSQL = `
SELECT COUNT(*) AS attendee_count,
       (SELECT COUNT(*) FROM metric_records WHERE event_id = ?) AS request_count
FROM event_attendees
WHERE event_id = ?`

// usageTimeSeriesSQL buckets raw metric rows by (day, resource).
// Token sums COALESCE to 0 so groups whose rows carry only NULL token
// values aggregate to zero instead of NULL.
const usageTimeSeriesSQL = `
SELECT CAST(DATE(recorded_at) AS TEXT) AS date,
       resource,
       COUNT(*) AS requests,
       COALESCE(SUM(prompt_tokens), 0) AS prompt_tokens,
       COALESCE(SUM(completion_tokens), 0) AS completion_tokens,
       COALESCE(SUM(total_tokens), 0) AS total_tokens
FROM metric_records
WHERE event_id = ?
GROUP BY DATE(recorded_at), resource
ORDER BY requests DESC`

// EventCounts carries the attendee/request counts for one event
type EventCounts struct {
	AttendeeCount int64
	RequestCount  int64
}

type MetricsRepository struct {
	db *gorm.DB
}

func NewMetricsRepository(db *gorm.DB) *MetricsRepository {
	return &MetricsRepository{db: db}
}

// CountAttendeesAndRequests returns the distinct attendee count and
// the independent metric-row count for an event in a single query
func (r *MetricsRepository) CountAttendeesAndRequests(ctx context.Context, eventID string) (EventCounts, error) {
	var counts EventCounts
	err := r.db.WithContext(ctx).Raw(eventCountsSQL, eventID, eventID).Scan(&counts).Error
	if err != nil {
		return EventCounts{}, models.NewPersistenceError("count attendees and requests", err)
	}
	return counts, nil
}

// UsageTimeSeries returns per (date, resource) aggregates for an
// event, ordered by request count descending
func (r *MetricsRepository) UsageTimeSeries(ctx context.Context, eventID string) ([]models.UsageTimeSeriesPoint, error) {
	var points []models.UsageTimeSeriesPoint
	err := r.db.WithContext(ctx).Raw(usageTimeSeriesSQL, eventID).Scan(&points).Error
	if err != nil {
		return nil, models.NewPersistenceError("aggregate usage time series", err)
	}
	return points, nil
}
