package service

import (
	"context"
	"sort"

	"github.com/promptgate/console/internal/models"
	"github.com/promptgate/console/internal/monitoring"
	"github.com/promptgate/console/internal/repository"
)

// MetricsService computes the per-event dashboard read model from raw
// metering records
type MetricsService struct {
	metricsRepo *repository.MetricsRepository
}

func NewMetricsService(metricsRepo *repository.MetricsRepository) *MetricsService {
	return &MetricsService{metricsRepo: metricsRepo}
}

// EventMetrics builds the composite metrics for one event from two
// sequential queries: the attendee/request counts and the per-day
// per-resource time series. The per-resource summary is then derived
// in-process from the time-series rows, so one GROUP BY round trip
// serves both the chart and the leaderboard. Either query failing
// fails the whole fetch; there is no partial result.
func (s *MetricsService) EventMetrics(ctx context.Context, eventID string) (*models.EventMetrics, error) {
	counts, err := s.metricsRepo.CountAttendeesAndRequests(ctx, eventID)
	if err != nil {
		return nil, err
	}

	series, err := s.metricsRepo.UsageTimeSeries(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if series == nil {
		series = []models.UsageTimeSeriesPoint{}
	}

	monitoring.EventMetricsFetches.Inc()

	return &models.EventMetrics{
		EventID:       eventID,
		AttendeeCount: counts.AttendeeCount,
		RequestCount:  counts.RequestCount,
		ModelUsage:    summarizeByResource(series),
		TimeSeries:    series,
	}, nil
}

// summarizeByResource re-groups time-series rows by resource alone,
// summing across all dates, ordered by total request count descending
func summarizeByResource(series []models.UsageTimeSeriesPoint) []models.ModelUsageSummary {
	byResource := make(map[string]*models.ModelUsageSummary)
	order := make([]string, 0)

	for _, point := range series {
		summary, ok := byResource[point.Resource]
		if !ok {
			summary = &models.ModelUsageSummary{Resource: point.Resource}
			byResource[point.Resource] = summary
			order = append(order, point.Resource)
		}
		summary.Requests += point.Requests
		summary.PromptTokens += point.PromptTokens
		summary.CompletionTokens += point.CompletionTokens
		summary.TotalTokens += point.TotalTokens
	}

	summaries := make([]models.ModelUsageSummary, 0, len(order))
	for _, resource := range order {
		summaries = append(summaries, *byResource[resource])
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Requests > summaries[j].Requests
	})
	return summaries
}
