package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/promptgate/console/internal/models"
	"github.com/promptgate/console/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Event{},
		&models.EventOwner{},
		&models.Catalog{},
		&models.Attendee{},
		&models.MetricRecord{},
		&models.AuditRecord{},
		&models.User{},
	))
	return db
}

func TestSummarizeByResource(t *testing.T) {
	series := []models.UsageTimeSeriesPoint{
		{Date: "2026-05-01", Resource: "gpt-4o", Requests: 3, PromptTokens: 30, CompletionTokens: 15, TotalTokens: 45},
		{Date: "2026-05-01", Resource: "claude-sonnet", Requests: 5, PromptTokens: 50, CompletionTokens: 25, TotalTokens: 75},
		{Date: "2026-05-02", Resource: "gpt-4o", Requests: 4, PromptTokens: 40, CompletionTokens: 20, TotalTokens: 60},
	}

	summaries := summarizeByResource(series)
	require.Len(t, summaries, 2)

	// gpt-4o sums across both dates and outranks claude-sonnet
	require.Equal(t, "gpt-4o", summaries[0].Resource)
	require.Equal(t, int64(7), summaries[0].Requests)
	require.Equal(t, int64(70), summaries[0].PromptTokens)
	require.Equal(t, int64(35), summaries[0].CompletionTokens)
	require.Equal(t, int64(105), summaries[0].TotalTokens)

	require.Equal(t, "claude-sonnet", summaries[1].Resource)
	require.Equal(t, int64(5), summaries[1].Requests)
}

func TestSummarizeByResourceEmpty(t *testing.T) {
	summaries := summarizeByResource(nil)
	require.NotNil(t, summaries)
	require.Empty(t, summaries)
}

func TestEventMetricsNoData(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewMetricsService(repository.NewMetricsRepository(db))

	metrics, err := svc.EventMetrics(context.Background(), "evt-1")
	require.NoError(t, err)
	require.Equal(t, "evt-1", metrics.EventID)
	require.Equal(t, int64(0), metrics.AttendeeCount)
	require.Equal(t, int64(0), metrics.RequestCount)
	require.NotNil(t, metrics.ModelUsage)
	require.Empty(t, metrics.ModelUsage)
	require.NotNil(t, metrics.TimeSeries)
	require.Empty(t, metrics.TimeSeries)
}

func TestEventMetricsSummaryMatchesSeries(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewMetricsService(repository.NewMetricsRepository(db))

	tokens := func(v int64) *int64 { return &v }
	day1 := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 5, 2, 10, 0, 0, 0, time.UTC)
	for _, at := range []time.Time{day1, day1.Add(time.Hour), day2} {
		require.NoError(t, db.Create(&models.MetricRecord{
			EventID:          "evt-1",
			Resource:         "gpt-4o",
			RecordedAt:       at,
			PromptTokens:     tokens(10),
			CompletionTokens: tokens(5),
			TotalTokens:      tokens(15),
		}).Error)
	}

	metrics, err := svc.EventMetrics(context.Background(), "evt-1")
	require.NoError(t, err)
	require.Equal(t, int64(3), metrics.RequestCount)
	require.Len(t, metrics.TimeSeries, 2)
	require.Len(t, metrics.ModelUsage, 1)

	// Per-resource summary equals the sum over its series rows
	var requests, total int64
	for _, point := range metrics.TimeSeries {
		requests += point.Requests
		total += point.TotalTokens
	}
	require.Equal(t, requests, metrics.ModelUsage[0].Requests)
	require.Equal(t, total, metrics.ModelUsage[0].TotalTokens)
}
