package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/promptgate/console/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
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
		&models.User{},
		&models.AuditRecord{},
	))
	return db
}

// seedEvent inserts an event row directly, bypassing the creation
// procedure, and maps it to an owner. The active column is selected
// by name so a false value is not swallowed by the column default.
func seedEvent(t *testing.T, db *gorm.DB, id, ownerID string, active bool, startsAt time.Time) {
	t.Helper()
	event := models.Event{
		ID:       id,
		Code:     "code-" + id,
		StartsAt: startsAt,
		EndsAt:   startsAt.Add(2 * time.Hour),
		Active:   active,
	}
	require.NoError(t, db.Select("ID", "Code", "StartsAt", "EndsAt", "Active").Create(&event).Error)
	if !active {
		// GORM substitutes the column default for a zero-valued bool even
		// when the field is selected, so force the false value explicitly.
		require.NoError(t, db.Model(&models.Event{}).Where("id = ?", id).Update("active", false).Error)
	}
	require.NoError(t, db.Create(&models.EventOwner{OwnerID: ownerID, EventID: id}).Error)
}

func seedCatalog(t *testing.T, db *gorm.DB, id, modelName string) {
	t.Helper()
	require.NoError(t, db.Create(&models.Catalog{
		ID:        id,
		ModelName: modelName,
		Active:    true,
	}).Error)
}

func baseInput(code string) models.EventInput {
	return models.EventInput{
		Code:     code,
		StartsAt: time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC),
		EndsAt:   time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC),
		Active:   true,
	}
}

func TestFindByIDAbsent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEventRepository(db)

	event, err := repo.FindByID(context.Background(), "does-not-exist")
	require.NoError(t, err)
	require.Nil(t, event)
}

func TestUpdateAbsent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEventRepository(db)

	event, err := repo.Update(context.Background(), "does-not-exist", baseInput("x"))
	require.NoError(t, err)
	require.Nil(t, event)
}

func TestUpdateNormalizesOptionalFields(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEventRepository(db)
	seedEvent(t, db, "evt-1", "org-1", true, time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC))

	input := baseInput("updated")
	input.SharedCode = "   "
	input.ImageURL = "  https://cdn.example.com/banner.png  "

	event, err := repo.Update(context.Background(), "evt-1", input)
	require.NoError(t, err)
	require.NotNil(t, event)
	require.Equal(t, "updated", event.Code)
	require.Nil(t, event.SharedCode, "blank shared code must persist as absent")
	require.NotNil(t, event.ImageURL)
	require.Equal(t, "https://cdn.example.com/banner.png", *event.ImageURL)
}

func TestUpdateClearsOptionalFields(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEventRepository(db)
	seedEvent(t, db, "evt-1", "org-1", true, time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC))

	withValues := baseInput("first")
	withValues.SharedCode = "JOIN-123"
	withValues.ImageURL = "https://cdn.example.com/a.png"
	_, err := repo.Update(context.Background(), "evt-1", withValues)
	require.NoError(t, err)

	cleared := baseInput("second")
	event, err := repo.Update(context.Background(), "evt-1", cleared)
	require.NoError(t, err)
	require.NotNil(t, event)
	require.Nil(t, event.SharedCode)
	require.Nil(t, event.ImageURL)
}

func TestListByOwnerOrdering(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEventRepository(db)

	seedEvent(t, db, "inactive-early", "org-1", false, time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC))
	seedEvent(t, db, "active-late", "org-1", true, time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC))
	seedEvent(t, db, "active-early", "org-1", true, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	seedEvent(t, db, "other-owner", "org-2", true, time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC))

	events, err := repo.ListByOwner(context.Background(), "org-1")
	require.NoError(t, err)
	require.Len(t, events, 3)
	require.Equal(t, "active-early", events[0].ID)
	require.Equal(t, "active-late", events[1].ID)
	require.Equal(t, "inactive-early", events[2].ID)
	require.True(t, events[0].Active)
	require.False(t, events[2].Active, "inactive row must persist active=false")
}

func TestListByOwnerEmpty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEventRepository(db)

	events, err := repo.ListByOwner(context.Background(), "nobody")
	require.NoError(t, err)
	require.Empty(t, events)
}

func TestReplaceCatalogs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEventRepository(db)
	catalogRepo := NewCatalogRepository(db)
	seedEvent(t, db, "evt-1", "org-1", true, time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC))
	seedCatalog(t, db, "cat-1", "gpt-4o")
	seedCatalog(t, db, "cat-2", "claude-sonnet")
	seedCatalog(t, db, "cat-3", "gemini-pro")

	catalogs, err := catalogRepo.FindByIDs(context.Background(), []string{"cat-1", "cat-2"})
	require.NoError(t, err)

	event, err := repo.ReplaceCatalogs(context.Background(), "evt-1", catalogs)
	require.NoError(t, err)
	require.NotNil(t, event)
	require.Len(t, event.Catalogs, 2)

	// Unknown ids never reach the association: the lookup drops them
	catalogs, err = catalogRepo.FindByIDs(context.Background(), []string{"cat-3", "ghost"})
	require.NoError(t, err)
	require.Len(t, catalogs, 1)

	event, err = repo.ReplaceCatalogs(context.Background(), "evt-1", catalogs)
	require.NoError(t, err)
	require.Len(t, event.Catalogs, 1)
	require.Equal(t, "cat-3", event.Catalogs[0].ID)

	// Empty set clears every assignment
	event, err = repo.ReplaceCatalogs(context.Background(), "evt-1", nil)
	require.NoError(t, err)
	require.Empty(t, event.Catalogs)
}

func TestReplaceCatalogsAbsentEvent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEventRepository(db)

	event, err := repo.ReplaceCatalogs(context.Background(), "does-not-exist", []models.Catalog{{ID: "cat-1"}})
	require.NoError(t, err)
	require.Nil(t, event)
}

func TestFindByIDsEmpty(t *testing.T) {
	db := setupTestDB(t)
	catalogRepo := NewCatalogRepository(db)

	catalogs, err := catalogRepo.FindByIDs(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, catalogs)
}

func TestNormalizeOptional(t *testing.T) {
	require.Nil(t, normalizeOptional(""))
	require.Nil(t, normalizeOptional("   "))
	require.Nil(t, normalizeOptional("\t\n"))

	got := normalizeOptional("  value  ")
	require.NotNil(t, got)
	require.Equal(t, "value", *got)
}
