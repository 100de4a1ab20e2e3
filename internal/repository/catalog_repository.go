package repository

import (
	"context"

	"github.com/promptgate/console/internal/models"
	"gorm.io/gorm"
)

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// ListActive returns the catalog entries available for assignment
func (r *CatalogRepository) ListActive(ctx context.Context) ([]models.Catalog, error) {
	var catalogs []models.Catalog
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("model_name ASC").
		Find(&catalogs).Error
	if err != nil {
		return nil, models.NewPersistenceError("list catalogs", err)
	}
	return catalogs, nil
}

// FindByIDs returns the catalogs matching ids; unknown ids are
// simply missing from the result
func (r *CatalogRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Catalog, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var catalogs []models.Catalog
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&catalogs).Error
	if err != nil {
		return nil, models.NewPersistenceError("find catalogs", err)
	}
	return catalogs, nil
}
