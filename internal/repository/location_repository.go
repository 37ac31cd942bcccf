package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/reaktor-issues/backend/internal/models"
)

// LocationRepository provides persistence access for Location entities.
type LocationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

// Create persists the location.
func (r *LocationRepository) Create(ctx context.Context, location *models.Location) error {
	return errors.WithStack(r.db.WithContext(ctx).Create(location).Error)
}

// FindByNameFold returns the location whose name matches case-insensitively,
// or nil when there is none.
func (r *LocationRepository) FindByNameFold(ctx context.Context, name string) (*models.Location, error) {
	var location models.Location
	err := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&location).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &location, nil
}

// ListOrdered returns all locations ordered by name ascending.
func (r *LocationRepository) ListOrdered(ctx context.Context) ([]models.Location, error) {
	var locations []models.Location
	err := r.db.WithContext(ctx).Order("name asc").Find(&locations).Error
	return locations, errors.WithStack(err)
}

// DeleteByName removes the location with the exact name.
func (r *LocationRepository) DeleteByName(ctx context.Context, name string) error {
	return errors.WithStack(r.db.WithContext(ctx).Where("name = ?", name).Delete(&models.Location{}).Error)
}

// ExistsByName reports whether a location with the exact name exists.
func (r *LocationRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Location{}).Where("name = ?", name).Count(&count).Error
	return count > 0, errors.WithStack(err)
}
