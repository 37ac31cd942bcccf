package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/reaktor-issues/backend/internal/models"
)

// IncidentRepository provides persistence access for Incident entities. It
// exclusively owns incident rows; reference data (locations, categories,
// assignments) is only read here, never mutated.
type IncidentRepository struct {
	db *gorm.DB
}

func NewIncidentRepository(db *gorm.DB) *IncidentRepository {
	return &IncidentRepository{db: db}
}

// Create persists a new incident.
func (r *IncidentRepository) Create(ctx context.Context, incident *models.Incident) error {
	return errors.WithStack(r.db.WithContext(ctx).Create(incident).Error)
}

// Save persists a modified incident.
func (r *IncidentRepository) Save(ctx context.Context, incident *models.Incident) error {
	return errors.WithStack(r.db.WithContext(ctx).Save(incident).Error)
}

// FindByID returns the incident by surrogate id, or nil when absent.
func (r *IncidentRepository) FindByID(ctx context.Context, id uint) (*models.Incident, error) {
	var incident models.Incident
	err := r.db.WithContext(ctx).First(&incident, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &incident, nil
}

// Delete removes the incident row.
func (r *IncidentRepository) Delete(ctx context.Context, incident *models.Incident) error {
	return errors.WithStack(r.db.WithContext(ctx).Delete(incident).Error)
}

// ListPage returns one page of all incidents ordered by report time
// descending, with the total row count for pagination.
func (r *IncidentRepository) ListPage(ctx context.Context, page, size int) ([]models.Incident, int64, error) {
	return r.listPage(ctx, r.db.WithContext(ctx).Model(&models.Incident{}), page, size)
}

// ListPageForUser returns one page of the incidents visible to a
// non-administrator: those they reported or are responsible for.
func (r *IncidentRepository) ListPageForUser(ctx context.Context, email string, page, size int) ([]models.Incident, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Incident{}).
		Where("reporter_email = ? OR responsible_email = ?", email, email)
	return r.listPage(ctx, query, page, size)
}

func (r *IncidentRepository) listPage(ctx context.Context, query *gorm.DB, page, size int) ([]models.Incident, int64, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.WithStack(err)
	}

	var incidents []models.Incident
	err := query.
		Order("reported_at desc").
		Offset((page - 1) * size).
		Limit(size).
		Find(&incidents).Error
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}
	return incidents, total, nil
}

// ExistsByCategory reports whether any incident references the category.
func (r *IncidentRepository) ExistsByCategory(ctx context.Context, categoryName string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Incident{}).
		Where("category_name = ?", categoryName).
		Count(&count).Error
	return count > 0, errors.WithStack(err)
}

// ExistsByLocation reports whether any incident references the location name.
func (r *IncidentRepository) ExistsByLocation(ctx context.Context, locationName string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Incident{}).
		Where("location = ?", locationName).
		Count(&count).Error
	return count > 0, errors.WithStack(err)
}
