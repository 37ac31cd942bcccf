package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/reaktor-issues/backend/internal/models"
)

// CategoryRepository provides persistence access for Category entities.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create inserts the category. Creation is a strict insert: an existing name
// must be rejected by the caller, not silently overwritten.
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	return errors.WithStack(r.db.WithContext(ctx).Create(category).Error)
}

// FindByName returns the category by primary key, or nil when absent.
func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).First(&category, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &category, nil
}

// ListOrdered returns all categories ordered by name ascending.
func (r *CategoryRepository) ListOrdered(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).Order("name asc").Find(&categories).Error
	return categories, errors.WithStack(err)
}

// DeleteWithAssignments removes the category and its responsible assignments
// atomically: either both survive or neither does.
func (r *CategoryRepository) DeleteWithAssignments(ctx context.Context, name string) error {
	return errors.WithStack(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_name = ?", name).Delete(&models.ResponsibleAssignment{}).Error; err != nil {
			return err
		}
		return tx.Where("name = ?", name).Delete(&models.Category{}).Error
	}))
}

// ExistsByName reports whether the category exists.
func (r *CategoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Category{}).Where("name = ?", name).Count(&count).Error
	return count > 0, errors.WithStack(err)
}
