package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/reaktor-issues/backend/internal/models"
)

// AssignmentRepository provides persistence access for category-responsible
// assignments. List order is significant: the first assignment returned for
// a category is its default responsible party.
type AssignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// Create persists the assignment.
func (r *AssignmentRepository) Create(ctx context.Context, assignment *models.ResponsibleAssignment) error {
	return errors.WithStack(r.db.WithContext(ctx).Create(assignment).Error)
}

// NextPriority returns the next free priority slot for a category, starting
// at 1 for the first assignment.
func (r *AssignmentRepository) NextPriority(ctx context.Context, categoryName string) (int, error) {
	var max int
	err := r.db.WithContext(ctx).
		Model(&models.ResponsibleAssignment{}).
		Where("category_name = ?", categoryName).
		Select("COALESCE(MAX(priority), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, errors.WithStack(err)
	}
	return max + 1, nil
}

// ListAll returns every assignment.
func (r *AssignmentRepository) ListAll(ctx context.Context) ([]models.ResponsibleAssignment, error) {
	var assignments []models.ResponsibleAssignment
	err := r.db.WithContext(ctx).Order("category_name asc, priority asc, id asc").Find(&assignments).Error
	return assignments, errors.WithStack(err)
}

// ListByCategory returns the assignments for one category ordered by
// priority. Callers must treat order as significant.
func (r *AssignmentRepository) ListByCategory(ctx context.Context, categoryName string) ([]models.ResponsibleAssignment, error) {
	var assignments []models.ResponsibleAssignment
	err := r.db.WithContext(ctx).
		Where("category_name = ?", categoryName).
		Order("priority asc, id asc").
		Find(&assignments).Error
	return assignments, errors.WithStack(err)
}

// DefaultForCategory returns the default responsible assignment for a
// category, or nil when the category has no assignments.
func (r *AssignmentRepository) DefaultForCategory(ctx context.Context, categoryName string) (*models.ResponsibleAssignment, error) {
	assignments, err := r.ListByCategory(ctx, categoryName)
	if err != nil {
		return nil, err
	}
	if len(assignments) == 0 {
		return nil, nil
	}
	return &assignments[0], nil
}

// FindTriple returns the assignment matching the full composite identity, or
// nil when absent.
func (r *AssignmentRepository) FindTriple(ctx context.Context, categoryName, responsibleName, responsibleEmail string) (*models.ResponsibleAssignment, error) {
	var assignment models.ResponsibleAssignment
	err := r.db.WithContext(ctx).
		Where("category_name = ? AND responsible_name = ? AND responsible_email = ?",
			categoryName, responsibleName, responsibleEmail).
		First(&assignment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &assignment, nil
}

// FindByCategoryAndEmail returns the assignment for (category, email), or
// nil when absent. Used to validate responsible reassignment.
func (r *AssignmentRepository) FindByCategoryAndEmail(ctx context.Context, categoryName, responsibleEmail string) (*models.ResponsibleAssignment, error) {
	var assignment models.ResponsibleAssignment
	err := r.db.WithContext(ctx).
		Where("category_name = ? AND responsible_email = ?", categoryName, responsibleEmail).
		Order("priority asc, id asc").
		First(&assignment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &assignment, nil
}

// Delete removes one assignment.
func (r *AssignmentRepository) Delete(ctx context.Context, assignment *models.ResponsibleAssignment) error {
	return errors.WithStack(r.db.WithContext(ctx).Delete(assignment).Error)
}
