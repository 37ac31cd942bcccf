package repository

import (
	"context"
	"testing"

	"github.com/reaktor-issues/backend/internal/models"
)

func seedCategory(t *testing.T, repo *CategoryRepository, name string) {
	t.Helper()
	if err := repo.Create(context.Background(), &models.Category{Name: name}); err != nil {
		t.Fatalf("Failed to seed category %s: %v", name, err)
	}
}

func TestNextPriority(t *testing.T) {
	db := testDB(t)
	categories := NewCategoryRepository(db)
	assignments := NewAssignmentRepository(db)
	ctx := context.Background()

	seedCategory(t, categories, "Informática")

	priority, err := assignments.NextPriority(ctx, "Informática")
	if err != nil {
		t.Fatalf("NextPriority failed: %v", err)
	}
	if priority != 1 {
		t.Errorf("Expected first priority 1, got %d", priority)
	}

	err = assignments.Create(ctx, &models.ResponsibleAssignment{
		CategoryName:     "Informática",
		ResponsibleName:  "Ana",
		ResponsibleEmail: "ana@iesjandula.es",
		Priority:         priority,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	priority, err = assignments.NextPriority(ctx, "Informática")
	if err != nil {
		t.Fatalf("NextPriority failed: %v", err)
	}
	if priority != 2 {
		t.Errorf("Expected second priority 2, got %d", priority)
	}

	// Other categories start their own sequence
	seedCategory(t, categories, "Mantenimiento")
	priority, err = assignments.NextPriority(ctx, "Mantenimiento")
	if err != nil {
		t.Fatalf("NextPriority failed: %v", err)
	}
	if priority != 1 {
		t.Errorf("Expected fresh category priority 1, got %d", priority)
	}
}

func TestDefaultForCategoryIsLowestPriority(t *testing.T) {
	db := testDB(t)
	categories := NewCategoryRepository(db)
	assignments := NewAssignmentRepository(db)
	ctx := context.Background()

	seedCategory(t, categories, "Informática")

	// Inserted out of priority order on purpose
	entries := []models.ResponsibleAssignment{
		{CategoryName: "Informática", ResponsibleName: "Carlos", ResponsibleEmail: "carlos@iesjandula.es", Priority: 2},
		{CategoryName: "Informática", ResponsibleName: "Ana", ResponsibleEmail: "ana@iesjandula.es", Priority: 1},
		{CategoryName: "Informática", ResponsibleName: "Lucía", ResponsibleEmail: "lucia@iesjandula.es", Priority: 3},
	}
	for i := range entries {
		if err := assignments.Create(ctx, &entries[i]); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	def, err := assignments.DefaultForCategory(ctx, "Informática")
	if err != nil {
		t.Fatalf("DefaultForCategory failed: %v", err)
	}
	if def == nil {
		t.Fatal("Expected a default responsible, got nil")
	}
	if def.ResponsibleEmail != "ana@iesjandula.es" {
		t.Errorf("Expected lowest-priority responsible ana@iesjandula.es, got %s", def.ResponsibleEmail)
	}

	listed, err := assignments.ListByCategory(ctx, "Informática")
	if err != nil {
		t.Fatalf("ListByCategory failed: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("Expected 3 assignments, got %d", len(listed))
	}
	for i := 1; i < len(listed); i++ {
		if listed[i-1].Priority > listed[i].Priority {
			t.Errorf("Assignments not ordered by priority: %d before %d", listed[i-1].Priority, listed[i].Priority)
		}
	}
}

func TestDefaultForCategoryEmpty(t *testing.T) {
	db := testDB(t)
	assignments := NewAssignmentRepository(db)

	def, err := assignments.DefaultForCategory(context.Background(), "Inexistente")
	if err != nil {
		t.Fatalf("DefaultForCategory failed: %v", err)
	}
	if def != nil {
		t.Errorf("Expected nil default for empty category, got %+v", def)
	}
}

func TestDeleteWithAssignments(t *testing.T) {
	db := testDB(t)
	categories := NewCategoryRepository(db)
	assignments := NewAssignmentRepository(db)
	ctx := context.Background()

	seedCategory(t, categories, "Informática")
	seedCategory(t, categories, "Limpieza")

	seeds := []models.ResponsibleAssignment{
		{CategoryName: "Informática", ResponsibleName: "Ana", ResponsibleEmail: "ana@iesjandula.es", Priority: 1},
		{CategoryName: "Informática", ResponsibleName: "Carlos", ResponsibleEmail: "carlos@iesjandula.es", Priority: 2},
		{CategoryName: "Limpieza", ResponsibleName: "Marta", ResponsibleEmail: "marta@iesjandula.es", Priority: 1},
	}
	for i := range seeds {
		if err := assignments.Create(ctx, &seeds[i]); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	if err := categories.DeleteWithAssignments(ctx, "Informática"); err != nil {
		t.Fatalf("DeleteWithAssignments failed: %v", err)
	}

	gone, err := categories.FindByName(ctx, "Informática")
	if err != nil {
		t.Fatalf("FindByName failed: %v", err)
	}
	if gone != nil {
		t.Error("Category should be gone after cascade delete")
	}

	remaining, err := assignments.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(remaining) != 1 {
		t.Fatalf("Expected 1 remaining assignment, got %d", len(remaining))
	}
	if remaining[0].CategoryName != "Limpieza" {
		t.Errorf("Wrong assignment survived: %s", remaining[0].CategoryName)
	}
}

func TestFindByCategoryAndEmail(t *testing.T) {
	db := testDB(t)
	categories := NewCategoryRepository(db)
	assignments := NewAssignmentRepository(db)
	ctx := context.Background()

	seedCategory(t, categories, "Informática")
	err := assignments.Create(ctx, &models.ResponsibleAssignment{
		CategoryName:     "Informática",
		ResponsibleName:  "Ana",
		ResponsibleEmail: "ana@iesjandula.es",
		Priority:         1,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	found, err := assignments.FindByCategoryAndEmail(ctx, "Informática", "ana@iesjandula.es")
	if err != nil {
		t.Fatalf("FindByCategoryAndEmail failed: %v", err)
	}
	if found == nil {
		t.Fatal("Expected assignment, got nil")
	}

	missing, err := assignments.FindByCategoryAndEmail(ctx, "Informática", "nadie@iesjandula.es")
	if err != nil {
		t.Fatalf("FindByCategoryAndEmail failed: %v", err)
	}
	if missing != nil {
		t.Errorf("Expected nil for unknown email, got %+v", missing)
	}
}
