package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/reaktor-issues/backend/internal/models"
)

func (e *testEnv) countRows(t *testing.T, model interface{}) int64 {
	t.Helper()
	var count int64
	if err := e.db.Model(model).Count(&count).Error; err != nil {
		t.Fatalf("Failed to count rows: %v", err)
	}
	return count
}

func TestDeleteCategoryWithIncidentsConflict(t *testing.T) {
	env := newTestEnv(t, "admin@iesjandula.es", "ADMINISTRADOR")
	env.seedReferenceData(t)

	incident := models.Incident{
		Location:      "Aula 101",
		ReporterEmail: "profesor@iesjandula.es",
		ReportedAt:    time.Now(),
		Description:   "El proyector no enciende",
		State:         models.StatePending,
		CategoryName:  "Informática",
	}
	if err := env.db.Create(&incident).Error; err != nil {
		t.Fatalf("Failed to seed incident: %v", err)
	}

	w := env.requestWithHeaders(t, http.MethodDelete, "/issues/categorias",
		map[string]string{"nombre": "Informática"})

	if w.Code != http.StatusConflict {
		t.Fatalf("Expected 409, got %d: %s", w.Code, w.Body.String())
	}
	if got := errorCode(t, w); got != 202 {
		t.Errorf("Expected error code 202, got %d", got)
	}

	// The category and its assignments must survive the rejected delete
	if count := env.countRows(t, &models.Category{}); count != 1 {
		t.Errorf("Category must remain after conflict, found %d rows", count)
	}
	if count := env.countRows(t, &models.ResponsibleAssignment{}); count != 1 {
		t.Errorf("Assignments must remain after conflict, found %d rows", count)
	}
}

func TestDeleteCategoryCascadesAssignments(t *testing.T) {
	env := newTestEnv(t, "admin@iesjandula.es", "ADMINISTRADOR")
	env.seedReferenceData(t)

	// A second category whose assignment must survive the delete
	if err := env.db.Create(&models.Category{Name: "Limpieza"}).Error; err != nil {
		t.Fatalf("Failed to seed category: %v", err)
	}
	other := models.ResponsibleAssignment{
		CategoryName:     "Limpieza",
		ResponsibleName:  "Marta",
		ResponsibleEmail: "marta@iesjandula.es",
		Priority:         1,
	}
	if err := env.db.Create(&other).Error; err != nil {
		t.Fatalf("Failed to seed assignment: %v", err)
	}

	w := env.requestWithHeaders(t, http.MethodDelete, "/issues/categorias",
		map[string]string{"nombre": "Informática"})

	if w.Code != http.StatusNoContent {
		t.Fatalf("Expected 204, got %d: %s", w.Code, w.Body.String())
	}

	var categories []models.Category
	if err := env.db.Find(&categories).Error; err != nil {
		t.Fatalf("Failed to load categories: %v", err)
	}
	if len(categories) != 1 || categories[0].Name != "Limpieza" {
		t.Errorf("Expected only Limpieza to remain, got %+v", categories)
	}

	var assignments []models.ResponsibleAssignment
	if err := env.db.Find(&assignments).Error; err != nil {
		t.Fatalf("Failed to load assignments: %v", err)
	}
	if len(assignments) != 1 || assignments[0].CategoryName != "Limpieza" {
		t.Errorf("Delete should cascade only Informática assignments, got %+v", assignments)
	}
}

func TestDeleteCategoryAbsent(t *testing.T) {
	env := newTestEnv(t, "admin@iesjandula.es", "ADMINISTRADOR")

	w := env.requestWithHeaders(t, http.MethodDelete, "/issues/categorias",
		map[string]string{"nombre": "Jardinería"})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if got := errorCode(t, w); got != 201 {
		t.Errorf("Expected error code 201, got %d", got)
	}
}

func TestCreateCategoryDuplicate(t *testing.T) {
	env := newTestEnv(t, "admin@iesjandula.es", "ADMINISTRADOR")
	env.seedReferenceData(t)

	w := env.request(t, http.MethodPost, "/issues/categorias", gin.H{
		"nombre":          "Informática",
		"imprimirInforme": true,
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if got := errorCode(t, w); got != 203 {
		t.Errorf("Expected error code 203, got %d", got)
	}
}
