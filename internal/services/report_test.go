package services

import (
	"strings"
	"testing"
	"time"

	"github.com/reaktor-issues/backend/internal/models"
)

func TestDamageReport(t *testing.T) {
	reports := NewReportService()

	incident := &models.Incident{
		ID:              3,
		Location:        "Gimnasio",
		ReporterEmail:   "profesor@iesjandula.es",
		ReporterName:    "Lorena",
		ReporterSurname: "Garcia Soto",
		ReportedAt:      time.Date(2025, 10, 2, 8, 15, 0, 0, time.UTC),
		Description:     "Espaldera rota en la pared norte",
		State:           models.StatePending,
		CategoryName:    "Mantenimiento",
	}

	pdf, err := reports.DamageReport("2025/2026", incident)
	if err != nil {
		t.Fatalf("DamageReport failed: %v", err)
	}

	if len(pdf) == 0 {
		t.Fatal("Expected non-empty PDF output")
	}
	if !strings.HasPrefix(string(pdf[:4]), "%PDF") {
		t.Errorf("Output does not start with a PDF header: %q", pdf[:4])
	}
}

func TestDamageReportLongDescription(t *testing.T) {
	reports := NewReportService()

	incident := &models.Incident{
		Location:        "Biblioteca",
		ReporterName:    "Juan",
		ReporterSurname: "Pérez",
		ReportedAt:      time.Now(),
		Description:     strings.Repeat("Descripción muy detallada de la avería. ", 50),
	}

	pdf, err := reports.DamageReport("2025/2026", incident)
	if err != nil {
		t.Fatalf("DamageReport failed on long description: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatal("Expected non-empty PDF output")
	}
}
