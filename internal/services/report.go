package services

import (
	"bytes"

	"github.com/jung-kurt/gofpdf"

	"github.com/reaktor-issues/backend/internal/apperrors"
	"github.com/reaktor-issues/backend/internal/models"
)

// ReportService renders the printable damage report for an incident. Unlike
// notifications, rendering failures are surfaced to the caller as typed
// errors.
type ReportService struct{}

func NewReportService() *ReportService {
	return &ReportService{}
}

// DamageReport renders the "parte de desperfectos" PDF for one incident.
func (rs *ReportService) DamageReport(academicYear string, incident *models.Incident) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr("PARTE DE COMUNICACIÓN DE DESPERFECTOS"), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 8, tr("Curso académico: "+academicYear), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	rows := []struct {
		label string
		value string
	}{
		{"Fecha de detección", incident.ReportedAt.Format("02/01/2006")},
		{"Instalación", incident.Location},
		{"Detectada por", incident.ReporterName + " " + incident.ReporterSurname},
		{"Descripción de la avería", incident.Description},
	}

	for _, row := range rows {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(55, 10, tr(row.label), "1", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(135, 10, tr(row.value), "1", "L", false)
	}

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 6, tr("Documento generado automáticamente por el servidor de incidencias."), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeReportNotGenerated,
			"Error al generar el PDF del parte de desperfectos", err)
	}
	return buf.Bytes(), nil
}
