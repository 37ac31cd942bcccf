package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/reaktor-issues/backend/internal/apperrors"
	"github.com/reaktor-issues/backend/internal/logger"
	"github.com/reaktor-issues/backend/internal/models"
	"github.com/reaktor-issues/backend/internal/repository"
	"github.com/reaktor-issues/backend/internal/services"
)

// IncidentController owns the incident lifecycle: creation with reference
// resolution and responsible auto-assignment, admin mutations with their
// notification fan-out, role-scoped listing, and deletion.
type IncidentController struct {
	incidents   *repository.IncidentRepository
	locations   *repository.LocationRepository
	categories  *repository.CategoryRepository
	assignments *repository.AssignmentRepository
	notifier    *services.Notifier
	reports     *services.ReportService
}

func NewIncidentController(
	incidents *repository.IncidentRepository,
	locations *repository.LocationRepository,
	categories *repository.CategoryRepository,
	assignments *repository.AssignmentRepository,
	notifier *services.Notifier,
	reports *services.ReportService,
) *IncidentController {
	return &IncidentController{
		incidents:   incidents,
		locations:   locations,
		categories:  categories,
		assignments: assignments,
		notifier:    notifier,
		reports:     reports,
	}
}

type CreateIncidentRequest struct {
	Location     string `json:"ubicacion"`
	Description  string `json:"descripcionIncidencia"`
	CategoryName string `json:"nombreCategoria"`
}

type UpdateStateRequest struct {
	ID    uint   `json:"id"`
	State string `json:"estado"`
}

type UpdateSolutionRequest struct {
	ID       uint   `json:"id"`
	Solution string `json:"comentario"`
}

type UpdateResponsibleRequest struct {
	ID               uint   `json:"id"`
	CategoryName     string `json:"nombreCategoria"`
	ResponsibleEmail string `json:"correoResponsable"`
}

type UpdateCategoryRequest struct {
	ID           uint   `json:"id"`
	CategoryName string `json:"nombreCategoria"`
}

type DeleteIncidentRequest struct {
	ID uint `json:"id"`
}

// Create registers a new incident. Reporter identity comes from the auth
// context; location and category are resolved by name; the responsible party
// is auto-assigned from the category's default assignment. The creation
// notification is best-effort and never fails the request.
func (ic *IncidentController) Create(c *gin.Context) {
	user := currentUser(c)

	var req CreateIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.New(apperrors.CodeIncidentLocationRequired, apperrors.MsgIncidentLocationRequired))
		return
	}

	if strings.TrimSpace(req.Location) == "" {
		respondError(c, apperrors.New(apperrors.CodeIncidentLocationRequired, apperrors.MsgIncidentLocationRequired))
		return
	}
	if strings.TrimSpace(req.Description) == "" {
		respondError(c, apperrors.New(apperrors.CodeIncidentProblemRequired, apperrors.MsgIncidentProblemRequired))
		return
	}
	if strings.TrimSpace(req.CategoryName) == "" {
		respondError(c, apperrors.New(apperrors.CodeIncidentCategoryRequired, apperrors.MsgIncidentCategoryRequired))
		return
	}

	location, err := ic.locations.FindByNameFold(c.Request.Context(), req.Location)
	if err != nil {
		respondError(c, err)
		return
	}
	if location == nil {
		respondError(c, apperrors.New(apperrors.CodeIncidentLocationNotFound, apperrors.MsgIncidentLocationNotFound))
		return
	}

	category, err := ic.categories.FindByName(c.Request.Context(), req.CategoryName)
	if err != nil {
		respondError(c, err)
		return
	}
	if category == nil {
		respondError(c, apperrors.New(apperrors.CodeCategoryNotFound, "La categoría especificada no existe."))
		return
	}

	responsible, err := ic.assignments.DefaultForCategory(c.Request.Context(), category.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	if responsible == nil {
		respondError(c, apperrors.New(apperrors.CodeAssignmentNotFound, apperrors.MsgNoResponsibleForCategory))
		return
	}

	incident := models.Incident{
		Location:         location.Name,
		ReporterEmail:    user.Email,
		ReporterName:     user.Name,
		ReporterSurname:  user.Surname,
		ReportedAt:       time.Now(),
		Description:      req.Description,
		State:            models.StatePending,
		Solution:         nil,
		ResponsibleEmail: &responsible.ResponsibleEmail,
		CategoryName:     category.Name,
	}

	if err := ic.incidents.Create(c.Request.Context(), &incident); err != nil {
		respondError(c, err)
		return
	}

	logger.WithIncident(incident.ID).Info("Incident created")
	ic.notifier.Notify(services.EventCreated, &incident)

	c.JSON(http.StatusCreated, incident)
}

// UpdateState sets one of the five known states. There is no transition
// graph: only membership in the enumeration is validated.
func (ic *IncidentController) UpdateState(c *gin.Context) {
	var req UpdateStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.New(apperrors.CodeIncidentStateRequired, apperrors.MsgIncidentStateRequired))
		return
	}

	if req.ID == 0 {
		respondError(c, apperrors.New(apperrors.CodeIncidentIDRequired, apperrors.MsgIncidentIDRequired))
		return
	}
	if strings.TrimSpace(req.State) == "" {
		respondError(c, apperrors.New(apperrors.CodeIncidentStateRequired, apperrors.MsgIncidentStateRequired))
		return
	}
	if !models.ValidState(req.State) {
		respondError(c, apperrors.New(apperrors.CodeIncidentStateInvalid,
			"El estado '"+req.State+"' no es un estado válido."))
		return
	}

	incident, err := ic.findIncident(c, req.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	incident.State = models.IncidentState(req.State)
	if err := ic.incidents.Save(c.Request.Context(), incident); err != nil {
		respondError(c, err)
		return
	}

	logger.WithIncident(incident.ID).Info("Incident state updated")
	ic.notifier.Notify(services.EventStateChanged, incident)

	c.JSON(http.StatusOK, incident)
}

// UpdateSolution sets the resolution text.
func (ic *IncidentController) UpdateSolution(c *gin.Context) {
	var req UpdateSolutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.New(apperrors.CodeIncidentIDRequired, apperrors.MsgIncidentIDRequired))
		return
	}

	if req.ID == 0 {
		respondError(c, apperrors.New(apperrors.CodeIncidentIDRequired, apperrors.MsgIncidentIDRequired))
		return
	}

	incident, err := ic.findIncident(c, req.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	incident.Solution = &req.Solution
	if err := ic.incidents.Save(c.Request.Context(), incident); err != nil {
		respondError(c, err)
		return
	}

	logger.WithIncident(incident.ID).Info("Incident solution updated")
	ic.notifier.Notify(services.EventSolutionChanged, incident)

	c.JSON(http.StatusOK, incident)
}

// UpdateResponsible reassigns the responsible party. The (category, email)
// pair must be a registered assignment. This path sends no notification.
func (ic *IncidentController) UpdateResponsible(c *gin.Context) {
	var req UpdateResponsibleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.New(apperrors.CodeIncidentResponsibleRequired, apperrors.MsgResponsibleEmailRequired))
		return
	}

	if req.ID == 0 {
		respondError(c, apperrors.New(apperrors.CodeIncidentIDRequired, apperrors.MsgIncidentIDRequired))
		return
	}
	if strings.TrimSpace(req.ResponsibleEmail) == "" {
		respondError(c, apperrors.New(apperrors.CodeIncidentResponsibleRequired, apperrors.MsgResponsibleEmailRequired))
		return
	}

	assignment, err := ic.assignments.FindByCategoryAndEmail(c.Request.Context(), req.CategoryName, req.ResponsibleEmail)
	if err != nil {
		respondError(c, err)
		return
	}
	if assignment == nil {
		respondError(c, apperrors.New(apperrors.CodeAssignmentNotFound, apperrors.MsgNoResponsibleForCategory))
		return
	}

	incident, err := ic.findIncident(c, req.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	incident.ResponsibleEmail = &assignment.ResponsibleEmail
	if err := ic.incidents.Save(c.Request.Context(), incident); err != nil {
		respondError(c, err)
		return
	}

	logger.WithIncident(incident.ID).Info("Incident responsible updated")
	c.JSON(http.StatusOK, incident)
}

// UpdateCategory moves the incident to another category and re-resolves the
// default responsible party for it.
func (ic *IncidentController) UpdateCategory(c *gin.Context) {
	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.New(apperrors.CodeIncidentCategoryRequired, apperrors.MsgIncidentCategoryRequired))
		return
	}

	if req.ID == 0 {
		respondError(c, apperrors.New(apperrors.CodeIncidentIDRequired, apperrors.MsgIncidentIDRequired))
		return
	}
	if strings.TrimSpace(req.CategoryName) == "" {
		respondError(c, apperrors.New(apperrors.CodeIncidentCategoryRequired, apperrors.MsgIncidentCategoryRequired))
		return
	}

	category, err := ic.categories.FindByName(c.Request.Context(), req.CategoryName)
	if err != nil {
		respondError(c, err)
		return
	}
	if category == nil {
		respondError(c, apperrors.New(apperrors.CodeCategoryNotFound, "La categoría especificada no existe."))
		return
	}

	responsible, err := ic.assignments.DefaultForCategory(c.Request.Context(), category.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	if responsible == nil {
		respondError(c, apperrors.New(apperrors.CodeAssignmentNotFound, apperrors.MsgNoResponsibleForCategory))
		return
	}

	incident, err := ic.findIncident(c, req.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	incident.CategoryName = category.Name
	incident.ResponsibleEmail = &responsible.ResponsibleEmail
	if err := ic.incidents.Save(c.Request.Context(), incident); err != nil {
		respondError(c, err)
		return
	}

	logger.WithIncident(incident.ID).Info("Incident category updated")
	ic.notifier.Notify(services.EventCategoryChanged, incident)

	c.JSON(http.StatusOK, incident)
}

// List returns one page of incidents ordered by report time descending.
// Administrators see everything; teachers see only what they reported or
// are responsible for.
func (ic *IncidentController) List(c *gin.Context) {
	user := currentUser(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	var (
		incidents []models.Incident
		total     int64
		err       error
	)
	if user.isAdmin() {
		incidents, total, err = ic.incidents.ListPage(c.Request.Context(), page, size)
	} else {
		incidents, total, err = ic.incidents.ListPageForUser(c.Request.Context(), user.Email, page, size)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"incidencias": incidents,
		"pagination": gin.H{
			"page":  page,
			"size":  size,
			"total": total,
		},
	})
}

// Delete removes an incident. Allowed for administrators, the original
// reporter, and the currently assigned responsible party.
func (ic *IncidentController) Delete(c *gin.Context) {
	user := currentUser(c)

	var req DeleteIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.New(apperrors.CodeIncidentIDRequired, apperrors.MsgIncidentIDRequired))
		return
	}

	if req.ID == 0 {
		respondError(c, apperrors.New(apperrors.CodeIncidentIDRequired, apperrors.MsgIncidentIDRequired))
		return
	}

	incident, err := ic.findIncident(c, req.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	isResponsible := incident.ResponsibleEmail != nil && *incident.ResponsibleEmail == user.Email
	if !user.isAdmin() && incident.ReporterEmail != user.Email && !isResponsible {
		respondError(c, apperrors.New(apperrors.CodeIncidentForbidden, apperrors.MsgIncidentForbidden))
		return
	}

	if err := ic.incidents.Delete(c.Request.Context(), incident); err != nil {
		respondError(c, err)
		return
	}

	logger.WithIncident(incident.ID).Info("Incident deleted")
	c.Status(http.StatusNoContent)
}

// States returns the fixed list of valid incident states.
func (ic *IncidentController) States(c *gin.Context) {
	c.JSON(http.StatusOK, models.States())
}

// DamageReport renders the printable damage report PDF for one incident.
// Rendering failures are surfaced, unlike notification failures.
func (ic *IncidentController) DamageReport(c *gin.Context) {
	id, err := strconv.ParseUint(c.Query("id"), 10, 32)
	if err != nil || id == 0 {
		respondError(c, apperrors.New(apperrors.CodeIncidentIDRequired, apperrors.MsgIncidentIDRequired))
		return
	}
	academicYear := c.DefaultQuery("curso", "")

	incident, findErr := ic.findIncident(c, uint(id))
	if findErr != nil {
		respondError(c, findErr)
		return
	}

	pdf, renderErr := ic.reports.DamageReport(academicYear, incident)
	if renderErr != nil {
		respondError(c, renderErr)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="parte_desperfectos.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (ic *IncidentController) findIncident(c *gin.Context, id uint) (*models.Incident, error) {
	incident, err := ic.incidents.FindByID(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}
	if incident == nil {
		return nil, apperrors.New(apperrors.CodeIncidentNotFound, apperrors.MsgIncidentNotFound)
	}
	return incident, nil
}
