package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/reaktor-issues/backend/internal/apperrors"
	"github.com/reaktor-issues/backend/internal/logger"
	"github.com/reaktor-issues/backend/internal/models"
	"github.com/reaktor-issues/backend/internal/repository"
)

// AssignmentController manages the category → responsible directory.
type AssignmentController struct {
	assignments *repository.AssignmentRepository
	categories  *repository.CategoryRepository
}

func NewAssignmentController(
	assignments *repository.AssignmentRepository,
	categories *repository.CategoryRepository,
) *AssignmentController {
	return &AssignmentController{assignments: assignments, categories: categories}
}

type AssignmentRequest struct {
	CategoryName     string `json:"nombreCategoria"`
	ResponsibleName  string `json:"nombreResponsable"`
	ResponsibleEmail string `json:"correoResponsable"`
}

// List returns all assignments, or one category's when ?categoria= is given.
// Per-category order is significant: the first entry is the default
// responsible.
func (ac *AssignmentController) List(c *gin.Context) {
	category := strings.TrimSpace(c.Query("categoria"))

	var (
		assignments []models.ResponsibleAssignment
		err         error
	)
	if category != "" {
		assignments, err = ac.assignments.ListByCategory(c.Request.Context(), category)
	} else {
		assignments, err = ac.assignments.ListAll(c.Request.Context())
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, assignments)
}

func (ac *AssignmentController) Create(c *gin.Context) {
	var req AssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.New(apperrors.CodeIncidentCategoryRequired, apperrors.MsgIncidentCategoryRequired))
		return
	}

	if strings.TrimSpace(req.CategoryName) == "" {
		respondError(c, apperrors.New(apperrors.CodeIncidentCategoryRequired, apperrors.MsgIncidentCategoryRequired))
		return
	}
	if strings.TrimSpace(req.ResponsibleEmail) == "" {
		respondError(c, apperrors.New(apperrors.CodeIncidentResponsibleRequired, apperrors.MsgResponsibleEmailRequired))
		return
	}

	category, err := ac.categories.FindByName(c.Request.Context(), req.CategoryName)
	if err != nil {
		respondError(c, err)
		return
	}
	if category == nil {
		respondError(c, apperrors.New(apperrors.CodeCategoryNotFound,
			"La categoría '"+req.CategoryName+"' no existe"))
		return
	}

	existing, err := ac.assignments.FindTriple(c.Request.Context(),
		req.CategoryName, req.ResponsibleName, req.ResponsibleEmail)
	if err != nil {
		respondError(c, err)
		return
	}
	if existing != nil {
		respondError(c, apperrors.New(apperrors.CodeAssignmentAlreadyExists,
			"El responsable ya está asignado a la categoría."))
		return
	}

	priority, err := ac.assignments.NextPriority(c.Request.Context(), req.CategoryName)
	if err != nil {
		respondError(c, err)
		return
	}

	assignment := models.ResponsibleAssignment{
		CategoryName:     req.CategoryName,
		ResponsibleName:  req.ResponsibleName,
		ResponsibleEmail: req.ResponsibleEmail,
		Priority:         priority,
	}
	if err := ac.assignments.Create(c.Request.Context(), &assignment); err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Responsible assigned", map[string]interface{}{
		"component": "assignment_controller",
		"category":  assignment.CategoryName,
		"email":     assignment.ResponsibleEmail,
		"priority":  assignment.Priority,
	})
	c.JSON(http.StatusOK, assignment)
}

func (ac *AssignmentController) Delete(c *gin.Context) {
	var req AssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.New(apperrors.CodeAssignmentNotFound, apperrors.MsgNoResponsibleForCategory))
		return
	}

	assignment, err := ac.assignments.FindTriple(c.Request.Context(),
		req.CategoryName, req.ResponsibleName, req.ResponsibleEmail)
	if err != nil {
		respondError(c, err)
		return
	}
	if assignment == nil {
		respondError(c, apperrors.New(apperrors.CodeAssignmentNotFound, apperrors.MsgNoResponsibleForCategory))
		return
	}

	if err := ac.assignments.Delete(c.Request.Context(), assignment); err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Responsible unassigned", map[string]interface{}{
		"component": "assignment_controller",
		"category":  req.CategoryName,
		"email":     req.ResponsibleEmail,
	})
	c.Status(http.StatusNoContent)
}
