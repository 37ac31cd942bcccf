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

type CategoryController struct {
	categories *repository.CategoryRepository
	incidents  *repository.IncidentRepository
}

func NewCategoryController(
	categories *repository.CategoryRepository,
	incidents *repository.IncidentRepository,
) *CategoryController {
	return &CategoryController{categories: categories, incidents: incidents}
}

type CreateCategoryRequest struct {
	Name        string `json:"nombre"`
	PrintReport bool   `json:"imprimirInforme"`
}

// List returns (nombre, imprimirInforme) for every category, name ascending.
func (cc *CategoryController) List(c *gin.Context) {
	categories, err := cc.categories.ListOrdered(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (cc *CategoryController) Create(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.New(apperrors.CodeIncidentCategoryRequired, apperrors.MsgIncidentCategoryRequired))
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		respondError(c, apperrors.New(apperrors.CodeIncidentCategoryRequired, apperrors.MsgIncidentCategoryRequired))
		return
	}

	existing, err := cc.categories.FindByName(c.Request.Context(), name)
	if err != nil {
		respondError(c, err)
		return
	}
	if existing != nil {
		respondError(c, apperrors.New(apperrors.CodeCategoryAlreadyExists, "Ya existe una categoría con ese nombre."))
		return
	}

	category := models.Category{Name: name, PrintReport: req.PrintReport}
	if err := cc.categories.Create(c.Request.Context(), &category); err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Category created", map[string]interface{}{
		"component": "category_controller",
		"name":      category.Name,
	})
	c.JSON(http.StatusCreated, category)
}

// Delete removes a category only when no incident references it. Its
// responsible assignments cascade.
func (cc *CategoryController) Delete(c *gin.Context) {
	name := strings.TrimSpace(c.GetHeader("nombre"))
	if name == "" {
		respondError(c, apperrors.New(apperrors.CodeIncidentCategoryRequired, apperrors.MsgIncidentCategoryRequired))
		return
	}

	exists, err := cc.categories.ExistsByName(c.Request.Context(), name)
	if err != nil {
		respondError(c, err)
		return
	}
	if !exists {
		respondError(c, apperrors.New(apperrors.CodeCategoryNotFound,
			"No se encontró la categoría '"+name+"' para borrar"))
		return
	}

	hasIncidents, err := cc.incidents.ExistsByCategory(c.Request.Context(), name)
	if err != nil {
		respondError(c, err)
		return
	}
	if hasIncidents {
		respondError(c, apperrors.New(apperrors.CodeCategoryNotDeletable,
			"No se puede borrar la categoría '"+name+"' porque existen incidencias asociadas."))
		return
	}

	if err := cc.categories.DeleteWithAssignments(c.Request.Context(), name); err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Category deleted", map[string]interface{}{
		"component": "category_controller",
		"name":      name,
	})
	c.Status(http.StatusNoContent)
}
