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

type LocationController struct {
	locations *repository.LocationRepository
	incidents *repository.IncidentRepository
}

func NewLocationController(locations *repository.LocationRepository, incidents *repository.IncidentRepository) *LocationController {
	return &LocationController{locations: locations, incidents: incidents}
}

type CreateLocationRequest struct {
	Name string `json:"nombre"`
}

// List returns every location ordered by name, for the report form dropdown.
func (lc *LocationController) List(c *gin.Context) {
	locations, err := lc.locations.ListOrdered(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, locations)
}

func (lc *LocationController) Create(c *gin.Context) {
	var req CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.New(apperrors.CodeLocationNameRequired, "El nombre de la ubicación es obligatorio."))
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		respondError(c, apperrors.New(apperrors.CodeLocationNameRequired, "El nombre de la ubicación es obligatorio."))
		return
	}

	existing, err := lc.locations.FindByNameFold(c.Request.Context(), name)
	if err != nil {
		respondError(c, err)
		return
	}
	if existing != nil {
		respondError(c, apperrors.New(apperrors.CodeLocationAlreadyExists, "Ya existe una ubicación con ese nombre."))
		return
	}

	location := models.Location{Name: name}
	if err := lc.locations.Create(c.Request.Context(), &location); err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Location created", map[string]interface{}{
		"component": "location_controller",
		"name":      location.Name,
	})
	c.JSON(http.StatusCreated, location)
}

func (lc *LocationController) Delete(c *gin.Context) {
	name := strings.TrimSpace(c.GetHeader("nombre"))
	if name == "" {
		respondError(c, apperrors.New(apperrors.CodeLocationNameRequired, "El nombre de la ubicación es obligatorio."))
		return
	}

	exists, err := lc.locations.ExistsByName(c.Request.Context(), name)
	if err != nil {
		respondError(c, err)
		return
	}
	if !exists {
		respondError(c, apperrors.New(apperrors.CodeLocationNotFound, apperrors.MsgIncidentLocationNotFound))
		return
	}

	referenced, err := lc.incidents.ExistsByLocation(c.Request.Context(), name)
	if err != nil {
		respondError(c, err)
		return
	}
	if referenced {
		respondError(c, apperrors.New(apperrors.CodeLocationNotDeletable,
			"No se puede borrar la ubicación '"+name+"' porque existen incidencias asociadas."))
		return
	}

	if err := lc.locations.DeleteByName(c.Request.Context(), name); err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Location deleted", map[string]interface{}{
		"component": "location_controller",
		"name":      name,
	})
	c.Status(http.StatusNoContent)
}
