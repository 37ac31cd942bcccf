package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/reaktor-issues/backend/internal/controllers"
	"github.com/reaktor-issues/backend/internal/middleware"
	"github.com/reaktor-issues/backend/internal/models"
	"github.com/reaktor-issues/backend/internal/repository"
	"github.com/reaktor-issues/backend/internal/services"
)

// SetupRoutes configures all application routes
func SetupRoutes(r *gin.Engine, db *gorm.DB, notifier *services.Notifier) {
	// Initialize repositories
	users := repository.NewUserRepository(db)
	locations := repository.NewLocationRepository(db)
	categories := repository.NewCategoryRepository(db)
	assignments := repository.NewAssignmentRepository(db)
	incidents := repository.NewIncidentRepository(db)

	reports := services.NewReportService()

	// Initialize controllers
	authController := controllers.NewAuthController(users)
	locationController := controllers.NewLocationController(locations, incidents)
	categoryController := controllers.NewCategoryController(categories, incidents)
	assignmentController := controllers.NewAssignmentController(assignments, categories)
	incidentController := controllers.NewIncidentController(incidents, locations, categories, assignments, notifier, reports)

	// Auth routes
	auth := r.Group("/api/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/register",
			middleware.AuthMiddleware(),
			middleware.RequireRole(models.RoleAdmin),
			authController.Register)
	}

	// The state list feeds login-free UI dropdowns
	r.GET("/issues/incidencias/estados", incidentController.States)

	issues := r.Group("/issues")
	issues.Use(middleware.AuthMiddleware())
	{
		incidencias := issues.Group("/incidencias")
		{
			incidencias.POST("", middleware.RequireRole(models.RoleTeacher), incidentController.Create)
			incidencias.GET("", middleware.RequireRole(models.RoleTeacher), incidentController.List)
			incidencias.DELETE("", middleware.RequireRole(models.RoleTeacher), incidentController.Delete)

			incidencias.PUT("/estado", middleware.RequireRole(models.RoleAdmin), incidentController.UpdateState)
			incidencias.PUT("/solucion", middleware.RequireRole(models.RoleAdmin), incidentController.UpdateSolution)
			incidencias.PUT("/responsable", middleware.RequireRole(models.RoleAdmin), incidentController.UpdateResponsible)
			incidencias.PUT("/categoria", middleware.RequireRole(models.RoleAdmin), incidentController.UpdateCategory)
			incidencias.GET("/parte_desperfectos", middleware.RequireRole(models.RoleAdmin), incidentController.DamageReport)
		}

		ubicaciones := issues.Group("/ubicaciones")
		{
			ubicaciones.GET("", middleware.RequireRole(models.RoleTeacher), locationController.List)
			ubicaciones.POST("", middleware.RequireRole(models.RoleAdmin), locationController.Create)
			ubicaciones.DELETE("", middleware.RequireRole(models.RoleAdmin), locationController.Delete)
		}

		categorias := issues.Group("/categorias")
		categorias.Use(middleware.RequireRole(models.RoleAdmin))
		{
			categorias.GET("", categoryController.List)
			categorias.POST("", categoryController.Create)
			categorias.DELETE("", categoryController.Delete)
		}

		usuariosCategoria := issues.Group("/usuarios_categoria")
		usuariosCategoria.Use(middleware.RequireRole(models.RoleAdmin))
		{
			usuariosCategoria.GET("", assignmentController.List)
			usuariosCategoria.POST("", assignmentController.Create)
			usuariosCategoria.DELETE("", assignmentController.Delete)
		}
	}
}
