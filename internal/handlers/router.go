package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skolaplan/admin-service/internal/config"
	"github.com/skolaplan/admin-service/internal/models"
	"github.com/skolaplan/admin-service/internal/services"
	"github.com/skolaplan/admin-service/internal/utils"
)

type HandlerManager struct {
	teacherHandler    *TeacherHandler
	workPeriodHandler *WorkPeriodHandler
	importHandler     *ImportHandler
	authMiddleware    *CasdoorAuthMiddleware

	serviceManager services.ServiceManager
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
	cfg *config.Config,
) *HandlerManager {
	return &HandlerManager{
		teacherHandler:    NewTeacherHandler(serviceManager.Teacher(), logger),
		workPeriodHandler: NewWorkPeriodHandler(serviceManager.WorkPeriod(), logger),
		importHandler:     NewImportHandler(serviceManager.Import(), cfg.Import.MaxUploadBytes, logger),
		authMiddleware:    NewCasdoorAuthMiddleware(cfg.Casdoor),
		serviceManager:    serviceManager,
	}
}

// SetupRoutes sets up all API routes. Reads are open to any authenticated
// staff member; mutations require the admin role.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")
	v1.Use(hm.authMiddleware.AuthMiddleware())
	{
		teachers := v1.Group("/teachers")
		{
			teachers.GET("", hm.teacherHandler.ListTeachers)
			teachers.GET("/:id", hm.teacherHandler.GetTeacher)

			teachers.POST("", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.teacherHandler.CreateTeacher)
			teachers.PUT("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.teacherHandler.UpdateTeacher)
			teachers.POST("/:id/deactivate", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.teacherHandler.DeactivateTeacher)

			teachers.POST("/import", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.importHandler.ImportTeachers)
		}

		workPeriods := v1.Group("/work-periods")
		{
			workPeriods.GET("", hm.workPeriodHandler.ListWorkPeriods)
			workPeriods.GET("/:id", hm.workPeriodHandler.GetWorkPeriod)

			workPeriods.POST("", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.workPeriodHandler.CreateWorkPeriod)
			workPeriods.PUT("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.workPeriodHandler.UpdateWorkPeriod)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		status := http.StatusOK
		health := gin.H{
			"status":  "healthy",
			"service": "admin-service",
		}
		if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			health["status"] = "unhealthy"
			health["error"] = err.Error()
		}
		c.JSON(status, health)
	})
}
