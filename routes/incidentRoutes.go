package routes

import (
	"sirrs-be/controllers"
	"sirrs-be/middlewares"
	"sirrs-be/models"

	"github.com/gin-gonic/gin"
)

// IncidentRoutes sets up the incident routes. Status changes and resolution
// photo uploads are limited to authority and admin users.
func IncidentRoutes(r *gin.Engine) {
	incident := r.Group("/api/incidents", middlewares.AuthMiddleware())
	{
		incident.POST("", middlewares.ReportRateLimiter(10), controllers.CreateIncident)
		incident.GET("", controllers.GetIncidents)
		incident.GET("/:id", controllers.GetIncident)
		incident.PATCH("/:id/status",
			middlewares.RequireRoles(models.RoleAuthority, models.RoleAdmin),
			controllers.UpdateStatus)
		incident.POST("/:id/photos",
			middlewares.RequireRoles(models.RoleAuthority, models.RoleAdmin),
			controllers.UploadResolutionPhotos)
	}
}
