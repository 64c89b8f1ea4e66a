package handler

import "github.com/gin-gonic/gin"

// Handlers groups the HTTP handlers mounted under the API prefix.
type Handlers struct {
	Tracker *TrackerHandler
	Modules *ModuleHandler
	Reports *ReportHandler
}

// RegisterRoutes mounts every tracker endpoint on api.
func RegisterRoutes(api *gin.RouterGroup, h Handlers) {
	sections := api.Group("/sections")
	sections.GET("", h.Tracker.ListSections)
	sections.POST("", h.Tracker.CreateSection)
	sections.GET("/:id/students", h.Tracker.ListStudents)
	sections.POST("/:id/students", h.Tracker.AddStudents)

	session := api.Group("/session")
	session.GET("", h.Tracker.GetSession)
	session.PUT("/section", h.Tracker.SelectSection)
	session.PUT("/date", h.Tracker.SelectDate)
	session.POST("/date/shift", h.Tracker.ShiftSessionDate)
	session.POST("/date/today", h.Tracker.ResetSessionDate)

	api.GET("/days/:date", h.Tracker.DayView)
	api.POST("/attendance", h.Tracker.ToggleAttendance)
	api.PUT("/evaluations", h.Tracker.SetEvaluation)
	api.GET("/dates/shift", h.Tracker.ShiftDate)

	modules := api.Group("/modules")
	modules.GET("", h.Modules.List)
	modules.POST("", h.Modules.Create)
	modules.POST("/generate", h.Modules.Generate)
	modules.DELETE("/:id", h.Modules.Delete)

	reports := api.Group("/reports")
	reports.GET("/csv", h.Reports.ExportCSV)
	reports.POST("", h.Reports.GenerateReport)
	reports.GET("/download/:token", h.Reports.Download)
}
