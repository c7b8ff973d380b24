package handlers

import (
	"net/http"

	"isml_backend/internal/auth"
	"isml_backend/internal/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter wires every route of the API.
func NewRouter(h *Handler, decoder *auth.Decoder) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logger.GinMiddleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	academic := auth.RequireRole(decoder, auth.RoleAcademic)
	manager := auth.RequireRole(decoder, auth.RoleManager)
	teacher := auth.RequireRole(decoder, auth.RoleTeacher)

	batches := r.Group("/api/batches")
	{
		batches.POST("", academic, h.CreateBatch)
		batches.GET("", academic, h.GetBatches)
		batches.POST("/approve", academic, h.ApproveStudent)
		batches.GET("/:id", academic, h.GetBatchByID)
		batches.PUT("/:id", academic, h.UpdateBatch)
		batches.DELETE("/:id", academic, h.DeleteBatch)
		batches.GET("/:id/ws", auth.RequireRole(decoder, auth.RoleAcademic, auth.RoleTeacher), h.Hub.Handler())
	}

	courses := r.Group("/api/courses", manager)
	{
		courses.POST("", h.CreateCourse)
		courses.GET("", h.GetCourses)
		courses.GET("/:id", h.GetCourseByID)
		courses.PUT("/:id", h.UpdateCourse)
		courses.DELETE("/:id", h.DeleteCourse)
	}

	gmeets := r.Group("/api/gmeets", teacher)
	{
		gmeets.POST("", h.CreateGMeet)
		gmeets.GET("/:batch_id", h.GetGMeetsByBatch)
		gmeets.GET("/meet/:meet_id", h.GetGMeetByID)
		gmeets.PUT("/:meet_id", h.UpdateGMeet)
		gmeets.DELETE("/:meet_id", h.DeleteGMeet)
	}

	notes := r.Group("/api/notes", teacher)
	{
		notes.POST("", h.CreateNote)
		notes.GET("", h.GetNotes)
		notes.GET("/:id", h.GetNoteByID)
		notes.PUT("/:id", h.UpdateNote)
		notes.DELETE("/:id", h.DeleteNote)
	}

	return r
}
