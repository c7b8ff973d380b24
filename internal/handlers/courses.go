package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"isml_backend/internal/apperr"
	"isml_backend/internal/logger"
	"isml_backend/internal/models"
	"isml_backend/internal/response"
	"isml_backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	coursesCacheKey     = "courses:all"
	courseFieldsMessage = "All fields are required: course_name, program, type, language, level, mode, duration"
	durationMessage     = "Duration must be a number"
)

var ErrCourseNotFound = apperr.New(apperr.NotFound, "COURSE_NOT_FOUND", "Course not found")

type CourseRequest struct {
	CourseName string   `json:"course_name" binding:"required" example:"German"`
	Program    string   `json:"program" binding:"required" example:"Language"`
	Type       string   `json:"type" binding:"required" example:"Regular"`
	Language   string   `json:"language" binding:"required" example:"English"`
	Level      string   `json:"level" binding:"required" example:"A1"`
	Mode       string   `json:"mode" binding:"required" example:"Online"`
	Duration   *float64 `json:"duration" binding:"required,gt=0" example:"3"`
}

// CourseUpdate carries only the fields the client sent.
type CourseUpdate struct {
	CourseName *string  `json:"course_name"`
	Program    *string  `json:"program"`
	Type       *string  `json:"type"`
	Language   *string  `json:"language"`
	Level      *string  `json:"level"`
	Mode       *string  `json:"mode"`
	Duration   *float64 `json:"duration"`
}

func (u CourseUpdate) columns() map[string]interface{} {
	cols := map[string]interface{}{}
	set := func(name string, v *string) {
		if v != nil {
			cols[name] = *v
		}
	}
	set("course_name", u.CourseName)
	set("program", u.Program)
	set("type", u.Type)
	set("language", u.Language)
	set("level", u.Level)
	set("mode", u.Mode)
	if u.Duration != nil {
		cols["duration"] = *u.Duration
	}
	return cols
}

// bindCourse reports a non-numeric duration separately from missing fields.
func bindCourse(c *gin.Context, obj interface{}, missing string) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field == "duration" {
		response.Invalid(c, durationMessage, err)
		return false
	}
	response.Invalid(c, missing, err)
	return false
}

// CreateCourse godoc
// @Summary		Create a course
// @Tags			courses
// @Accept			json
// @Produce		json
// @Param			course	body		CourseRequest			true	"Course"
// @Security		BearerAuth
// @Success		201		{object}	map[string]interface{}	"Created course"
// @Failure		400		{object}	response.ErrorResponse	"VALIDATION_ERROR"
// @Failure		403		{object}	response.ErrorResponse	"FORBIDDEN_ROLE"
// @Router			/api/courses [post]
func (h *Handler) CreateCourse(c *gin.Context) {
	var req CourseRequest
	if !bindCourse(c, &req, courseFieldsMessage) {
		return
	}

	course := models.Course{
		CourseName: req.CourseName,
		Program:    req.Program,
		Type:       req.Type,
		Language:   req.Language,
		Level:      req.Level,
		Mode:       req.Mode,
		Duration:   *req.Duration,
	}
	if err := h.DB.WithContext(c.Request.Context()).Create(&course).Error; err != nil {
		response.Fail(c, storage.Translate(err))
		return
	}
	h.dropCourseCache(c.Request.Context())

	c.JSON(http.StatusCreated, gin.H{"message": "Course created successfully", "course": course})
}

// GetCourses godoc
// @Summary		List courses
// @Tags			courses
// @Produce		json
// @Security		BearerAuth
// @Success		200	{array}		models.Course
// @Failure		500	{object}	response.ErrorResponse	"DB_ERROR"
// @Router			/api/courses [get]
func (h *Handler) GetCourses(c *gin.Context) {
	ctx := c.Request.Context()
	if courses, ok := h.cachedCourses(ctx); ok {
		c.JSON(http.StatusOK, courses)
		return
	}

	var courses []models.Course
	if err := h.DB.WithContext(ctx).Order("id").Find(&courses).Error; err != nil {
		response.Fail(c, storage.Translate(err))
		return
	}
	h.cacheCourses(ctx, courses)
	c.JSON(http.StatusOK, courses)
}

// GetCourseByID godoc
// @Summary		Get a course
// @Tags			courses
// @Produce		json
// @Param			id	path		int	true	"Course ID"
// @Security		BearerAuth
// @Success		200	{object}	models.Course
// @Failure		404	{object}	response.ErrorResponse	"COURSE_NOT_FOUND"
// @Router			/api/courses/{id} [get]
func (h *Handler) GetCourseByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var course models.Course
	if err := h.DB.WithContext(c.Request.Context()).First(&course, id).Error; err != nil {
		response.Fail(c, notFoundAs(storage.Translate(err), ErrCourseNotFound))
		return
	}
	c.JSON(http.StatusOK, course)
}

// UpdateCourse godoc
// @Summary		Update a course
// @Description	Only the fields present in the body are changed
// @Tags			courses
// @Accept			json
// @Produce		json
// @Param			id		path		int						true	"Course ID"
// @Param			course	body		CourseUpdate			true	"Fields to change"
// @Security		BearerAuth
// @Success		200		{object}	map[string]interface{}	"Updated course"
// @Failure		400		{object}	response.ErrorResponse	"VALIDATION_ERROR"
// @Failure		404		{object}	response.ErrorResponse	"COURSE_NOT_FOUND"
// @Router			/api/courses/{id} [put]
func (h *Handler) UpdateCourse(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req CourseUpdate
	if !bindCourse(c, &req, "Invalid course payload") {
		return
	}

	ctx := c.Request.Context()
	var course models.Course
	if err := h.DB.WithContext(ctx).First(&course, id).Error; err != nil {
		response.Fail(c, notFoundAs(storage.Translate(err), ErrCourseNotFound))
		return
	}
	if cols := req.columns(); len(cols) > 0 {
		if err := h.DB.WithContext(ctx).Model(&course).Updates(cols).Error; err != nil {
			response.Fail(c, storage.Translate(err))
			return
		}
	}
	h.dropCourseCache(ctx)

	c.JSON(http.StatusOK, gin.H{"message": "Course updated successfully", "course": course})
}

// DeleteCourse godoc
// @Summary		Delete a course
// @Tags			courses
// @Produce		json
// @Param			id	path		int	true	"Course ID"
// @Security		BearerAuth
// @Success		200	{object}	response.SuccessResponse
// @Failure		400	{object}	response.ErrorResponse	"INVALID_REFERENCE"
// @Failure		404	{object}	response.ErrorResponse	"COURSE_NOT_FOUND"
// @Router			/api/courses/{id} [delete]
func (h *Handler) DeleteCourse(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	result := h.DB.WithContext(ctx).Delete(&models.Course{}, id)
	if result.Error != nil {
		response.Fail(c, storage.Translate(result.Error))
		return
	}
	if result.RowsAffected == 0 {
		response.Fail(c, ErrCourseNotFound)
		return
	}
	h.dropCourseCache(ctx)

	c.JSON(http.StatusOK, response.SuccessResponse{Message: "Course deleted successfully"})
}

func (h *Handler) cachedCourses(ctx context.Context) ([]models.Course, bool) {
	if h.Cache == nil {
		return nil, false
	}
	raw, err := h.Cache.Get(ctx, coursesCacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warn("course cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var courses []models.Course
	if err := json.Unmarshal(raw, &courses); err != nil {
		return nil, false
	}
	return courses, true
}

func (h *Handler) cacheCourses(ctx context.Context, courses []models.Course) {
	if h.Cache == nil {
		return
	}
	raw, err := json.Marshal(courses)
	if err != nil {
		return
	}
	if err := h.Cache.Set(ctx, coursesCacheKey, raw, h.CacheTTL).Err(); err != nil {
		logger.Warn("course cache write failed", zap.Error(err))
	}
}

func (h *Handler) dropCourseCache(ctx context.Context) {
	if h.Cache == nil {
		return
	}
	if err := h.Cache.Del(ctx, coursesCacheKey).Err(); err != nil {
		logger.Warn("course cache invalidation failed", zap.Error(err))
	}
}
