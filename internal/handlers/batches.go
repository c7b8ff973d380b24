package handlers

import (
	"net/http"

	"isml_backend/internal/models"
	"isml_backend/internal/registry"
	"isml_backend/internal/response"

	"github.com/gin-gonic/gin"
)

const batchFieldsMessage = "All fields are required: duration, center, teacher, course_id, time_from, time_to"

type BatchRequest struct {
	Duration string `json:"duration" binding:"required" example:"6 months"`
	Center   int64  `json:"center" binding:"required" example:"3"`
	Teacher  int64  `json:"teacher" binding:"required" example:"12"`
	CourseID int64  `json:"course_id" binding:"required" example:"7"`
	TimeFrom string `json:"time_from" binding:"required" example:"09:00"`
	TimeTo   string `json:"time_to" binding:"required" example:"10:30"`
}

func (r BatchRequest) input() registry.BatchInput {
	return registry.BatchInput{
		Duration:  r.Duration,
		CenterID:  r.Center,
		TeacherID: r.Teacher,
		CourseID:  r.CourseID,
		TimeFrom:  r.TimeFrom,
		TimeTo:    r.TimeTo,
	}
}

// BatchView is a batch with its course flattened in.
type BatchView struct {
	*models.Batch
	CourseName string `json:"course_name"`
	CourseType string `json:"course_type"`
}

func viewOf(batch *models.Batch) BatchView {
	v := BatchView{Batch: batch}
	if batch.Course != nil {
		v.CourseName = batch.Course.CourseName
		v.CourseType = batch.Course.Type
	}
	return v
}

// CreateBatch godoc
// @Summary		Create a batch
// @Description	Allocates the next batch sequence number and names the batch B<seq>-<COURSE>-<from>-<to>
// @Tags			batches
// @Accept			json
// @Produce		json
// @Param			batch	body		BatchRequest			true	"Batch"
// @Security		BearerAuth
// @Success		201		{object}	map[string]interface{}	"Created batch"
// @Failure		400		{object}	response.ErrorResponse	"MISSING_FIELDS, INVALID_TIME, INVALID_COURSE"
// @Failure		401		{object}	response.ErrorResponse	"NO_AUTH_HEADER, INVALID_TOKEN"
// @Failure		403		{object}	response.ErrorResponse	"FORBIDDEN_ROLE"
// @Failure		500		{object}	response.ErrorResponse	"DB_ERROR"
// @Router			/api/batches [post]
func (h *Handler) CreateBatch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Invalid(c, batchFieldsMessage, err)
		return
	}

	batch, err := h.Batches.Allocate(c.Request.Context(), req.input())
	if err != nil {
		response.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Batch created successfully",
		"batch":   viewOf(batch),
	})
}

// GetBatches godoc
// @Summary		List batches
// @Description	Batches with center, teacher and course names and the number of enrolled students
// @Tags			batches
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	map[string]interface{}	"success, data"
// @Failure		500	{object}	response.ErrorResponse	"DB_ERROR"
// @Router			/api/batches [get]
func (h *Handler) GetBatches(c *gin.Context) {
	summaries, err := h.Catalog.Summaries(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": summaries})
}

// GetBatchByID godoc
// @Summary		Get a batch
// @Tags			batches
// @Produce		json
// @Param			id	path		int	true	"Batch ID"
// @Security		BearerAuth
// @Success		200	{object}	models.Batch
// @Failure		400	{object}	response.ErrorResponse	"INVALID_ID"
// @Failure		404	{object}	response.ErrorResponse	"BATCH_NOT_FOUND"
// @Router			/api/batches/{id} [get]
func (h *Handler) GetBatchByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	batch, err := h.Catalog.FindBatch(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, notFoundAs(err, registry.ErrBatchNotFound))
		return
	}
	c.JSON(http.StatusOK, viewOf(batch))
}

// UpdateBatch godoc
// @Summary		Update a batch
// @Description	Rewrites the batch and its name; the sequence number is kept
// @Tags			batches
// @Accept			json
// @Produce		json
// @Param			id		path		int						true	"Batch ID"
// @Param			batch	body		BatchRequest			true	"Batch"
// @Security		BearerAuth
// @Success		200		{object}	map[string]interface{}	"Updated batch"
// @Failure		400		{object}	response.ErrorResponse	"MISSING_FIELDS, INVALID_TIME, INVALID_COURSE"
// @Failure		404		{object}	response.ErrorResponse	"BATCH_NOT_FOUND"
// @Router			/api/batches/{id} [put]
func (h *Handler) UpdateBatch(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Invalid(c, batchFieldsMessage, err)
		return
	}

	batch, err := h.Batches.Reassign(c.Request.Context(), id, req.input())
	if err != nil {
		response.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Batch updated successfully",
		"batch":   viewOf(batch),
	})
}

// DeleteBatch godoc
// @Summary		Delete a batch
// @Tags			batches
// @Produce		json
// @Param			id	path		int	true	"Batch ID"
// @Security		BearerAuth
// @Success		200	{object}	response.SuccessResponse
// @Failure		404	{object}	response.ErrorResponse	"BATCH_NOT_FOUND"
// @Router			/api/batches/{id} [delete]
func (h *Handler) DeleteBatch(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.Catalog.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, notFoundAs(err, registry.ErrBatchNotFound))
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Message: "Batch deleted successfully"})
}

type ApproveRequest struct {
	StudentID int64 `json:"student_id" binding:"required" example:"42"`
}

// ApproveStudent godoc
// @Summary		Approve a student
// @Description	Issues a registration number ISML<STATE2><CENTER2><RAND4> and queues the approval email
// @Tags			students
// @Accept			json
// @Produce		json
// @Param			request	body		ApproveRequest			true	"Student"
// @Security		BearerAuth
// @Success		200		{object}	map[string]interface{}	"Approved student"
// @Failure		400		{object}	response.ErrorResponse	"VALIDATION_ERROR, ALREADY_APPROVED"
// @Failure		404		{object}	response.ErrorResponse	"STUDENT_NOT_FOUND"
// @Failure		500		{object}	response.ErrorResponse	"DB_ERROR"
// @Router			/api/batches/approve [post]
func (h *Handler) ApproveStudent(c *gin.Context) {
	var req ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Invalid(c, "Student ID is required", err)
		return
	}

	approval, err := h.Students.Approve(c.Request.Context(), req.StudentID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":             "Student approved successfully",
		"registration_number": approval.RegistrationNumber,
		"student":             approval.Student,
	})
}
