package handlers

import (
	"net/http"
	"strconv"
	"time"

	"isml_backend/internal/apperr"
	"isml_backend/internal/models"
	"isml_backend/internal/naming"
	"isml_backend/internal/response"
	"isml_backend/internal/storage"
	"isml_backend/internal/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

const dateLayout = "2006-01-02"

var ErrMeetNotFound = apperr.New(apperr.NotFound, "MEET_NOT_FOUND", "GMeet not found")

type GMeetRequest struct {
	BatchID  int64  `json:"batch_id" binding:"required" example:"5"`
	MeetLink string `json:"meet_link" binding:"required,url" example:"https://meet.google.com/abc-defg-hij"`
	Date     string `json:"date" binding:"required,datetime=2006-01-02" example:"2025-03-01"`
	Time     string `json:"time" binding:"required,clock" example:"18:30"`
	Current  *bool  `json:"current" binding:"required" example:"true"`
	Note     string `json:"note" example:"Bring chapter 3"`
	Title    string `json:"title" binding:"required" example:"Grammar review"`
}

type GMeetUpdate struct {
	BatchID  *int64  `json:"batch_id"`
	MeetLink *string `json:"meet_link" binding:"omitempty,url"`
	Date     *string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Time     *string `json:"time" binding:"omitempty,clock"`
	Current  *bool   `json:"current"`
	Note     *string `json:"note"`
	Title    *string `json:"title"`
}

func (u GMeetUpdate) apply(meet *models.GMeet) error {
	if u.BatchID != nil {
		meet.BatchID = *u.BatchID
	}
	if u.MeetLink != nil {
		meet.MeetLink = *u.MeetLink
	}
	if u.Date != nil {
		d, err := time.Parse(dateLayout, *u.Date)
		if err != nil {
			return apperr.Wrap(apperr.ErrValidation, err)
		}
		meet.Date = datatypes.Date(d)
	}
	if u.Time != nil {
		t, err := naming.ParseClock(*u.Time)
		if err != nil {
			return err
		}
		meet.Time = t
	}
	if u.Current != nil {
		meet.Current = *u.Current
	}
	if u.Note != nil {
		meet.Note = *u.Note
	}
	if u.Title != nil {
		meet.Title = *u.Title
	}
	return nil
}

func (h *Handler) publishMeet(eventType string, meet models.GMeet) {
	h.Hub.Publish(ws.Event{
		EventType: eventType,
		BatchID:   strconv.FormatInt(meet.BatchID, 10),
		Data:      meet,
	})
}

// CreateGMeet godoc
// @Summary		Schedule a meet
// @Tags			gmeets
// @Accept			json
// @Produce		json
// @Param			meet	body		GMeetRequest			true	"Meet"
// @Security		BearerAuth
// @Success		201		{object}	map[string]interface{}	"Created meet"
// @Failure		400		{object}	response.ErrorResponse	"VALIDATION_ERROR, INVALID_REFERENCE"
// @Failure		403		{object}	response.ErrorResponse	"FORBIDDEN_ROLE"
// @Router			/api/gmeets [post]
func (h *Handler) CreateGMeet(c *gin.Context) {
	var req GMeetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Invalid(c, "Missing required fields", err)
		return
	}

	// the binding tags already checked both formats
	date, _ := time.Parse(dateLayout, req.Date)
	clock, _ := naming.ParseClock(req.Time)

	meet := models.GMeet{
		BatchID:  req.BatchID,
		MeetLink: req.MeetLink,
		Date:     datatypes.Date(date),
		Time:     clock,
		Current:  *req.Current,
		Note:     req.Note,
		Title:    req.Title,
	}
	if err := h.DB.WithContext(c.Request.Context()).Create(&meet).Error; err != nil {
		response.Fail(c, storage.Translate(err))
		return
	}
	h.publishMeet("meet_created", meet)

	c.JSON(http.StatusCreated, gin.H{"message": "GMeet created successfully", "data": meet})
}

// GetGMeetsByBatch godoc
// @Summary		List the meets of a batch
// @Tags			gmeets
// @Produce		json
// @Param			batch_id	path		int	true	"Batch ID"
// @Security		BearerAuth
// @Success		200			{array}		models.GMeet
// @Router			/api/gmeets/{batch_id} [get]
func (h *Handler) GetGMeetsByBatch(c *gin.Context) {
	batchID, ok := paramID(c, "batch_id")
	if !ok {
		return
	}
	var meets []models.GMeet
	err := h.DB.WithContext(c.Request.Context()).
		Where("batch_id = ?", batchID).
		Order("date, time").
		Find(&meets).Error
	if err != nil {
		response.Fail(c, storage.Translate(err))
		return
	}
	c.JSON(http.StatusOK, meets)
}

// GetGMeetByID godoc
// @Summary		Get a meet
// @Tags			gmeets
// @Produce		json
// @Param			meet_id	path		int	true	"Meet ID"
// @Security		BearerAuth
// @Success		200		{object}	models.GMeet
// @Failure		404		{object}	response.ErrorResponse	"MEET_NOT_FOUND"
// @Router			/api/gmeets/meet/{meet_id} [get]
func (h *Handler) GetGMeetByID(c *gin.Context) {
	id, ok := paramID(c, "meet_id")
	if !ok {
		return
	}
	var meet models.GMeet
	if err := h.DB.WithContext(c.Request.Context()).First(&meet, id).Error; err != nil {
		response.Fail(c, notFoundAs(storage.Translate(err), ErrMeetNotFound))
		return
	}
	c.JSON(http.StatusOK, meet)
}

// UpdateGMeet godoc
// @Summary		Update a meet
// @Tags			gmeets
// @Accept			json
// @Produce		json
// @Param			meet_id	path		int						true	"Meet ID"
// @Param			meet	body		GMeetUpdate				true	"Fields to change"
// @Security		BearerAuth
// @Success		200		{object}	map[string]interface{}	"Updated meet"
// @Failure		400		{object}	response.ErrorResponse	"VALIDATION_ERROR"
// @Failure		404		{object}	response.ErrorResponse	"MEET_NOT_FOUND"
// @Router			/api/gmeets/{meet_id} [put]
func (h *Handler) UpdateGMeet(c *gin.Context) {
	id, ok := paramID(c, "meet_id")
	if !ok {
		return
	}
	var req GMeetUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Invalid(c, "Invalid meet payload", err)
		return
	}

	ctx := c.Request.Context()
	var meet models.GMeet
	if err := h.DB.WithContext(ctx).First(&meet, id).Error; err != nil {
		response.Fail(c, notFoundAs(storage.Translate(err), ErrMeetNotFound))
		return
	}
	if err := req.apply(&meet); err != nil {
		response.Fail(c, err)
		return
	}
	if err := h.DB.WithContext(ctx).Save(&meet).Error; err != nil {
		response.Fail(c, storage.Translate(err))
		return
	}
	h.publishMeet("meet_updated", meet)

	c.JSON(http.StatusOK, gin.H{"message": "GMeet updated successfully", "data": meet})
}

// DeleteGMeet godoc
// @Summary		Delete a meet
// @Tags			gmeets
// @Produce		json
// @Param			meet_id	path		int	true	"Meet ID"
// @Security		BearerAuth
// @Success		200		{object}	response.SuccessResponse
// @Failure		404		{object}	response.ErrorResponse	"MEET_NOT_FOUND"
// @Router			/api/gmeets/{meet_id} [delete]
func (h *Handler) DeleteGMeet(c *gin.Context) {
	id, ok := paramID(c, "meet_id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	var meet models.GMeet
	if err := h.DB.WithContext(ctx).First(&meet, id).Error; err != nil {
		response.Fail(c, notFoundAs(storage.Translate(err), ErrMeetNotFound))
		return
	}
	if err := h.DB.WithContext(ctx).Delete(&meet).Error; err != nil {
		response.Fail(c, storage.Translate(err))
		return
	}
	h.publishMeet("meet_deleted", meet)

	c.JSON(http.StatusOK, response.SuccessResponse{Message: "GMeet deleted successfully"})
}
