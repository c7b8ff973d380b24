package handlers

import (
	"net/http"
	"strconv"

	"isml_backend/internal/apperr"
	"isml_backend/internal/models"
	"isml_backend/internal/response"
	"isml_backend/internal/storage"
	"isml_backend/internal/ws"

	"github.com/gin-gonic/gin"
)

var ErrNoteNotFound = apperr.New(apperr.NotFound, "NOTE_NOT_FOUND", "Note not found")

type NoteRequest struct {
	Link    string `json:"link" example:"https://drive.google.com/file/d/xyz"`
	BatchID int64  `json:"batch_id" binding:"required" example:"5"`
	Title   string `json:"title" example:"Week 1 vocabulary"`
	Note    string `json:"note" example:"Read before Monday"`
}

type NoteUpdate struct {
	Link    *string `json:"link"`
	BatchID *int64  `json:"batch_id"`
	Title   *string `json:"title"`
	Note    *string `json:"note"`
}

func (u NoteUpdate) apply(note *models.Note) {
	if u.Link != nil {
		note.Link = *u.Link
	}
	if u.BatchID != nil {
		note.BatchID = *u.BatchID
	}
	if u.Title != nil {
		note.Title = *u.Title
	}
	if u.Note != nil {
		note.Note = *u.Note
	}
}

func (h *Handler) publishNote(eventType string, note models.Note) {
	h.Hub.Publish(ws.Event{
		EventType: eventType,
		BatchID:   strconv.FormatInt(note.BatchID, 10),
		Data:      note,
	})
}

// CreateNote godoc
// @Summary		Create a note
// @Tags			notes
// @Accept			json
// @Produce		json
// @Param			note	body		NoteRequest				true	"Note"
// @Security		BearerAuth
// @Success		201		{object}	map[string]interface{}	"Created note"
// @Failure		400		{object}	response.ErrorResponse	"VALIDATION_ERROR, INVALID_REFERENCE"
// @Router			/api/notes [post]
func (h *Handler) CreateNote(c *gin.Context) {
	var req NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Invalid(c, "Batch ID is required.", err)
		return
	}

	note := models.Note{Link: req.Link, BatchID: req.BatchID, Title: req.Title, Note: req.Note}
	if err := h.DB.WithContext(c.Request.Context()).Create(&note).Error; err != nil {
		response.Fail(c, storage.Translate(err))
		return
	}
	h.publishNote("note_created", note)

	c.JSON(http.StatusCreated, gin.H{"message": "Note created successfully", "note": note})
}

// GetNotes godoc
// @Summary		List the notes of a batch
// @Tags			notes
// @Produce		json
// @Param			batch_id	query		int	true	"Batch ID"
// @Security		BearerAuth
// @Success		200			{array}		models.Note
// @Failure		400			{object}	response.ErrorResponse	"VALIDATION_ERROR"
// @Failure		500			{object}	response.ErrorResponse	"DB_ERROR"
// @Router			/api/notes [get]
func (h *Handler) GetNotes(c *gin.Context) {
	raw := c.Query("batch_id")
	if raw == "" {
		response.Invalid(c, "Batch ID is required.", nil)
		return
	}
	batchID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		response.Invalid(c, "Batch ID must be a number.", err)
		return
	}

	var notes []models.Note
	err = h.DB.WithContext(c.Request.Context()).
		Where("batch_id = ?", batchID).
		Order("created_at DESC").
		Find(&notes).Error
	if err != nil {
		response.Fail(c, storage.Translate(err))
		return
	}
	c.JSON(http.StatusOK, notes)
}

// GetNoteByID godoc
// @Summary		Get a note
// @Tags			notes
// @Produce		json
// @Param			id	path		int	true	"Note ID"
// @Security		BearerAuth
// @Success		200	{object}	models.Note
// @Failure		404	{object}	response.ErrorResponse	"NOTE_NOT_FOUND"
// @Router			/api/notes/{id} [get]
func (h *Handler) GetNoteByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var note models.Note
	if err := h.DB.WithContext(c.Request.Context()).First(&note, id).Error; err != nil {
		response.Fail(c, notFoundAs(storage.Translate(err), ErrNoteNotFound))
		return
	}
	c.JSON(http.StatusOK, note)
}

// UpdateNote godoc
// @Summary		Update a note
// @Tags			notes
// @Accept			json
// @Produce		json
// @Param			id		path		int						true	"Note ID"
// @Param			note	body		NoteUpdate				true	"Fields to change"
// @Security		BearerAuth
// @Success		200		{object}	map[string]interface{}	"Updated note"
// @Failure		404		{object}	response.ErrorResponse	"NOTE_NOT_FOUND"
// @Router			/api/notes/{id} [put]
func (h *Handler) UpdateNote(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req NoteUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Invalid(c, "Invalid note payload", err)
		return
	}

	ctx := c.Request.Context()
	var note models.Note
	if err := h.DB.WithContext(ctx).First(&note, id).Error; err != nil {
		response.Fail(c, notFoundAs(storage.Translate(err), ErrNoteNotFound))
		return
	}
	req.apply(&note)
	if err := h.DB.WithContext(ctx).Save(&note).Error; err != nil {
		response.Fail(c, storage.Translate(err))
		return
	}
	h.publishNote("note_updated", note)

	c.JSON(http.StatusOK, gin.H{"message": "Note updated successfully", "note": note})
}

// DeleteNote godoc
// @Summary		Delete a note
// @Tags			notes
// @Produce		json
// @Param			id	path		int	true	"Note ID"
// @Security		BearerAuth
// @Success		200	{object}	response.SuccessResponse
// @Failure		404	{object}	response.ErrorResponse	"NOTE_NOT_FOUND"
// @Router			/api/notes/{id} [delete]
func (h *Handler) DeleteNote(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	var note models.Note
	if err := h.DB.WithContext(ctx).First(&note, id).Error; err != nil {
		response.Fail(c, notFoundAs(storage.Translate(err), ErrNoteNotFound))
		return
	}
	if err := h.DB.WithContext(ctx).Delete(&note).Error; err != nil {
		response.Fail(c, storage.Translate(err))
		return
	}
	h.publishNote("note_deleted", note)

	c.JSON(http.StatusOK, response.SuccessResponse{Message: "Note deleted successfully"})
}
