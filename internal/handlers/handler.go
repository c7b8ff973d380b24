package handlers

import (
	"context"
	"strconv"
	"time"

	"isml_backend/internal/apperr"
	"isml_backend/internal/models"
	"isml_backend/internal/naming"
	"isml_backend/internal/registry"
	"isml_backend/internal/response"
	"isml_backend/internal/storage"
	"isml_backend/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// BatchAllocator names and renames batches.
type BatchAllocator interface {
	Allocate(ctx context.Context, in registry.BatchInput) (*models.Batch, error)
	Reassign(ctx context.Context, batchID int64, in registry.BatchInput) (*models.Batch, error)
}

// BatchCatalog reads and deletes batches.
type BatchCatalog interface {
	Summaries(ctx context.Context) ([]storage.BatchSummary, error)
	FindBatch(ctx context.Context, id int64) (*models.Batch, error)
	Delete(ctx context.Context, id int64) error
}

type StudentApprover interface {
	Approve(ctx context.Context, studentID int64) (*registry.Approval, error)
}

// Handler carries the dependencies of every route. Courses, meets and notes
// are plain pass-through records and go to DB directly.
type Handler struct {
	DB       *gorm.DB
	Batches  BatchAllocator
	Catalog  BatchCatalog
	Students StudentApprover
	Cache    *redis.Client
	CacheTTL time.Duration
	Hub      *ws.Hub
}

var ErrInvalidID = apperr.New(apperr.Validation, "INVALID_ID", "Invalid identifier")

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Fail(c, ErrInvalidID)
		return 0, false
	}
	return id, true
}

// RegisterValidators adds the "clock" tag (24-hour H:MM or HH:MM) to gin's
// validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		_, err := naming.FormatClock(fl.Field().String())
		return err == nil
	})
}
