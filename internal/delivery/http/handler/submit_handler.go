package handler

import (
	"errors"
	"sync/atomic"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"docregistry/internal/domain/entity"
	"docregistry/internal/editor"
	"docregistry/internal/usecase"
)

type SubmitHandler struct {
	usecase usecase.SubmitUsecase
	editor  *editor.Editor
	logger  *zap.Logger

	// guards against overlapping batches from the same editor
	inFlight atomic.Bool
}

func NewSubmitHandler(uc usecase.SubmitUsecase, ed *editor.Editor, logger *zap.Logger) *SubmitHandler {
	return &SubmitHandler{
		usecase: uc,
		editor:  ed,
		logger:  logger,
	}
}

// Submit godoc
// @Summary Submit the current draft batch to the sheet
// @Description Uploads files, allocates serials and inserts one row per draft. On success the editor resets; on failure the drafts are left untouched for retry.
// @Tags submit
// @Produce json
// @Success 201 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Failure 409 {object} entity.APIResponse
// @Failure 502 {object} entity.APIResponse
// @Router /api/v1/submit [post]
func (h *SubmitHandler) Submit(c *fiber.Ctx) error {
	ctx := c.UserContext()

	if !h.inFlight.CompareAndSwap(false, true) {
		return c.Status(fiber.StatusConflict).JSON(
			entity.NewErrorResponse("SUBMIT_IN_PROGRESS", "A submission is already running"),
		)
	}
	defer h.inFlight.Store(false)

	result, err := h.usecase.Submit(ctx, h.editor.Snapshot())
	if err != nil {
		h.logger.Error("Submission failed", zap.Error(err))

		var fieldErrs validation.Errors
		if errors.Is(err, usecase.ErrNoAttachments) || errors.As(err, &fieldErrs) {
			return c.Status(fiber.StatusBadRequest).JSON(
				entity.NewErrorResponse("VALIDATION_ERROR", err.Error()),
			)
		}
		return c.Status(fiber.StatusBadGateway).JSON(
			entity.NewErrorResponse("SUBMIT_FAILED", err.Error()),
		)
	}

	// Rows are committed; start the next batch from a clean editor
	h.editor.Reset()

	return c.Status(fiber.StatusCreated).JSON(
		entity.NewSuccessResponse(result, "Documents submitted successfully"),
	)
}
