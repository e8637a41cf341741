package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"docregistry/internal/domain/entity"
	"docregistry/internal/usecase"
)

type MasterHandler struct {
	usecase usecase.VocabularyUsecase
	logger  *zap.Logger
}

func NewMasterHandler(uc usecase.VocabularyUsecase, logger *zap.Logger) *MasterHandler {
	return &MasterHandler{
		usecase: uc,
		logger:  logger,
	}
}

// GetVocabulary godoc
// @Summary Get document type and category vocabulary
// @Description Reads the Master sheet; degrades to built-in defaults with a warning when the sheet is unavailable
// @Tags master
// @Produce json
// @Success 200 {object} entity.APIResponse
// @Router /api/v1/master [get]
func (h *MasterHandler) GetVocabulary(c *fiber.Ctx) error {
	ctx := c.UserContext()

	vocab := h.usecase.Get(ctx)
	if vocab.Fallback {
		return c.JSON(entity.NewWarningResponse(vocab, "Vocabulary retrieved",
			"Master sheet unavailable, using default categories"))
	}
	return c.JSON(entity.NewSuccessResponse(vocab, "Vocabulary retrieved"))
}

// RefreshVocabulary godoc
// @Summary Drop the cached vocabulary
// @Tags master
// @Produce json
// @Success 200 {object} entity.APIResponse
// @Router /api/v1/master/refresh [post]
func (h *MasterHandler) RefreshVocabulary(c *fiber.Ctx) error {
	ctx := c.UserContext()

	if err := h.usecase.Refresh(ctx); err != nil {
		h.logger.Error("Failed to refresh vocabulary cache", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(
			entity.NewErrorResponse("INTERNAL_ERROR", err.Error()),
		)
	}
	return c.JSON(entity.NewSuccessResponse(nil, "Vocabulary cache cleared"))
}
