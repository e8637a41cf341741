package handler

import (
	"errors"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"docregistry/internal/domain/entity"
	"docregistry/internal/editor"
	"docregistry/internal/infrastructure/filestore"
)

type DraftHandler struct {
	editor    *editor.Editor
	filestore filestore.Filestore
	logger    *zap.Logger
}

func NewDraftHandler(ed *editor.Editor, fs filestore.Filestore, logger *zap.Logger) *DraftHandler {
	return &DraftHandler{
		editor:    ed,
		filestore: fs,
		logger:    logger,
	}
}

// ListDrafts godoc
// @Summary List current drafts
// @Description Get the current draft list snapshot (file contents elided)
// @Tags drafts
// @Produce json
// @Success 200 {object} entity.APIResponse
// @Router /api/v1/drafts [get]
func (h *DraftHandler) ListDrafts(c *fiber.Ctx) error {
	return c.JSON(entity.NewSuccessResponse(h.editor.Snapshot(), "Drafts retrieved successfully"))
}

// AddDraft godoc
// @Summary Add a draft row
// @Tags drafts
// @Produce json
// @Success 201 {object} entity.APIResponse
// @Router /api/v1/drafts [post]
func (h *DraftHandler) AddDraft(c *fiber.Ctx) error {
	draft := h.editor.AddRow()
	return c.Status(fiber.StatusCreated).JSON(
		entity.NewSuccessResponse(draft, "Draft added"),
	)
}

// RemoveDraft godoc
// @Summary Remove a draft row
// @Description Removing the sole remaining draft is a no-op
// @Tags drafts
// @Produce json
// @Success 200 {object} entity.APIResponse
// @Router /api/v1/drafts/{id} [delete]
func (h *DraftHandler) RemoveDraft(c *fiber.Ctx) error {
	id := c.Params("id")

	if !h.editor.RemoveRow(id) {
		return c.JSON(entity.NewSuccessResponse(h.editor.Snapshot(), "Last draft cannot be removed"))
	}
	return c.JSON(entity.NewSuccessResponse(h.editor.Snapshot(), "Draft removed"))
}

type updateFieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// UpdateField godoc
// @Summary Update one scalar field on a draft
// @Tags drafts
// @Accept json
// @Produce json
// @Param request body updateFieldRequest true "Field update"
// @Success 200 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Failure 404 {object} entity.APIResponse
// @Router /api/v1/drafts/{id} [patch]
func (h *DraftHandler) UpdateField(c *fiber.Ctx) error {
	id := c.Params("id")

	var req updateFieldRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "Invalid request body"),
		)
	}

	if err := h.editor.UpdateField(id, req.Field, req.Value); err != nil {
		return h.editorError(c, err)
	}
	return c.JSON(entity.NewSuccessResponse(nil, "Field updated"))
}

type setCategoryRequest struct {
	Category string `json:"category"`
}

// SetCategory godoc
// @Summary Change a draft's category
// @Description Also resets the entity name, whose meaning depends on the category
// @Tags drafts
// @Accept json
// @Produce json
// @Success 200 {object} entity.APIResponse
// @Router /api/v1/drafts/{id}/category [put]
func (h *DraftHandler) SetCategory(c *fiber.Ctx) error {
	id := c.Params("id")

	var req setCategoryRequest
	if err := c.BodyParser(&req); err != nil || req.Category == "" {
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "Category is required"),
		)
	}

	if err := h.editor.SetCategory(id, req.Category); err != nil {
		return h.editorError(c, err)
	}
	return c.JSON(entity.NewSuccessResponse(nil, "Category updated"))
}

type toggleRenewalRequest struct {
	Enabled bool `json:"enabled"`
}

// ToggleRenewal godoc
// @Summary Enable or disable renewal tracking on a draft
// @Tags drafts
// @Accept json
// @Produce json
// @Success 200 {object} entity.APIResponse
// @Router /api/v1/drafts/{id}/renewal [put]
func (h *DraftHandler) ToggleRenewal(c *fiber.Ctx) error {
	id := c.Params("id")

	var req toggleRenewalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "Invalid request body"),
		)
	}

	if err := h.editor.ToggleRenewal(id, req.Enabled); err != nil {
		return h.editorError(c, err)
	}
	return c.JSON(entity.NewSuccessResponse(nil, "Renewal flag updated"))
}

// AddFiles godoc
// @Summary Attach uploaded files to a draft
// @Description Multipart upload; files already attached (same name and size) are dropped
// @Tags drafts
// @Accept multipart/form-data
// @Produce json
// @Success 200 {object} entity.APIResponse
// @Router /api/v1/drafts/{id}/files [post]
func (h *DraftHandler) AddFiles(c *fiber.Ctx) error {
	id := c.Params("id")

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "Multipart form required"),
		)
	}

	files := []entity.AttachedFile{}
	for _, headers := range form.File {
		for _, fh := range headers {
			f, err := fh.Open()
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(
					entity.NewErrorResponse("BAD_REQUEST", "Failed to read uploaded file"),
				)
			}
			content, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(
					entity.NewErrorResponse("BAD_REQUEST", "Failed to read uploaded file"),
				)
			}

			files = append(files, entity.AttachedFile{
				Name:     fh.Filename,
				Size:     int64(len(content)),
				MimeType: fh.Header.Get("Content-Type"),
				Content:  content,
			})
		}
	}

	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "No files in request"),
		)
	}

	added, err := h.editor.AddFiles(id, files)
	if err != nil {
		return h.editorError(c, err)
	}

	return c.JSON(entity.NewSuccessResponse(fiber.Map{
		"received": len(files),
		"added":    added,
	}, "Files attached"))
}

type importFileRequest struct {
	Name string `json:"name"`
}

// ImportFile godoc
// @Summary Attach a staged inbox file to a draft
// @Tags drafts
// @Accept json
// @Produce json
// @Success 200 {object} entity.APIResponse
// @Router /api/v1/drafts/{id}/files/import [post]
func (h *DraftHandler) ImportFile(c *fiber.Ctx) error {
	id := c.Params("id")

	var req importFileRequest
	if err := c.BodyParser(&req); err != nil || req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "File name is required"),
		)
	}

	file, err := h.filestore.Load(req.Name)
	if err != nil {
		h.logger.Error("Failed to load staged file", zap.String("file", req.Name), zap.Error(err))
		return c.Status(fiber.StatusNotFound).JSON(
			entity.NewErrorResponse("NOT_FOUND", err.Error()),
		)
	}

	added, err := h.editor.AddFiles(id, []entity.AttachedFile{*file})
	if err != nil {
		return h.editorError(c, err)
	}

	// Avoid offering an already-attached file again
	if added > 0 {
		if err := h.filestore.Archive(req.Name); err != nil {
			h.logger.Warn("Failed to archive staged file", zap.String("file", req.Name), zap.Error(err))
		}
	}

	return c.JSON(entity.NewSuccessResponse(fiber.Map{"added": added}, "File imported"))
}

// RemoveFile godoc
// @Summary Remove one attached file by position
// @Tags drafts
// @Produce json
// @Success 200 {object} entity.APIResponse
// @Router /api/v1/drafts/{id}/files/{index} [delete]
func (h *DraftHandler) RemoveFile(c *fiber.Ctx) error {
	id := c.Params("id")

	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "Invalid file index"),
		)
	}

	if err := h.editor.RemoveFile(id, index); err != nil {
		return h.editorError(c, err)
	}
	return c.JSON(entity.NewSuccessResponse(nil, "File removed"))
}

// ClearFiles godoc
// @Summary Remove all attached files from a draft
// @Tags drafts
// @Produce json
// @Success 200 {object} entity.APIResponse
// @Router /api/v1/drafts/{id}/files [delete]
func (h *DraftHandler) ClearFiles(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.editor.ClearFiles(id); err != nil {
		return h.editorError(c, err)
	}
	return c.JSON(entity.NewSuccessResponse(nil, "Files cleared"))
}

// ListInbox godoc
// @Summary List stageable inbox files
// @Tags drafts
// @Produce json
// @Success 200 {object} entity.APIResponse
// @Router /api/v1/inbox [get]
func (h *DraftHandler) ListInbox(c *fiber.Ctx) error {
	files, err := h.filestore.List()
	if err != nil {
		h.logger.Error("Failed to list inbox", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(
			entity.NewErrorResponse("INTERNAL_ERROR", err.Error()),
		)
	}
	return c.JSON(entity.NewSuccessResponse(files, "Inbox listed"))
}

func (h *DraftHandler) editorError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, editor.ErrDraftNotFound):
		return c.Status(fiber.StatusNotFound).JSON(
			entity.NewErrorResponse("NOT_FOUND", err.Error()),
		)
	case errors.Is(err, editor.ErrFileIndexOutOfRange):
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", err.Error()),
		)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", err.Error()),
		)
	}
}
