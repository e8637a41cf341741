package repository

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"docregistry/internal/config"
	"docregistry/internal/domain/entity"
	"docregistry/internal/domain/repository"
	"docregistry/internal/infrastructure/script"
)

type sheetRepository struct {
	config *config.Config
	client script.Client
	logger *zap.Logger
}

func NewSheetRepository(cfg *config.Config, client script.Client, logger *zap.Logger) repository.SheetRepository {
	return &sheetRepository{
		config: cfg,
		client: client,
		logger: logger,
	}
}

func (r *sheetRepository) FetchMaster(ctx context.Context) ([][]string, error) {
	params := url.Values{}
	params.Set("sheet", r.config.Script.MasterSheet)

	var response entity.MasterResponse
	if err := r.client.Get(ctx, "fetch", params, &response); err != nil {
		return nil, fmt.Errorf("failed to fetch master sheet: %w", err)
	}
	if !response.Success {
		return nil, fmt.Errorf("master sheet fetch reported failure: %s", response.Error)
	}

	return response.Data, nil
}

func (r *sheetRepository) NextSerials(ctx context.Context) (*entity.SerialCounters, error) {
	var response entity.SerialsResponse
	if err := r.client.Get(ctx, "getNextSerials", nil, &response); err != nil {
		return nil, fmt.Errorf("failed to fetch serial numbers: %w", err)
	}
	if !response.Success {
		return nil, fmt.Errorf("serial fetch reported failure: %s", response.Error)
	}

	counters := response.NextSerials
	return &counters, nil
}

func (r *sheetRepository) UpdateSerials(ctx context.Context, counters *entity.SerialCounters) error {
	params := url.Values{}
	params.Set("personal", strconv.Itoa(counters.Personal))
	params.Set("company", strconv.Itoa(counters.Company))
	params.Set("director", strconv.Itoa(counters.Director))

	var response entity.ScriptResponse
	if err := r.client.Get(ctx, "updateSerials", params, &response); err != nil {
		return fmt.Errorf("failed to update serial numbers: %w", err)
	}
	if !response.Success {
		return fmt.Errorf("serial update reported failure: %s", response.Error)
	}

	return nil
}

func (r *sheetRepository) UploadFile(ctx context.Context, file entity.AttachedFile) (string, error) {
	fields := map[string]string{
		"folderId":   r.config.Script.FolderID,
		"fileName":   file.Name,
		"base64Data": base64.StdEncoding.EncodeToString(file.Content),
		"mimeType":   file.MimeType,
	}

	var response entity.UploadResponse
	if err := r.client.PostMultipart(ctx, "uploadImage", fields, &response); err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", file.Name, err)
	}
	if !response.Success || response.FileURL == "" {
		return "", fmt.Errorf("upload of %s reported failure: %s", file.Name, response.Error)
	}

	return response.FileURL, nil
}

func (r *sheetRepository) InsertRow(ctx context.Context, row []string) error {
	rowData, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("failed to marshal row data: %w", err)
	}

	form := url.Values{}
	form.Set("sheetName", r.config.Script.DocumentsSheet)
	form.Set("rowData", string(rowData))

	var response entity.ScriptResponse
	if err := r.client.PostForm(ctx, "insert", form, &response); err != nil {
		return fmt.Errorf("failed to insert row: %w", err)
	}
	if !response.Success {
		return fmt.Errorf("row insert reported failure: %s", response.Error)
	}

	return nil
}
