package repository

import (
	"context"

	"docregistry/internal/domain/entity"
)

// SheetRepository abstracts the spreadsheet-backed store behind the Apps
// Script endpoint.
type SheetRepository interface {
	// FetchMaster returns the raw rows of the Master vocabulary sheet,
	// including the header row.
	FetchMaster(ctx context.Context) ([][]string, error)
	// NextSerials returns the next free serial number per category.
	NextSerials(ctx context.Context) (*entity.SerialCounters, error)
	// UpdateSerials writes the advanced counters back to the store.
	UpdateSerials(ctx context.Context, counters *entity.SerialCounters) error
	// UploadFile stores one file in the Drive folder and returns its URL.
	UploadFile(ctx context.Context, file entity.AttachedFile) (string, error)
	// InsertRow appends one fixed-position row to the Documents sheet.
	InsertRow(ctx context.Context, row []string) error
}
