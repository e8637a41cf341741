package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/zap"

	"docregistry/internal/domain/entity"
	"docregistry/internal/domain/repository"
)

// ErrNoAttachments is returned when a batch carries no files at all. Checked
// before any network call is made.
var ErrNoAttachments = errors.New("at least one file must be attached before submitting")

// SubmitResult summarizes a fully committed batch.
type SubmitResult struct {
	Documents int                   `json:"documents"`
	Files     int                   `json:"files"`
	Uploaded  int                   `json:"uploaded"`
	Serials   []string              `json:"serials"`
	Counters  entity.SerialCounters `json:"counters"`
}

type SubmitUsecase interface {
	Submit(ctx context.Context, drafts []entity.DocumentDraft) (*SubmitResult, error)
}

type submitUsecase struct {
	repo   repository.SheetRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewSubmitUsecase(repo repository.SheetRepository, logger *zap.Logger) SubmitUsecase {
	return &submitUsecase{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

func validateDraft(d entity.DocumentDraft) error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Name, validation.Required),
		validation.Field(&d.TypeTag, validation.Required),
		validation.Field(&d.Category, validation.Required),
		validation.Field(&d.EntityName, validation.Required),
		validation.Field(&d.RenewalDate, validation.Required.When(d.NeedsRenewal)),
		validation.Field(&d.RenewalTime, validation.Required.When(d.NeedsRenewal)),
	)
}

// Submit runs the batch pipeline: fetch counters, then per draft upload files
// one at a time, allocate a serial, insert the row. Drafts are processed in
// list order with no concurrent remote calls. A failed insert aborts the
// remaining batch without rolling back rows already inserted.
func (u *submitUsecase) Submit(ctx context.Context, drafts []entity.DocumentDraft) (*SubmitResult, error) {
	totalFiles := 0
	for _, d := range drafts {
		totalFiles += len(d.Files)
	}
	if totalFiles == 0 {
		return nil, ErrNoAttachments
	}

	for i, d := range drafts {
		if err := validateDraft(d); err != nil {
			return nil, fmt.Errorf("document %d: %w", i+1, err)
		}
	}

	counters, err := u.repo.NextSerials(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get next serial numbers: %w", err)
	}

	// One timestamp shared by every row of the batch
	timestamp := entity.FormatBatchTimestamp(u.now())

	result := &SubmitResult{
		Documents: len(drafts),
		Files:     totalFiles,
		Serials:   make([]string, 0, len(drafts)),
	}

	for i, draft := range drafts {
		u.logger.Info("Processing document",
			zap.Int("index", i+1),
			zap.Int("total", len(drafts)),
			zap.String("name", draft.Name),
			zap.String("category", draft.Category),
			zap.Int("files", len(draft.Files)),
		)

		urls := u.uploadFiles(ctx, draft)
		for _, url := range urls {
			if url != "" {
				result.Uploaded++
			}
		}

		serial := counters.Allocate(draft.Category)
		row := entity.BuildSubmittedRow(timestamp, serial, draft, urls)

		if err := u.repo.InsertRow(ctx, row); err != nil {
			u.logger.Error("Row insert failed, aborting batch",
				zap.Int("index", i+1),
				zap.String("serial", serial),
				zap.Error(err),
			)
			return nil, fmt.Errorf("document %d (%s): %w", i+1, draft.Name, err)
		}

		result.Serials = append(result.Serials, serial)

		u.logger.Info("Document row inserted",
			zap.Int("index", i+1),
			zap.String("serial", serial),
		)
	}

	// Rows are committed at this point; a stale counter store only risks
	// serial reuse on a later batch, so failure here is logged, not fatal.
	if err := u.repo.UpdateSerials(ctx, counters); err != nil {
		u.logger.Warn("Failed to write back serial counters", zap.Error(err))
	}

	result.Counters = *counters

	u.logger.Info("Batch submitted",
		zap.Int("documents", result.Documents),
		zap.Int("files", result.Files),
		zap.Int("uploaded", result.Uploaded),
	)

	return result, nil
}

// uploadFiles uploads a draft's files strictly one at a time. The returned
// slice is positionally aligned with the file list: a failed upload keeps its
// slot as an empty string so column assignment stays deterministic.
func (u *submitUsecase) uploadFiles(ctx context.Context, draft entity.DocumentDraft) []string {
	urls := make([]string, 0, len(draft.Files))

	for i, file := range draft.Files {
		u.logger.Info("Uploading file",
			zap.Int("index", i+1),
			zap.Int("total", len(draft.Files)),
			zap.String("file", file.Name),
			zap.Int64("size", file.Size),
		)

		url, err := u.repo.UploadFile(ctx, file)
		if err != nil {
			u.logger.Warn("File upload failed, keeping empty slot",
				zap.String("file", file.Name),
				zap.Error(err),
			)
			urls = append(urls, "")
			continue
		}

		urls = append(urls, url)
	}

	return urls
}
