package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"docregistry/internal/domain/entity"
)

// fakeSheetRepository records every remote call so tests can assert on call
// order, row contents and counter writeback.
type fakeSheetRepository struct {
	counters entity.SerialCounters

	masterRows       [][]string
	fetchMasterErr   error
	nextSerialsErr   error
	uploadErrFor     map[string]error
	insertErrAtRow   int
	insertErr        error
	updateSerialsErr error

	nextSerialsCalls int
	uploadedFiles    []string
	insertedRows     [][]string
	writtenBack      *entity.SerialCounters
}

func (f *fakeSheetRepository) FetchMaster(ctx context.Context) ([][]string, error) {
	if f.fetchMasterErr != nil {
		return nil, f.fetchMasterErr
	}
	return f.masterRows, nil
}

func (f *fakeSheetRepository) NextSerials(ctx context.Context) (*entity.SerialCounters, error) {
	f.nextSerialsCalls++
	if f.nextSerialsErr != nil {
		return nil, f.nextSerialsErr
	}
	c := f.counters
	return &c, nil
}

func (f *fakeSheetRepository) UpdateSerials(ctx context.Context, counters *entity.SerialCounters) error {
	if f.updateSerialsErr != nil {
		return f.updateSerialsErr
	}
	c := *counters
	f.writtenBack = &c
	return nil
}

func (f *fakeSheetRepository) UploadFile(ctx context.Context, file entity.AttachedFile) (string, error) {
	if err, ok := f.uploadErrFor[file.Name]; ok {
		return "", err
	}
	f.uploadedFiles = append(f.uploadedFiles, file.Name)
	return "https://drive/" + file.Name, nil
}

func (f *fakeSheetRepository) InsertRow(ctx context.Context, row []string) error {
	if f.insertErr != nil && len(f.insertedRows) == f.insertErrAtRow {
		return f.insertErr
	}
	f.insertedRows = append(f.insertedRows, row)
	return nil
}

func newTestSubmitUsecase(repo *fakeSheetRepository) SubmitUsecase {
	return &submitUsecase{
		repo:   repo,
		logger: zap.NewNop(),
		now: func() time.Time {
			return time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)
		},
	}
}

func validTestDraft(name, category string, files ...entity.AttachedFile) entity.DocumentDraft {
	return entity.DocumentDraft{
		ID:         "draft-" + name,
		Name:       name,
		TypeTag:    "Identity",
		Category:   category,
		EntityName: "Jane Roe",
		Files:      files,
	}
}

func TestSubmit_FullBatch(t *testing.T) {
	repo := &fakeSheetRepository{
		counters: entity.SerialCounters{Personal: 5, Company: 10, Director: 1},
	}
	uc := newTestSubmitUsecase(repo)

	drafts := []entity.DocumentDraft{
		validTestDraft("Passport", entity.CategoryPersonal,
			entity.AttachedFile{Name: "front.jpg", Size: 1024},
			entity.AttachedFile{Name: "back.jpg", Size: 2048},
		),
		validTestDraft("Lease", entity.CategoryCompany,
			entity.AttachedFile{Name: "lease.pdf", Size: 4096},
		),
	}

	result, err := uc.Submit(context.Background(), drafts)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Documents)
	assert.Equal(t, 3, result.Files)
	assert.Equal(t, 3, result.Uploaded)
	assert.Equal(t, []string{"PN-005", "CN-010"}, result.Serials)

	require.Len(t, repo.insertedRows, 2)
	first := repo.insertedRows[0]
	assert.Equal(t, "05/03/2024 14:30", first[entity.ColTimestamp])
	assert.Equal(t, "PN-005", first[entity.ColSerial])
	assert.Equal(t, "https://drive/front.jpg", first[entity.ColImage1])
	assert.Equal(t, "https://drive/back.jpg", first[entity.ColImage2])

	second := repo.insertedRows[1]
	assert.Equal(t, "05/03/2024 14:30", second[entity.ColTimestamp])
	assert.Equal(t, "CN-010", second[entity.ColSerial])

	// Only counters of used categories advance
	require.NotNil(t, repo.writtenBack)
	assert.Equal(t, 6, repo.writtenBack.Personal)
	assert.Equal(t, 11, repo.writtenBack.Company)
	assert.Equal(t, 1, repo.writtenBack.Director)

	assert.Equal(t, entity.SerialCounters{Personal: 6, Company: 11, Director: 1}, result.Counters)
}

func TestSubmit_NoAttachments(t *testing.T) {
	repo := &fakeSheetRepository{}
	uc := newTestSubmitUsecase(repo)

	drafts := []entity.DocumentDraft{
		validTestDraft("Passport", entity.CategoryPersonal),
	}

	_, err := uc.Submit(context.Background(), drafts)
	assert.ErrorIs(t, err, ErrNoAttachments)

	// Rejected before any remote call
	assert.Zero(t, repo.nextSerialsCalls)
	assert.Empty(t, repo.uploadedFiles)
}

func TestSubmit_ValidationFailure(t *testing.T) {
	repo := &fakeSheetRepository{}
	uc := newTestSubmitUsecase(repo)

	missingName := validTestDraft("", entity.CategoryPersonal,
		entity.AttachedFile{Name: "a.jpg", Size: 1},
	)
	renewalWithoutDate := validTestDraft("Permit", entity.CategoryCompany,
		entity.AttachedFile{Name: "b.jpg", Size: 1},
	)
	renewalWithoutDate.NeedsRenewal = true

	for _, drafts := range [][]entity.DocumentDraft{
		{missingName},
		{renewalWithoutDate},
	} {
		_, err := uc.Submit(context.Background(), drafts)
		require.Error(t, err)

		var fieldErrs validation.Errors
		assert.ErrorAs(t, err, &fieldErrs)
		assert.Zero(t, repo.nextSerialsCalls)
	}
}

func TestSubmit_NextSerialsFailureIsFatal(t *testing.T) {
	repo := &fakeSheetRepository{nextSerialsErr: errors.New("script unreachable")}
	uc := newTestSubmitUsecase(repo)

	drafts := []entity.DocumentDraft{
		validTestDraft("Passport", entity.CategoryPersonal,
			entity.AttachedFile{Name: "a.jpg", Size: 1},
		),
	}

	_, err := uc.Submit(context.Background(), drafts)
	require.Error(t, err)
	assert.Empty(t, repo.uploadedFiles)
	assert.Empty(t, repo.insertedRows)
}

func TestSubmit_FailedUploadKeepsSlot(t *testing.T) {
	repo := &fakeSheetRepository{
		counters:     entity.SerialCounters{Personal: 1},
		uploadErrFor: map[string]error{"middle.jpg": errors.New("413 too large")},
	}
	uc := newTestSubmitUsecase(repo)

	drafts := []entity.DocumentDraft{
		validTestDraft("Passport", entity.CategoryPersonal,
			entity.AttachedFile{Name: "first.jpg", Size: 1},
			entity.AttachedFile{Name: "middle.jpg", Size: 2},
			entity.AttachedFile{Name: "last.jpg", Size: 3},
		),
	}

	result, err := uc.Submit(context.Background(), drafts)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Uploaded)

	require.Len(t, repo.insertedRows, 1)
	row := repo.insertedRows[0]
	assert.Equal(t, "https://drive/first.jpg", row[entity.ColImage1])
	assert.Equal(t, "", row[entity.ColImage2])
	assert.Equal(t, "https://drive/last.jpg", row[entity.ColImage3])
}

func TestSubmit_InsertFailureAbortsRemainingBatch(t *testing.T) {
	repo := &fakeSheetRepository{
		counters:       entity.SerialCounters{Personal: 1},
		insertErr:      errors.New("insert rejected"),
		insertErrAtRow: 1,
	}
	uc := newTestSubmitUsecase(repo)

	drafts := []entity.DocumentDraft{
		validTestDraft("First", entity.CategoryPersonal,
			entity.AttachedFile{Name: "a.jpg", Size: 1},
		),
		validTestDraft("Second", entity.CategoryPersonal,
			entity.AttachedFile{Name: "b.jpg", Size: 1},
		),
		validTestDraft("Third", entity.CategoryPersonal,
			entity.AttachedFile{Name: "c.jpg", Size: 1},
		),
	}

	_, err := uc.Submit(context.Background(), drafts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Second")

	// The first row stays committed; the third draft is never attempted
	require.Len(t, repo.insertedRows, 1)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, repo.uploadedFiles)
	assert.Nil(t, repo.writtenBack)
}

func TestSubmit_CounterWritebackFailureIsNotFatal(t *testing.T) {
	repo := &fakeSheetRepository{
		counters:         entity.SerialCounters{Personal: 1},
		updateSerialsErr: errors.New("write denied"),
	}
	uc := newTestSubmitUsecase(repo)

	drafts := []entity.DocumentDraft{
		validTestDraft("Passport", entity.CategoryPersonal,
			entity.AttachedFile{Name: "a.jpg", Size: 1},
		),
	}

	result, err := uc.Submit(context.Background(), drafts)
	require.NoError(t, err)
	assert.Equal(t, []string{"PN-001"}, result.Serials)
	require.Len(t, repo.insertedRows, 1)
}
