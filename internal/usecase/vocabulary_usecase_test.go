package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"docregistry/internal/config"
)

func newTestVocabularyUsecase(repo *fakeSheetRepository) VocabularyUsecase {
	return NewVocabularyUsecase(&config.Config{}, repo, nil, zap.NewNop())
}

func TestVocabularyGet_FromMasterSheet(t *testing.T) {
	repo := &fakeSheetRepository{
		masterRows: [][]string{
			{"Document Type", "Category"},
			{"Identity", "Personal"},
			{"Contract", "Vendor"},
		},
	}
	uc := newTestVocabularyUsecase(repo)

	vocab := uc.Get(context.Background())
	require.NotNil(t, vocab)
	assert.Equal(t, []string{"Identity", "Contract"}, vocab.Types)
	assert.Equal(t, []string{"Personal", "Company", "Director", "Vendor"}, vocab.Categories)
	assert.False(t, vocab.Fallback)
}

func TestVocabularyGet_FallsBackWhenSheetUnavailable(t *testing.T) {
	repo := &fakeSheetRepository{fetchMasterErr: errors.New("script unreachable")}
	uc := newTestVocabularyUsecase(repo)

	vocab := uc.Get(context.Background())
	require.NotNil(t, vocab)
	assert.True(t, vocab.Fallback)
	assert.Empty(t, vocab.Types)
	assert.Equal(t, []string{"Personal", "Company", "Director"}, vocab.Categories)
}
