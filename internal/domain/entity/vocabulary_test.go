package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMasterRows(t *testing.T) {
	tests := []struct {
		name           string
		rows           [][]string
		wantTypes      []string
		wantCategories []string
	}{
		{
			name: "header skipped, both columns read",
			rows: [][]string{
				{"Document Type", "Category"},
				{"Identity", "Personal"},
				{"Contract", "Company"},
				{"License", "Vendor"},
			},
			wantTypes:      []string{"Identity", "Contract", "License"},
			wantCategories: []string{"Personal", "Company", "Director", "Vendor"},
		},
		{
			name: "duplicates and whitespace collapsed",
			rows: [][]string{
				{"Document Type", "Category"},
				{" Identity ", "Personal"},
				{"Identity", " Personal "},
				{"", ""},
				{"Contract", "Personal"},
			},
			wantTypes:      []string{"Identity", "Contract"},
			wantCategories: []string{"Personal", "Company", "Director"},
		},
		{
			name: "ragged rows tolerated",
			rows: [][]string{
				{"Document Type"},
				{"Identity"},
				{"Contract", "Vendor"},
			},
			wantTypes:      []string{"Identity", "Contract"},
			wantCategories: []string{"Personal", "Company", "Director", "Vendor"},
		},
		{
			name:           "header only yields defaults",
			rows:           [][]string{{"Document Type", "Category"}},
			wantTypes:      []string{},
			wantCategories: []string{"Personal", "Company", "Director"},
		},
		{
			name:           "empty sheet yields defaults",
			rows:           [][]string{},
			wantTypes:      []string{},
			wantCategories: []string{"Personal", "Company", "Director"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vocab := ParseMasterRows(tt.rows)

			assert.Equal(t, tt.wantTypes, vocab.Types)
			assert.Equal(t, tt.wantCategories, vocab.Categories)
			assert.False(t, vocab.Fallback)
		})
	}
}

func TestDefaultVocabulary(t *testing.T) {
	vocab := DefaultVocabulary()

	assert.Empty(t, vocab.Types)
	assert.Equal(t, []string{"Personal", "Company", "Director"}, vocab.Categories)
	assert.True(t, vocab.Fallback)
}
