package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatBatchTimestamp(t *testing.T) {
	ts := time.Date(2024, 3, 5, 14, 30, 45, 0, time.UTC)
	assert.Equal(t, "05/03/2024 14:30", FormatBatchTimestamp(ts))
}

func TestDocumentDraft_RenewalDateTime(t *testing.T) {
	tests := []struct {
		name     string
		draft    DocumentDraft
		expected string
	}{
		{
			name: "date and time combined in sheet format",
			draft: DocumentDraft{
				NeedsRenewal: true,
				RenewalDate:  "2024-03-05",
				RenewalTime:  "14:30",
			},
			expected: "05/03/2024 14:30",
		},
		{
			name: "renewal disabled yields empty string",
			draft: DocumentDraft{
				NeedsRenewal: false,
				RenewalDate:  "2024-03-05",
				RenewalTime:  "14:30",
			},
			expected: "",
		},
		{
			name: "missing date yields empty string",
			draft: DocumentDraft{
				NeedsRenewal: true,
				RenewalTime:  "14:30",
			},
			expected: "",
		},
		{
			name: "missing time yields empty string",
			draft: DocumentDraft{
				NeedsRenewal: true,
				RenewalDate:  "2024-03-05",
			},
			expected: "",
		},
		{
			name: "unparseable date passes through",
			draft: DocumentDraft{
				NeedsRenewal: true,
				RenewalDate:  "next week",
				RenewalTime:  "09:00",
			},
			expected: "next week 09:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.draft.RenewalDateTime())
		})
	}
}

func TestDocumentDraft_TotalSizeLabel(t *testing.T) {
	draft := DocumentDraft{
		Files: []AttachedFile{
			{Name: "a.pdf", Size: 1_048_576},
			{Name: "b.png", Size: 1_482_686},
		},
	}
	assert.Equal(t, "2.41 MB", draft.TotalSizeLabel())

	empty := DocumentDraft{}
	assert.Equal(t, "0.00 MB", empty.TotalSizeLabel())
}

func TestBuildSubmittedRow(t *testing.T) {
	draft := DocumentDraft{
		Name:         "Passport",
		TypeTag:      "Identity",
		Category:     CategoryPersonal,
		SubCategory:  "Travel",
		EntityName:   "Jane Roe",
		NeedsRenewal: true,
		RenewalDate:  "2025-01-15",
		RenewalTime:  "09:00",
		Files: []AttachedFile{
			{Name: "front.jpg", Size: 1024},
			{Name: "back.jpg", Size: 2048},
			{Name: "visa.jpg", Size: 4096},
		},
	}
	urls := []string{"https://drive/front", "", "https://drive/visa"}

	row := BuildSubmittedRow("05/03/2024 14:30", "PN-005", draft, urls)

	require.Len(t, row, RowBaseFields)
	assert.Equal(t, "05/03/2024 14:30", row[ColTimestamp])
	assert.Equal(t, "PN-005", row[ColSerial])
	assert.Equal(t, "Passport", row[ColName])
	assert.Equal(t, "Identity", row[ColType])
	assert.Equal(t, CategoryPersonal, row[ColCategory])
	assert.Equal(t, "Jane Roe", row[ColEntityName])
	assert.Equal(t, "Yes", row[ColNeedsRenewal])
	assert.Equal(t, "15/01/2025 09:00", row[ColRenewalDate])
	assert.Equal(t, "0.01 MB", row[ColTotalSize])
	assert.Equal(t, "Travel", row[ColSubCategory])

	// Failed upload keeps its slot empty so later URLs stay aligned
	assert.Equal(t, "https://drive/front", row[ColImage1])
	assert.Equal(t, "", row[ColImage2])
	assert.Equal(t, "https://drive/visa", row[ColImage3])
	assert.Equal(t, "", row[ColImage4])

	// Gap columns remain blank
	for _, i := range []int{5, 6, 12, 13, 14, 16} {
		assert.Empty(t, row[i], "column %d should be blank", i)
	}
}

func TestBuildSubmittedRow_OverflowImages(t *testing.T) {
	draft := DocumentDraft{
		Name:     "Lease Agreement",
		TypeTag:  "Contract",
		Category: CategoryCompany,
	}
	urls := []string{"u1", "u2", "u3", "u4", "u5", "u6"}

	row := BuildSubmittedRow("01/01/2024 00:00", "CN-001", draft, urls)

	require.Len(t, row, RowBaseFields+2)
	assert.Equal(t, "u1", row[ColImage1])
	assert.Equal(t, "u2", row[ColImage2])
	assert.Equal(t, "u3", row[ColImage3])
	assert.Equal(t, "u4", row[ColImage4])
	assert.Equal(t, "u5", row[RowBaseFields])
	assert.Equal(t, "u6", row[RowBaseFields+1])
	assert.Equal(t, "No", row[ColNeedsRenewal])
	assert.Equal(t, "", row[ColRenewalDate])
}
