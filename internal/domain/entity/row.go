package entity

import (
	"fmt"
	"time"
)

// Column positions of the Documents sheet. The sheet is written positionally,
// so this layout is a wire contract and must not be reordered.
const (
	ColTimestamp    = 0
	ColSerial       = 1
	ColName         = 2
	ColType         = 3
	ColCategory     = 4
	ColEntityName   = 7
	ColNeedsRenewal = 8
	ColRenewalDate  = 9
	ColTotalSize    = 10
	ColImage1       = 11
	ColSubCategory  = 15
	ColImage2       = 17
	ColImage3       = 18
	ColImage4       = 19

	// RowBaseFields is the fixed field count before any overflow image URLs.
	RowBaseFields = 20
)

// batchTimestampLayout is the shared timestamp written into column A.
const batchTimestampLayout = "02/01/2006 15:04"

// FormatBatchTimestamp renders the timestamp shared by all rows of one batch.
func FormatBatchTimestamp(t time.Time) string {
	return t.Format(batchTimestampLayout)
}

// RenewalDateTime combines the renewal date and time fields into the
// "DD/MM/YYYY HH:MM" sheet format. Empty unless renewal is enabled and both
// fields are set. A date that does not parse as YYYY-MM-DD is passed through
// unchanged rather than dropped.
func (d DocumentDraft) RenewalDateTime() string {
	if !d.NeedsRenewal || d.RenewalDate == "" || d.RenewalTime == "" {
		return ""
	}
	date := d.RenewalDate
	if t, err := time.Parse("2006-01-02", d.RenewalDate); err == nil {
		date = t.Format("02/01/2006")
	}
	return date + " " + d.RenewalTime
}

// TotalSizeLabel renders the combined attachment size, e.g. "2.41 MB".
func (d DocumentDraft) TotalSizeLabel() string {
	mb := float64(d.TotalFileBytes()) / 1024 / 1024
	return fmt.Sprintf("%.2f MB", mb)
}

// BuildSubmittedRow assembles the fixed-position row for one draft.
// uploadedURLs is positionally aligned with the draft's file list; failed
// uploads appear as empty strings and keep their slot.
func BuildSubmittedRow(timestamp, serial string, d DocumentDraft, uploadedURLs []string) []string {
	urlAt := func(i int) string {
		if i < len(uploadedURLs) {
			return uploadedURLs[i]
		}
		return ""
	}

	needsRenewal := "No"
	if d.NeedsRenewal {
		needsRenewal = "Yes"
	}

	row := make([]string, RowBaseFields, RowBaseFields+len(uploadedURLs))
	row[ColTimestamp] = timestamp
	row[ColSerial] = serial
	row[ColName] = d.Name
	row[ColType] = d.TypeTag
	row[ColCategory] = d.Category
	row[ColEntityName] = d.EntityName
	row[ColNeedsRenewal] = needsRenewal
	row[ColRenewalDate] = d.RenewalDateTime()
	row[ColTotalSize] = d.TotalSizeLabel()
	row[ColImage1] = urlAt(0)
	row[ColSubCategory] = d.SubCategory
	row[ColImage2] = urlAt(1)
	row[ColImage3] = urlAt(2)
	row[ColImage4] = urlAt(3)

	// Fifth and later images are appended after the fixed columns
	for i := 4; i < len(uploadedURLs); i++ {
		row = append(row, uploadedURLs[i])
	}

	return row
}
