package entity

import "strconv"

// Document categories. The Master sheet may extend this set, but serial
// numbering only distinguishes these three.
const (
	CategoryPersonal = "Personal"
	CategoryCompany  = "Company"
	CategoryDirector = "Director"
)

// DefaultCategories returns the baseline category set used when the Master
// sheet is unreachable or empty.
func DefaultCategories() []string {
	return []string{CategoryPersonal, CategoryCompany, CategoryDirector}
}

// AttachedFile is a file held in memory on a draft until submission.
type AttachedFile struct {
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
	Content  []byte `json:"-"`
}

// Key identifies a file for duplicate detection within one draft.
func (f AttachedFile) Key() string {
	return f.Name + "_" + strconv.FormatInt(f.Size, 10)
}

// DocumentDraft is one in-progress document row being composed in the editor.
type DocumentDraft struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	TypeTag      string         `json:"type"`
	Category     string         `json:"category"`
	SubCategory  string         `json:"sub_category"`
	EntityName   string         `json:"entity_name"`
	Files        []AttachedFile `json:"files"`
	NeedsRenewal bool           `json:"needs_renewal"`
	RenewalDate  string         `json:"renewal_date"`
	RenewalTime  string         `json:"renewal_time"`
}

// NewDraft returns a draft with default field values.
func NewDraft(id string) DocumentDraft {
	return DocumentDraft{
		ID:       id,
		Category: CategoryPersonal,
		Files:    []AttachedFile{},
	}
}

// Clone returns a deep copy; the file slice is duplicated so callers can
// mutate their copy without racing the editor.
func (d DocumentDraft) Clone() DocumentDraft {
	out := d
	out.Files = make([]AttachedFile, len(d.Files))
	copy(out.Files, d.Files)
	return out
}

// TotalFileBytes sums the byte sizes of all attached files.
func (d DocumentDraft) TotalFileBytes() int64 {
	var total int64
	for _, f := range d.Files {
		total += f.Size
	}
	return total
}
