package editor

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"docregistry/internal/domain/entity"
)

var (
	// ErrDraftNotFound is returned when no draft has the given id.
	ErrDraftNotFound = errors.New("draft not found")
	// ErrFileIndexOutOfRange is returned for a bad file index.
	ErrFileIndexOutOfRange = errors.New("file index out of range")
)

// Editor holds the ordered list of document drafts being composed. Every
// mutation replaces the whole list with a new list differing in exactly one
// element, so Snapshot always observes a fully consistent state. The list
// never drops below one draft.
type Editor struct {
	mu     sync.Mutex
	drafts []entity.DocumentDraft
	logger *zap.Logger
}

func NewEditor(logger *zap.Logger) *Editor {
	return &Editor{
		drafts: []entity.DocumentDraft{entity.NewDraft(uuid.NewString())},
		logger: logger,
	}
}

// AddRow appends a new draft with default field values and returns it.
func (e *Editor) AddRow() entity.DocumentDraft {
	e.mu.Lock()
	defer e.mu.Unlock()

	draft := entity.NewDraft(uuid.NewString())
	next := make([]entity.DocumentDraft, 0, len(e.drafts)+1)
	next = append(next, e.drafts...)
	next = append(next, draft)
	e.drafts = next

	return draft.Clone()
}

// RemoveRow removes the draft with the given id. Removing the sole remaining
// draft is a no-op; the returned bool reports whether a draft was removed.
func (e *Editor) RemoveRow(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.drafts) <= 1 {
		return false
	}

	next := make([]entity.DocumentDraft, 0, len(e.drafts))
	removed := false
	for _, d := range e.drafts {
		if d.ID == id {
			removed = true
			continue
		}
		next = append(next, d)
	}
	if removed {
		e.drafts = next
	}
	return removed
}

// UpdateField replaces one scalar field on one draft. No validation happens
// here; required fields are enforced at submission.
func (e *Editor) UpdateField(id, field, value string) error {
	return e.replace(id, func(d entity.DocumentDraft) (entity.DocumentDraft, error) {
		switch field {
		case "name":
			d.Name = value
		case "type":
			d.TypeTag = value
		case "sub_category":
			d.SubCategory = value
		case "entity_name":
			d.EntityName = value
		case "renewal_date":
			d.RenewalDate = value
		case "renewal_time":
			d.RenewalTime = value
		default:
			return d, fmt.Errorf("unknown field: %s", field)
		}
		return d, nil
	})
}

// SetCategory changes a draft's category and clears its entity name, whose
// meaning depends on the category.
func (e *Editor) SetCategory(id, category string) error {
	return e.replace(id, func(d entity.DocumentDraft) (entity.DocumentDraft, error) {
		d.Category = category
		d.EntityName = ""
		return d, nil
	})
}

// ToggleRenewal sets the renewal flag. Date and time fields are kept when
// disabling; they just stop being required and are excluded from the row.
func (e *Editor) ToggleRenewal(id string, enabled bool) error {
	return e.replace(id, func(d entity.DocumentDraft) (entity.DocumentDraft, error) {
		d.NeedsRenewal = enabled
		return d, nil
	})
}

// AddFiles appends files to a draft, silently dropping any whose (name, size)
// pair is already attached. Returns the number of files actually added.
func (e *Editor) AddFiles(id string, files []entity.AttachedFile) (int, error) {
	added := 0
	err := e.replace(id, func(d entity.DocumentDraft) (entity.DocumentDraft, error) {
		existing := make(map[string]bool, len(d.Files))
		for _, f := range d.Files {
			existing[f.Key()] = true
		}

		next := make([]entity.AttachedFile, len(d.Files), len(d.Files)+len(files))
		copy(next, d.Files)
		for _, f := range files {
			if existing[f.Key()] {
				continue
			}
			existing[f.Key()] = true
			next = append(next, f)
			added++
		}
		d.Files = next
		return d, nil
	})
	return added, err
}

// RemoveFile removes one attached file by position.
func (e *Editor) RemoveFile(id string, index int) error {
	return e.replace(id, func(d entity.DocumentDraft) (entity.DocumentDraft, error) {
		if index < 0 || index >= len(d.Files) {
			return d, ErrFileIndexOutOfRange
		}
		next := make([]entity.AttachedFile, 0, len(d.Files)-1)
		next = append(next, d.Files[:index]...)
		next = append(next, d.Files[index+1:]...)
		d.Files = next
		return d, nil
	})
}

// ClearFiles empties a draft's file list.
func (e *Editor) ClearFiles(id string) error {
	return e.replace(id, func(d entity.DocumentDraft) (entity.DocumentDraft, error) {
		d.Files = []entity.AttachedFile{}
		return d, nil
	})
}

// Snapshot returns a deep copy of the current draft list.
func (e *Editor) Snapshot() []entity.DocumentDraft {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]entity.DocumentDraft, len(e.drafts))
	for i, d := range e.drafts {
		out[i] = d.Clone()
	}
	return out
}

// Reset returns the editor to its initial single-empty-draft state.
func (e *Editor) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.drafts = []entity.DocumentDraft{entity.NewDraft(uuid.NewString())}
	e.logger.Info("Editor reset to initial state")
}

// TotalFiles counts attached files across all drafts.
func (e *Editor) TotalFiles() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	total := 0
	for _, d := range e.drafts {
		total += len(d.Files)
	}
	return total
}

// replace swaps the draft list for a new one in which the draft with the
// given id has been transformed by fn. All other elements are untouched.
func (e *Editor) replace(id string, fn func(entity.DocumentDraft) (entity.DocumentDraft, error)) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, d := range e.drafts {
		if d.ID != id {
			continue
		}

		updated, err := fn(d.Clone())
		if err != nil {
			return err
		}

		next := make([]entity.DocumentDraft, len(e.drafts))
		copy(next, e.drafts)
		next[i] = updated
		e.drafts = next
		return nil
	}

	return ErrDraftNotFound
}
