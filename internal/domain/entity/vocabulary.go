package entity

import "strings"

// Vocabulary is the document-type and category vocabulary driving the form
// selects. Fallback is set when the Master sheet could not be used and the
// defaults were substituted.
type Vocabulary struct {
	Types      []string `json:"types"`
	Categories []string `json:"categories"`
	Fallback   bool     `json:"fallback"`
}

// DefaultVocabulary returns the vocabulary used when the Master sheet is
// unreachable: no types, baseline categories.
func DefaultVocabulary() *Vocabulary {
	return &Vocabulary{
		Types:      []string{},
		Categories: DefaultCategories(),
		Fallback:   true,
	}
}

// ParseMasterRows builds a vocabulary from raw Master sheet rows. The first
// row is a header; column 0 holds document types, column 1 categories.
// Fetched categories are merged after the defaults, never replacing them.
func ParseMasterRows(rows [][]string) *Vocabulary {
	types := dedupeColumn(rows, 0)
	cats := dedupeColumn(rows, 1)

	merged := DefaultCategories()
	seen := make(map[string]bool, len(merged))
	for _, c := range merged {
		seen[c] = true
	}
	for _, c := range cats {
		if !seen[c] {
			seen[c] = true
			merged = append(merged, c)
		}
	}

	return &Vocabulary{
		Types:      types,
		Categories: merged,
	}
}

func dedupeColumn(rows [][]string, col int) []string {
	out := []string{}
	seen := make(map[string]bool)
	for i, row := range rows {
		if i == 0 || col >= len(row) {
			continue
		}
		v := strings.TrimSpace(row[col])
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
