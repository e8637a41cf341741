package entity

import "fmt"

// SerialCounters holds the next free serial number per category. Fetched from
// the sheet at the start of a batch, advanced locally per inserted row, and
// written back once at the end.
type SerialCounters struct {
	Personal int `json:"personal"`
	Company  int `json:"company"`
	Director int `json:"director"`
}

// SerialPrefix maps a category to its two-letter serial prefix. Unrecognized
// categories are numbered from the Director sequence.
func SerialPrefix(category string) string {
	switch category {
	case CategoryPersonal:
		return "PN"
	case CategoryCompany:
		return "CN"
	case CategoryDirector:
		return "DN"
	default:
		return "DN"
	}
}

// FormatSerial renders a serial number, e.g. ("Personal", 7) -> "PN-007".
func FormatSerial(category string, n int) string {
	return fmt.Sprintf("%s-%03d", SerialPrefix(category), n)
}

// Allocate returns the serial number for the given category and advances the
// matching counter.
func (s *SerialCounters) Allocate(category string) string {
	var n int
	switch category {
	case CategoryPersonal:
		n = s.Personal
		s.Personal++
	case CategoryCompany:
		n = s.Company
		s.Company++
	default:
		n = s.Director
		s.Director++
	}
	return FormatSerial(category, n)
}
