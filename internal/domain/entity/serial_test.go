package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatSerial(t *testing.T) {
	tests := []struct {
		name     string
		category string
		n        int
		expected string
	}{
		{
			name:     "personal single digit",
			category: CategoryPersonal,
			n:        7,
			expected: "PN-007",
		},
		{
			name:     "personal three digits",
			category: CategoryPersonal,
			n:        123,
			expected: "PN-123",
		},
		{
			name:     "company",
			category: CategoryCompany,
			n:        10,
			expected: "CN-010",
		},
		{
			name:     "director",
			category: CategoryDirector,
			n:        1,
			expected: "DN-001",
		},
		{
			name:     "unknown category uses director prefix",
			category: "Partnership",
			n:        42,
			expected: "DN-042",
		},
		{
			name:     "four digit counter is not truncated",
			category: CategoryCompany,
			n:        1234,
			expected: "CN-1234",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatSerial(tt.category, tt.n))
		})
	}
}

func TestSerialCounters_Allocate(t *testing.T) {
	counters := &SerialCounters{Personal: 5, Company: 10, Director: 2}

	assert.Equal(t, "PN-005", counters.Allocate(CategoryPersonal))
	assert.Equal(t, "PN-006", counters.Allocate(CategoryPersonal))
	assert.Equal(t, "CN-010", counters.Allocate(CategoryCompany))
	assert.Equal(t, "DN-002", counters.Allocate(CategoryDirector))

	// Unknown categories draw from the director sequence
	assert.Equal(t, "DN-003", counters.Allocate("Partnership"))

	assert.Equal(t, 7, counters.Personal)
	assert.Equal(t, 11, counters.Company)
	assert.Equal(t, 4, counters.Director)
}
