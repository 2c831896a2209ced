package pgsql

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextInSequence(t *testing.T) {
	testCases := []struct {
		name       string
		yearPrefix string
		last       string
		expected   string
	}{
		{
			name:       "Empty table starts at 001",
			yearPrefix: "REF-2026-",
			last:       "",
			expected:   "REF-2026-001",
		},
		{
			name:       "Increments highest suffix",
			yearPrefix: "REF-2026-",
			last:       "REF-2026-007",
			expected:   "REF-2026-008",
		},
		{
			name:       "Keeps zero padding across tens",
			yearPrefix: "REF-2026-",
			last:       "REF-2026-099",
			expected:   "REF-2026-100",
		},
		{
			name:       "Grows past three digits without truncation",
			yearPrefix: "REF-2026-",
			last:       "REF-2026-999",
			expected:   "REF-2026-1000",
		},
		{
			name:       "Unparseable suffix restarts the sequence",
			yearPrefix: "REF-2026-",
			last:       "REF-2026-draft",
			expected:   "REF-2026-001",
		},
		{
			name:       "Delivery request prefix",
			yearPrefix: "DR-2026-",
			last:       "DR-2026-012",
			expected:   "DR-2026-013",
		},
		{
			name:       "Credit note prefix",
			yearPrefix: "CN-2026-",
			last:       "CN-2026-001",
			expected:   "CN-2026-002",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, nextInSequence(tc.yearPrefix, tc.last))
		})
	}
}
