package middleware_test

import (
	"testing"

	"github.com/ScaffRent/rental_logistics_app/internal/middleware"
	"github.com/stretchr/testify/assert"
)

func TestSession_CreatedByLabel(t *testing.T) {
	tests := []struct {
		name    string
		session middleware.Session
		want    string
	}{
		{
			name:    "email preferred",
			session: middleware.Session{Email: "jdoe@example.com", Name: "Jane Doe"},
			want:    "jdoe@example.com",
		},
		{
			name:    "name when email missing",
			session: middleware.Session{Name: "Jane Doe"},
			want:    "Jane Doe",
		},
		{
			name:    "unknown when both missing",
			session: middleware.Session{UserID: "some-id"},
			want:    "Unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.session.CreatedByLabel())
		})
	}
}
