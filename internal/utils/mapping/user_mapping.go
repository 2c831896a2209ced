package mapping

import (
	"github.com/ScaffRent/rental_logistics_app/internal/core/domain"
	"github.com/ScaffRent/rental_logistics_app/internal/models"
)

// ToModelUser converts a domain User to its row model.
func ToModelUser(d domain.User) models.User {
	var providerUserID *string
	if d.ProviderUserID != "" {
		providerUserID = &d.ProviderUserID
	}
	return models.User{
		UserID:         d.UserID,
		Username:       d.Username,
		PasswordHash:   d.PasswordHash,
		Name:           d.Name,
		Email:          d.Email,
		Roles:          d.Roles,
		AuthProvider:   string(d.AuthProvider),
		ProviderUserID: providerUserID,
		EmailVerified:  d.EmailVerified,
		AuditFields:    ToModelAuditFields(d.AuditFields),
		DeletedAt:      d.DeletedAt,
	}
}

// ToDomainUser converts a row model to a domain User.
func ToDomainUser(m models.User) domain.User {
	var providerUserID string
	if m.ProviderUserID != nil {
		providerUserID = *m.ProviderUserID
	}
	return domain.User{
		UserID:         m.UserID,
		Username:       m.Username,
		PasswordHash:   m.PasswordHash,
		Name:           m.Name,
		Email:          m.Email,
		Roles:          m.Roles,
		AuthProvider:   domain.AuthProvider(m.AuthProvider),
		ProviderUserID: providerUserID,
		EmailVerified:  m.EmailVerified,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
		DeletedAt:      m.DeletedAt,
	}
}
