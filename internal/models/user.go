package models

import "time"

// User is the row model for the users table. Roles are stored as a text[]
// column and scanned straight into the slice by pgx.
type User struct {
	UserID         string   `db:"user_id"`
	Username       string   `db:"username"`
	PasswordHash   string   `db:"password_hash"`
	Name           string   `db:"name"`
	Email          string   `db:"email"`
	Roles          []string `db:"roles"`
	AuthProvider   string   `db:"auth_provider"`
	ProviderUserID *string  `db:"provider_user_id"`
	EmailVerified  bool     `db:"email_verified"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
