package middleware

import "github.com/gin-gonic/gin"

// sessionKey is the key used to store the authenticated session in the
// request context. Using a custom type prevents collisions.
const sessionKey = contextKey("session")

// Session is the authenticated identity extracted from a validated token.
type Session struct {
	UserID string
	Email  string
	Name   string
	Roles  []string
}

// CreatedByLabel resolves the audit label for a session: email first, then
// display name, then the literal "Unknown".
func (s Session) CreatedByLabel() string {
	if s.Email != "" {
		return s.Email
	}
	if s.Name != "" {
		return s.Name
	}
	return "Unknown"
}

// GetSessionFromContext retrieves the authenticated session from the Gin
// context. It returns the session and a boolean indicating if it was found.
func GetSessionFromContext(c *gin.Context) (Session, bool) {
	sessionVal, exists := c.Get(string(sessionKey))
	if !exists {
		// Check in the request context as well
		if v := c.Request.Context().Value(sessionKey); v != nil {
			if s, ok := v.(Session); ok {
				return s, true
			}
		}
		return Session{}, false
	}

	session, ok := sessionVal.(Session)
	if !ok {
		return Session{}, false
	}
	return session, true
}