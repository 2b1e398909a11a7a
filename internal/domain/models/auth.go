package models

import "github.com/golang-jwt/jwt/v5"

// AdminClaims is the JWT claim set accepted on admin endpoints. The role is
// read from app_metadata.role, falling back to a top-level user_role claim.
type AdminClaims struct {
	jwt.RegisteredClaims
	Email       string                 `json:"email"`
	Name        string                 `json:"name,omitempty"`
	AppMetadata map[string]interface{} `json:"app_metadata,omitempty"`
	UserRole    string                 `json:"user_role,omitempty"`
	Role        string                 `json:"role"` // "authenticated" or "anon"
}

// GetUserID returns the user ID from the JWT subject claim.
func (c *AdminClaims) GetUserID() string {
	return c.Subject
}

// AppRole returns the application role granted to the user, or "".
func (c *AdminClaims) AppRole() string {
	if c.AppMetadata != nil {
		if role, ok := c.AppMetadata["role"].(string); ok && role != "" {
			return role
		}
	}
	return c.UserRole
}
