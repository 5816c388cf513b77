package domain

// Role is the authorization tier carried in a session token.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Claim is the authenticated principal embedded in a session token.
// It is a value type; a role change requires issuing a new token.
type Claim struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	UserRole Role   `json:"userRole"`
}

// IsAdmin reports whether the claim carries the admin role.
func (c Claim) IsAdmin() bool {
	return c.UserRole == RoleAdmin
}
