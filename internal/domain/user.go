package domain

import "time"

// User is the domain model for storefront accounts.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Claim builds the token claim for the user. The password hash is never carried.
func (u *User) Claim() Claim {
	return Claim{UserID: u.ID, UserName: u.Name, UserRole: u.Role}
}
