package models

import (
	"slices"
	"strings"
	"time"
	"unicode"
)

// Role is a console permission level attached to a user.
type Role string

const (
	RoleOwner   Role = "owner"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
)

// User is the profile returned by the backend for the signed-in operator.
// It is replaced wholesale on every resolution, never patched.
type User struct {
	ID        string     `json:"_id"`
	Email     string     `json:"email"`
	Name      string     `json:"name,omitempty"`
	Merchants []Merchant `json:"merchants"`
	Roles     []Role     `json:"roles"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Merchant is the restaurant a user is attached to. Only the fields the
// session needs are decoded; the CRUD screens talk to the backend directly.
type Merchant struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

// HasRole reports whether role is among the user's roles.
func (u User) HasRole(role Role) bool {
	return slices.Contains(u.Roles, role)
}

// Clone returns a deep copy so the caller's slices cannot alias ours.
func (u User) Clone() User {
	c := u
	c.Roles = slices.Clone(u.Roles)
	c.Merchants = slices.Clone(u.Merchants)
	return c
}

// DisplayName is the name shown in the console header.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return "Utilisateur"
}

// Initials is the two-letter avatar label: first letters of the first two
// words of the name, or the first two letters of the email.
func (u User) Initials() string {
	if words := strings.Fields(u.Name); len(words) > 0 {
		var b strings.Builder
		for _, w := range words[:min(2, len(words))] {
			b.WriteRune(unicode.ToUpper([]rune(w)[0]))
		}
		return b.String()
	}
	if u.Email != "" {
		r := []rune(u.Email)
		return strings.ToUpper(string(r[:min(2, len(r))]))
	}
	return "U"
}
