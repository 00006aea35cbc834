package users

import "time"

type Role string

const (
	RoleOwner   Role = "owner"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
)

// User is the profile served by /users/me. The JSON names follow the
// production backend.
type User struct {
	ID        string     `json:"_id"`
	Email     string     `json:"email"`
	Name      string     `json:"name,omitempty"`
	Merchants []Merchant `json:"merchants"`
	Roles     []Role     `json:"roles"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type Merchant struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}
