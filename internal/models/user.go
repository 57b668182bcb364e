package models

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleOrganizer Role = "organizer"
	RoleAdmin     Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleOrganizer || r == RoleAdmin
}

// CanManageEvents reports whether the role may create or edit events.
func (r Role) CanManageEvents() bool {
	return r == RoleOrganizer || r == RoleAdmin
}

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Balance      Cents     `json:"balance"`
	CreatedAt    time.Time `json:"createdAt"`
}
