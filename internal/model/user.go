package model

import (
	"time"
)

type Role string

const (
	RoleStudent    Role = "Student"
	RoleNonStudent Role = "Non-Student"
	RoleGuest      Role = "Guest"
	RoleTrainer    Role = "Trainer"
)

var Roles = []Role{RoleStudent, RoleNonStudent, RoleGuest, RoleTrainer}

func (r Role) Valid() bool {
	for _, role := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

type User struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       Role      `json:"role"`
	StudentID  string    `json:"studentId,omitempty"` // Admission number, students only
	ProfilePic string    `json:"profilePic,omitempty"`
	Bio        string    `json:"bio,omitempty"`
	Points     int       `json:"points"`
	JoinedAt   time.Time `json:"joinedAt"`

	// Computed fields (not persisted)
	ProfilePicURL string `json:"-"`
}

func (u *User) IsTrainer() bool {
	return u.Role == RoleTrainer
}

// Actor returns the identity used when this user mutates records.
func (u *User) Actor() Actor {
	return Actor{UserID: u.ID, Role: u.Role}
}
