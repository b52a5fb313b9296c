package models

import "time"

const (
	RoleFarmer  = "farmer"
	RoleOfficer = "officer"
	RoleStudent = "student"
	RoleDemo    = "demo"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Role      string    `gorm:"not null;default:farmer" json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (User) TableName() string { return "users" }

// ValidRole reports whether role is one of the four supported user modes.
func ValidRole(role string) bool {
	switch role {
	case RoleFarmer, RoleOfficer, RoleStudent, RoleDemo:
		return true
	}
	return false
}

// IsAuditRole reports whether analyses for this role are persisted to the
// prediction log. Farmer and student analyses are never logged.
func IsAuditRole(role string) bool {
	return role == RoleOfficer || role == RoleDemo
}
