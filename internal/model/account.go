package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Role is the access tier of an account.
type Role string

// Enumerated roles. Stored strings may vary in case, so every read and
// write goes through NormalizeRole at the model boundary.
const (
	RoleClient   Role = "Client"
	RoleEmployee Role = "Employee"
	RoleAdmin    Role = "Admin"
)

// NormalizeRole maps an arbitrarily cased role string onto the enumerated
// set. Unknown values collapse to Client.
func NormalizeRole(r Role) Role {
	switch strings.ToLower(string(r)) {
	case "employee":
		return RoleEmployee
	case "admin":
		return RoleAdmin
	default:
		return RoleClient
	}
}

// Is reports whether the role matches any of the given roles.
// Both sides are assumed already normalized.
func (r Role) Is(roles ...Role) bool {
	for _, candidate := range roles {
		if r == candidate {
			return true
		}
	}
	return false
}

// Account represents a registered visitor of the dealership site.
type Account struct {
	ID           uint      `json:"account_id" gorm:"primaryKey"`
	FirstName    string    `json:"account_firstname" gorm:"size:255;not null"`
	LastName     string    `json:"account_lastname" gorm:"size:255;not null"`
	Email        string    `json:"account_email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         Role      `json:"account_type" gorm:"size:50;default:'Client';index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Reviews []Review `json:"reviews,omitempty" gorm:"foreignKey:AccountID"`
}

// BeforeSave normalizes role and email casing before any write.
func (a *Account) BeforeSave(tx *gorm.DB) error {
	a.Role = NormalizeRole(a.Role)
	a.Email = strings.ToLower(strings.TrimSpace(a.Email))
	return nil
}

// AfterFind normalizes the role on every read so call sites never have to.
func (a *Account) AfterFind(tx *gorm.DB) error {
	a.Role = NormalizeRole(a.Role)
	return nil
}
