// Package user defines the account record and its persistence contract.
package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the persisted account record. PasswordHash is the encoded output
// of the credential hasher, never the plaintext, and is excluded from JSON.
type User struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null;size:64"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Phone        string    `json:"phone" gorm:"size:32"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Active       bool      `json:"active" gorm:"not null;default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName returns the database table name for the User model.
func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns a UUID primary key when none is set.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// PublicUser is the client-facing view of an account. It is the only shape
// handlers return; the password hash never appears in any output.
type PublicUser struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// Public returns the client-facing view of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Phone:     u.Phone,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}
}
