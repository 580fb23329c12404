package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Username     string         `json:"username" gorm:"unique;not null"`
	Email        string         `json:"email" gorm:"unique;not null"`
	Phone        string         `json:"phone" gorm:"unique;not null"`
	PasswordHash string         `json:"-" gorm:"not null"`
	Role         string         `json:"role" gorm:"default:'customer'"` // admin, customer
	Status       string         `json:"status" gorm:"default:'Pending'"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

func (User) TableName() string {
	return "user_profiles"
}

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleCustomer UserRole = "customer"
)

// Customer approval status. New signups start Pending and cannot sign in
// until an admin approves them.
type UserStatus string

const (
	UserPending  UserStatus = "Pending"
	UserApproved UserStatus = "Approved"
	UserBlocked  UserStatus = "Blocked"
)

func (u *User) IsAdmin() bool {
	return u.Role == string(RoleAdmin)
}
