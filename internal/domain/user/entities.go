package user

import (
	"errors"
	"time"
)

type Role string

const (
	RoleCustomer     Role = "customer"
	RoleAdmin        Role = "admin"
	RoleManager      Role = "manager"
	RoleVerification Role = "verification"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrInvalidRole    = errors.New("invalid role")
)

type User struct {
	// Numeric id from the customer_id sequence, shared by customers and
	// staff. This is the "customer id" quoted everywhere externally.
	ID           int64  `gorm:"primaryKey;column:id" json:"customer_id"`
	FullName     string `gorm:"size:120" json:"full_name"`
	Email        string `gorm:"size:190;uniqueIndex:ux_users_email" json:"email"`
	PasswordHash string `gorm:"size:120;column:password" json:"-"`
	Phone        string `gorm:"size:20" json:"phone,omitempty"`
	DOB          string `gorm:"size:10" json:"dob,omitempty"`
	Gender       string `gorm:"size:10" json:"gender,omitempty"`
	PANNumber    string `gorm:"size:16" json:"pan_number,omitempty"`
	Role         Role   `gorm:"size:16;index" json:"role"`

	IsActive      bool `gorm:"default:true" json:"is_active"`
	IsKYCVerified bool `gorm:"default:false" json:"is_kyc_verified"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (User) TableName() string { return "users" }
