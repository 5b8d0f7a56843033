package models

import (
	"fmt"
	"regexp"
	"time"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9.+_-]+@[a-zA-Z0-9._-]+\.[a-zA-Z]+$`)

// User represents a registered account
type User struct {
	ID           uint   `gorm:"primaryKey"`
	FirstName    string `gorm:"column:first_name;size:255"`
	LastName     string `gorm:"column:last_name;size:255"`
	Email        string `gorm:"size:255;uniqueIndex"`
	PasswordHash string `gorm:"column:password_hash;size:255"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName overrides the table name used by GORM
func (User) TableName() string {
	return "users"
}

// FullName returns the display name shown on posts and profiles
func (u User) FullName() string {
	return fmt.Sprintf("%s %s", u.FirstName, u.LastName)
}

// Registration holds the register form fields before a User exists
type Registration struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Errors evaluates every rule (no short-circuit) and returns the
// messages in form order. An empty slice means the form is valid.
func (r Registration) Errors() []string {
	var errs []string
	if len(r.FirstName) < 2 {
		errs = append(errs, "First name must be longer")
	}
	if len(r.LastName) < 2 {
		errs = append(errs, "Last name must be longer")
	}
	if !emailRegex.MatchString(r.Email) {
		errs = append(errs, "Email Address is invalid")
	}
	if r.Password != r.ConfirmPassword {
		errs = append(errs, "Passwords do not match")
	}
	if len(r.Password) < 8 {
		errs = append(errs, "Password must be longer than 8 characters")
	}
	return errs
}
