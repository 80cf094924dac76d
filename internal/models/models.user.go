package models

import (
	"net/mail"
	"time"
)

type User struct {
	ID           string    `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	IsAdmin      bool      `json:"is_admin" db:"is_admin"`
	CreatedBy    *string   `json:"created_by,omitempty" db:"created_by"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// UserProfile is the outward projection of a User. Email and provenance are only
// readable by the user themself and by admins.
type UserProfile struct {
	ID        string    `json:"id" readxs:"user,self,admin"`
	Username  string    `json:"username" readxs:"user,self,admin"`
	Email     string    `json:"email" readxs:"self,admin"`
	IsAdmin   bool      `json:"is_admin" readxs:"user,self,admin"`
	CreatedBy string    `json:"created_by,omitempty" readxs:"admin"`
	CreatedAt time.Time `json:"created_at" readxs:"user,self,admin"`
}

// Profile converts a User into its outward projection
func (u *User) Profile() *UserProfile {
	p := &UserProfile{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
	if u.CreatedBy != nil {
		p.CreatedBy = *u.CreatedBy
	}
	return p
}

// LoginInput carries credentials for authentication
type LoginInput struct {
	Username string `json:"username" schema:"username"`
	Password string `json:"password" schema:"password"`
}

func (in *LoginInput) Validate() error {
	f := FieldErrors{}
	f.require("username", in.Username)
	f.require("password", in.Password)
	return f.Err("login")
}

// RegisterInput is used for public self-registration; registered users are never admins
type RegisterInput struct {
	Username string `json:"username" schema:"username"`
	Email    string `json:"email" schema:"email"`
	Password string `json:"password" schema:"password"`
}

func (in *RegisterInput) Validate() error {
	return validateAccount(in.Username, in.Email, in.Password).Err("user")
}

// UserInput is used by admins to provision accounts
type UserInput struct {
	Username string `json:"username" schema:"username"`
	Email    string `json:"email" schema:"email"`
	Password string `json:"password" schema:"password"`
	IsAdmin  bool   `json:"is_admin" schema:"is_admin"`
}

func (in *UserInput) Validate() error {
	return validateAccount(in.Username, in.Email, in.Password).Err("user")
}

const minPasswordLength = 6

func validateAccount(username, email, password string) FieldErrors {
	f := FieldErrors{}
	f.require("username", username)
	f.require("email", email)
	f.require("password", password)
	if _, ok := f["email"]; !ok {
		if _, err := mail.ParseAddress(email); err != nil {
			f["email"] = "is not a valid address"
		}
	}
	if _, ok := f["password"]; !ok && len(password) < minPasswordLength {
		f["password"] = "must be at least 6 characters"
	}
	return f
}
