// Package models defines server-side records persisted in the database and
// the validated inputs that create or change them.
package models

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/taskmanager/internal/common"
)

// User is a registered account. PasswordHash and Avatar never leave the
// server; the issued tokens live in their own table.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Age          int       `json:"age"`
	Avatar       []byte    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewUser is the registration payload.
type NewUser struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=7,nopassword"`
	Age      int    `json:"age" validate:"gte=0"`
}

// Normalize trims every string field and lower-cases the e-mail.
func (u *NewUser) Normalize() {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = common.NormalizeEmail(u.Email)
	u.Password = strings.TrimSpace(u.Password)
}

// Validate normalizes u and checks it against the field rules.
func (u *NewUser) Validate() error {
	u.Normalize()
	return validateStruct(u)
}

// AllowedUserUpdates lists the keys accepted by a user PATCH.
var AllowedUserUpdates = []string{"name", "email", "password", "age"}

// UserPatch holds the fields present in a user PATCH body.
type UserPatch struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Age      *int    `json:"age"`
}

// userProfile is the validated shape of a user after a patch is applied.
type userProfile struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Age   int    `json:"age" validate:"gte=0"`
}

// Apply copies the present profile fields onto u (normalized) and validates
// the result. The password is returned separately, trimmed and validated,
// so the caller can hash it; ok is false when no password was supplied.
func (p UserPatch) Apply(u *User) (password string, ok bool, err error) {
	if p.Name != nil {
		u.Name = strings.TrimSpace(*p.Name)
	}
	if p.Email != nil {
		u.Email = common.NormalizeEmail(*p.Email)
	}
	if p.Age != nil {
		u.Age = *p.Age
	}

	verr := &ValidationError{}
	verr.merge(validateStruct(userProfile{Name: u.Name, Email: u.Email, Age: u.Age}))

	if p.Password != nil {
		password = strings.TrimSpace(*p.Password)
		ok = true
		verr.merge(validateVar("password", password, "required,min=7,nopassword"))
	}

	if len(verr.Fields) > 0 {
		return "", false, verr
	}
	return password, ok, nil
}

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is returned by register and login.
type AuthResult struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}
