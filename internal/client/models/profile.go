// Package models defines the client-side records of RetailMediaAI as they are
// persisted in the key-value store. JSON field names are part of the storage
// format and must not change.
package models

// Theme is the UI color scheme stored in a profile.
type Theme string

const (
	ThemeLight   Theme = "light"
	ThemeDark    Theme = "dark"
	ThemeDynamic Theme = "dynamic"
)

// Valid reports whether t is one of the known themes.
func (t Theme) Valid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeDynamic:
		return true
	}
	return false
}

// AuthRecord holds the credential of a locally registered user.
// The password is kept in plaintext; OAuth-only users have no record or an
// empty password.
type AuthRecord struct {
	Password string `json:"password"`
}

// UserProfile is the display data of a user. Every field is optional.
type UserProfile struct {
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
	Image       string `json:"image,omitempty"`
	Role        string `json:"role,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Theme       Theme  `json:"theme,omitempty"`
}

// ProfileUpdate lists the profile fields a caller may set. Nil fields are
// left as stored.
type ProfileUpdate struct {
	Name        *string
	Email       *string
	Image       *string
	Role        *string
	PhoneNumber *string
	Theme       *Theme
}

// Apply merges u over p.
func (u ProfileUpdate) Apply(p *UserProfile) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Email != nil {
		p.Email = *u.Email
	}
	if u.Image != nil {
		p.Image = *u.Image
	}
	if u.Role != nil {
		p.Role = *u.Role
	}
	if u.PhoneNumber != nil {
		p.PhoneNumber = *u.PhoneNumber
	}
	if u.Theme != nil {
		p.Theme = *u.Theme
	}
}

// String returns a pointer to s, for building a ProfileUpdate.
func String(s string) *string { return &s }

// Registration is the input of a credentials sign-up.
type Registration struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      string
}

// FullName joins first and last name the way profiles store it.
func (r Registration) FullName() string {
	return r.FirstName + " " + r.LastName
}

// CredentialCheck is the outcome of validating an email/password pair.
// Reason is nil when IsValid is true.
type CredentialCheck struct {
	IsValid bool
	Reason  error
	Message string
}

// SessionUser is the identity carried by a signed-in session.
type SessionUser struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Image string `json:"image,omitempty"`
}
