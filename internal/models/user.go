// Package models defines the persistent entities of the quotes catalog and
// the domain errors shared between the store and the API layer.
package models

import (
	"strings"
	"time"
)

// NewsletterFrequency controls how often a user receives the quotes digest.
type NewsletterFrequency string

const (
	NewsletterOnUpload  NewsletterFrequency = "ON_UPLOAD"
	NewsletterEveryDay  NewsletterFrequency = "EVERY_DAY"
	NewsletterOnceAWeek NewsletterFrequency = "ONCE_A_WEEK"
)

// IsValid checks if the frequency is a known value.
func (f NewsletterFrequency) IsValid() bool {
	return f == NewsletterOnUpload || f == NewsletterEveryDay || f == NewsletterOnceAWeek
}

// User is an account in the catalog. Email is the natural lookup key and is
// stored lower-cased; the unique index on it is what makes concurrent
// OAuth first-logins safe (see store.FindOrCreateUserByEmail).
type User struct {
	ID                  string              `gorm:"primaryKey;size:36" json:"id"`
	Email               string              `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Name                string              `gorm:"size:255" json:"name,omitempty"`
	PasswordHash        string              `gorm:"not null" json:"-"`
	Newsletter          bool                `gorm:"default:false" json:"newsletter"`
	NewsletterFrequency NewsletterFrequency `gorm:"size:32;default:ON_UPLOAD" json:"newsletter_frequency"`
	CreatedAt           time.Time           `gorm:"autoCreateTime" json:"created_at"`

	// Quotes uploaded by this user.
	Quotes []Quote `gorm:"foreignKey:UploaderID" json:"quotes,omitempty"`
}

// TableName returns the table name for User.
func (User) TableName() string {
	return "users"
}

// NormalizeEmail lower-cases and trims an email address so lookups and the
// unique index agree on a single canonical form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
