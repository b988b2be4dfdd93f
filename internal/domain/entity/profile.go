package entity

import "time"

// Profile is an artisan's public business profile. The store does not
// enforce one profile per user; callers treat the newest as current.
type Profile struct {
	ID              int64
	UserID          *int64
	Name            string // Business or display name.
	Location        string
	Specialties     string // Comma-joined category list.
	YearsExperience int
	Bio             string
	Email           string
	Phone           string
	Website         string
	Instagram       string
	Facebook        string
	Etsy            string
	Education       string
	Awards          string
	Inspiration     string
	ProfileImage    string // Opaque image reference.
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
