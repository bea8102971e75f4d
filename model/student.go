package model

import "time"

// Student represents an enrolled (or enrollable) student.
// RUT is the Chilean national id and never changes after creation.
type Student struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	RUT        string    `gorm:"uniqueIndex;not null" json:"rut"`
	FirstNames string    `gorm:"not null" json:"first_names"`
	LastNames  string    `gorm:"not null" json:"last_names"`
	Email      string    `gorm:"not null" json:"email"`

	// Relationships
	Enrollments []Enrollment `gorm:"foreignKey:StudentID" json:"-"`
}

// FullName returns the display name used in listings.
func (s Student) FullName() string {
	return s.FirstNames + " " + s.LastNames
}
