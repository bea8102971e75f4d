package model

import "time"

// Professor represents a teaching staff member. RUT is immutable after creation.
type Professor struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	RUT        string    `gorm:"uniqueIndex;not null" json:"rut"`
	FirstNames string    `gorm:"not null" json:"first_names"`
	LastNames  string    `gorm:"not null" json:"last_names"`
	Email      string    `gorm:"not null" json:"email"`

	// Relationships
	Assignments []CourseAssignment `gorm:"foreignKey:ProfessorID" json:"-"`
	Grades      []Grade            `gorm:"foreignKey:ProfessorID" json:"-"`
}

// FullName returns the display name used in listings.
func (p Professor) FullName() string {
	return p.FirstNames + " " + p.LastNames
}
