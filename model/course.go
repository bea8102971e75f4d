package model

import (
	"time"

	"gorm.io/datatypes"
)

// EvaluationComponent is a weighted grading item within a course's evaluation
// scheme (e.g., "Exam 1", 40%). The list is stored as a JSONB column on the
// course; components are not standalone records. (Type, Number) is unique
// within a course and the weights must sum to exactly 100 before the scheme
// can be persisted.
type EvaluationComponent struct {
	Type   string  `json:"type"`
	Number int     `json:"number"`
	Weight float64 `json:"weight"`
}

// Course represents a subject offering (e.g., "MAT101 - Calculus I")
type Course struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Code      string    `gorm:"uniqueIndex;not null" json:"code"` // immutable after creation
	Name      string    `gorm:"not null" json:"name"`
	Credits   int       `gorm:"not null;default:1" json:"credits"` // 1-20

	// Evaluations holds the ordered evaluation scheme as JSONB
	Evaluations datatypes.JSONSlice[EvaluationComponent] `gorm:"type:jsonb" json:"evaluations"`

	// Relationships
	Assignments []CourseAssignment `gorm:"foreignKey:CourseID" json:"-"`
	Enrollments []Enrollment       `gorm:"foreignKey:CourseID" json:"-"`
}

// CourseAssignment links a professor to a course they teach (many-to-many
// join). Assignments have no lifecycle of their own: deleting a course
// removes its assignments in the same transaction.
type CourseAssignment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	ProfessorID uint      `gorm:"not null;uniqueIndex:idx_assignment_professor_course" json:"professor_id"`
	CourseID    uint      `gorm:"not null;uniqueIndex:idx_assignment_professor_course" json:"course_id"`

	// Relationships
	Professor Professor `gorm:"foreignKey:ProfessorID" json:"professor,omitempty"`
	Course    Course    `gorm:"foreignKey:CourseID" json:"-"`
}
