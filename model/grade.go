package model

import "time"

// Grade records the score a student obtained for one evaluation component of
// an enrollment. Component holds the compound key "{Type} {Number}" (e.g.,
// "Exam 1") identifying which EvaluationComponent it satisfies; at most one
// grade may exist per (enrollment, component) pair. Scores use the Chilean
// 1.0-7.0 scale and the date must fall inside the enrollment's term window.
type Grade struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	EnrollmentID uint      `gorm:"not null;uniqueIndex:idx_grade_enrollment_component" json:"enrollment_id"`
	Component    string    `gorm:"not null;uniqueIndex:idx_grade_enrollment_component" json:"component"`
	Score        float64   `gorm:"not null" json:"score"`
	Date         time.Time `gorm:"not null" json:"date"`
	ProfessorID  uint      `gorm:"not null;index" json:"professor_id"` // grading professor

	// Relationships
	Enrollment Enrollment `gorm:"foreignKey:EnrollmentID" json:"enrollment,omitempty"`
	Professor  Professor  `gorm:"foreignKey:ProfessorID" json:"professor,omitempty"`
}
