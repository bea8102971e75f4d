package model

import "time"

// Enrollment associates a student, a course, and the professor teaching it
// for a given term/year. The professor must already be assigned to the course.
// Enrollments are immutable after creation; only deletion is offered, and only
// while no grades reference them.
type Enrollment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	StudentID   uint      `gorm:"not null;index" json:"student_id"`
	CourseID    uint      `gorm:"not null;index" json:"course_id"`
	ProfessorID uint      `gorm:"not null;index" json:"professor_id"`
	Term        int       `gorm:"not null" json:"term"` // 1 or 2
	Year        int       `gorm:"not null" json:"year"`

	// Relationships
	Student   Student   `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Course    Course    `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Professor Professor `gorm:"foreignKey:ProfessorID" json:"professor,omitempty"`
	Grades    []Grade   `gorm:"foreignKey:EnrollmentID" json:"-"`
}
