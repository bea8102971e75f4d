package services

import (
	"context"
	"fmt"

	"github.com/sahilchouksey/academic-records-api/model"
	"github.com/sahilchouksey/academic-records-api/services/academic"
	"gorm.io/gorm"
)

// DeletionService runs the deletion guard against live dependent counts and
// performs the guarded deletes. Every verdict is computed from a snapshot of
// counts read immediately before the decision; a failed count aborts the
// operation without touching anything (fail closed).
type DeletionService struct {
	db *gorm.DB
}

// NewDeletionService creates a new deletion service
func NewDeletionService(db *gorm.DB) *DeletionService {
	return &DeletionService{db: db}
}

// CanDeleteStudent checks whether a student may be deleted. Enrollments block
// directly; grades block through the student's enrollments.
func (s *DeletionService) CanDeleteStudent(ctx context.Context, id uint) (academic.Verdict, error) {
	var enrollments int64
	if err := s.db.WithContext(ctx).
		Model(&model.Enrollment{}).
		Where("student_id = ?", id).
		Count(&enrollments).Error; err != nil {
		return academic.Verdict{}, fmt.Errorf("count enrollments: %w", err)
	}

	var grades int64
	if err := s.db.WithContext(ctx).
		Model(&model.Grade{}).
		Where("enrollment_id IN (?)",
			s.db.Model(&model.Enrollment{}).Select("id").Where("student_id = ?", id)).
		Count(&grades).Error; err != nil {
		return academic.Verdict{}, fmt.Errorf("count grades: %w", err)
	}

	return academic.Evaluate(academic.KindStudent, map[academic.Kind]int64{
		academic.KindEnrollment: enrollments,
		academic.KindGrade:      grades,
	}), nil
}

// DeleteStudent deletes a student if the guard allows it. The returned
// verdict tells the caller whether the delete actually happened.
func (s *DeletionService) DeleteStudent(ctx context.Context, id uint) (academic.Verdict, error) {
	verdict, err := s.CanDeleteStudent(ctx, id)
	if err != nil || !verdict.Allowed {
		return verdict, err
	}
	if err := s.db.WithContext(ctx).Delete(&model.Student{}, id).Error; err != nil {
		return verdict, fmt.Errorf("delete student: %w", err)
	}
	return verdict, nil
}

// CanDeleteProfessor checks whether a professor may be deleted. Course
// assignments and authored grades both block.
func (s *DeletionService) CanDeleteProfessor(ctx context.Context, id uint) (academic.Verdict, error) {
	var assignments int64
	if err := s.db.WithContext(ctx).
		Model(&model.CourseAssignment{}).
		Where("professor_id = ?", id).
		Count(&assignments).Error; err != nil {
		return academic.Verdict{}, fmt.Errorf("count course assignments: %w", err)
	}

	var grades int64
	if err := s.db.WithContext(ctx).
		Model(&model.Grade{}).
		Where("professor_id = ?", id).
		Count(&grades).Error; err != nil {
		return academic.Verdict{}, fmt.Errorf("count grades: %w", err)
	}

	return academic.Evaluate(academic.KindProfessor, map[academic.Kind]int64{
		academic.KindCourseAssignment: assignments,
		academic.KindGrade:            grades,
	}), nil
}

// DeleteProfessor deletes a professor if the guard allows it.
func (s *DeletionService) DeleteProfessor(ctx context.Context, id uint) (academic.Verdict, error) {
	verdict, err := s.CanDeleteProfessor(ctx, id)
	if err != nil || !verdict.Allowed {
		return verdict, err
	}
	if err := s.db.WithContext(ctx).Delete(&model.Professor{}, id).Error; err != nil {
		return verdict, fmt.Errorf("delete professor: %w", err)
	}
	return verdict, nil
}

// CanDeleteCourse checks whether a course may be deleted. Only enrollments
// block; course assignments are cascade-deleted alongside the course.
func (s *DeletionService) CanDeleteCourse(ctx context.Context, id uint) (academic.Verdict, error) {
	var enrollments int64
	if err := s.db.WithContext(ctx).
		Model(&model.Enrollment{}).
		Where("course_id = ?", id).
		Count(&enrollments).Error; err != nil {
		return academic.Verdict{}, fmt.Errorf("count enrollments: %w", err)
	}

	return academic.Evaluate(academic.KindCourse, map[academic.Kind]int64{
		academic.KindEnrollment: enrollments,
	}), nil
}

// DeleteCourse deletes a course and its assignments if the guard allows it.
// Both phases run in one transaction: if removing the assignments fails, the
// course stays and the caller is informed nothing was removed.
func (s *DeletionService) DeleteCourse(ctx context.Context, id uint) (academic.Verdict, error) {
	verdict, err := s.CanDeleteCourse(ctx, id)
	if err != nil || !verdict.Allowed {
		return verdict, err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", id).Delete(&model.CourseAssignment{}).Error; err != nil {
			return fmt.Errorf("delete course assignments: %w", err)
		}
		if err := tx.Delete(&model.Course{}, id).Error; err != nil {
			return fmt.Errorf("delete course: %w", err)
		}
		return nil
	})
	return verdict, err
}

// CanDeleteEnrollment checks whether an enrollment may be deleted; any grade
// referencing it blocks.
func (s *DeletionService) CanDeleteEnrollment(ctx context.Context, id uint) (academic.Verdict, error) {
	var grades int64
	if err := s.db.WithContext(ctx).
		Model(&model.Grade{}).
		Where("enrollment_id = ?", id).
		Count(&grades).Error; err != nil {
		return academic.Verdict{}, fmt.Errorf("count grades: %w", err)
	}

	return academic.Evaluate(academic.KindEnrollment, map[academic.Kind]int64{
		academic.KindGrade: grades,
	}), nil
}

// DeleteEnrollment deletes an enrollment if the guard allows it.
func (s *DeletionService) DeleteEnrollment(ctx context.Context, id uint) (academic.Verdict, error) {
	verdict, err := s.CanDeleteEnrollment(ctx, id)
	if err != nil || !verdict.Allowed {
		return verdict, err
	}
	if err := s.db.WithContext(ctx).Delete(&model.Enrollment{}, id).Error; err != nil {
		return verdict, fmt.Errorf("delete enrollment: %w", err)
	}
	return verdict, nil
}
