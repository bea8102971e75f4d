package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sahilchouksey/academic-records-api/model"
	"github.com/sahilchouksey/academic-records-api/services/academic"
	"gorm.io/gorm"
)

var (
	// ErrDuplicateGrade signals a create for an (enrollment, component) pair
	// that already has a grade. Distinct from plain validation failures so the
	// caller can show a specific duplicate-entry explanation.
	ErrDuplicateGrade = errors.New("a grade for this evaluation component already exists")

	ErrUnknownComponent = errors.New("the course has no such evaluation component")
	ErrScoreOutOfRange  = fmt.Errorf("score must be between %.1f and %.1f", academic.MinScore, academic.MaxScore)
	ErrDateOutsideTerm  = errors.New("grade date is outside the enrollment's term window")
)

// FinalGradeLabel is the display label of the synthesized final grade row.
const FinalGradeLabel = "FINAL GRADE"

// GradeService records scores and computes final grades over the evaluation
// schemes of the courses involved. Final grades are never stored; they are
// recomputed from the scheme and scores on every read.
type GradeService struct {
	db *gorm.DB
}

// NewGradeService creates a new grade service
func NewGradeService(db *gorm.DB) *GradeService {
	return &GradeService{db: db}
}

// GradeInput carries the caller-supplied fields of a grade.
type GradeInput struct {
	EnrollmentID uint
	Component    string
	Score        float64
	Date         time.Time
	ProfessorID  uint
}

// Create validates and records a new grade. The duplicate check runs before
// anything is persisted; a unique index on (enrollment_id, component)
// backstops it at the database.
func (s *GradeService) Create(ctx context.Context, in GradeInput) (*model.Grade, error) {
	enrollment, key, err := s.resolve(ctx, in)
	if err != nil {
		return nil, err
	}

	var existing int64
	if err := s.db.WithContext(ctx).
		Model(&model.Grade{}).
		Where("enrollment_id = ? AND component = ?", in.EnrollmentID, key.String()).
		Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("check existing grade: %w", err)
	}
	if existing > 0 {
		return nil, ErrDuplicateGrade
	}

	grade := model.Grade{
		EnrollmentID: enrollment.ID,
		Component:    key.String(),
		Score:        in.Score,
		Date:         in.Date,
		ProfessorID:  in.ProfessorID,
	}
	if err := s.db.WithContext(ctx).Create(&grade).Error; err != nil {
		return nil, fmt.Errorf("create grade: %w", err)
	}
	return &grade, nil
}

// Update rewrites an existing grade. The enrollment is immutable; the input
// is revalidated in full, and moving the grade onto a component that already
// has one is rejected the same way a duplicate create is.
func (s *GradeService) Update(ctx context.Context, id uint, in GradeInput) (*model.Grade, error) {
	var grade model.Grade
	if err := s.db.WithContext(ctx).First(&grade, id).Error; err != nil {
		return nil, err
	}
	in.EnrollmentID = grade.EnrollmentID

	_, key, err := s.resolve(ctx, in)
	if err != nil {
		return nil, err
	}

	var occupied int64
	if err := s.db.WithContext(ctx).
		Model(&model.Grade{}).
		Where("enrollment_id = ? AND component = ? AND id <> ?", grade.EnrollmentID, key.String(), grade.ID).
		Count(&occupied).Error; err != nil {
		return nil, fmt.Errorf("check existing grade: %w", err)
	}
	if occupied > 0 {
		return nil, ErrDuplicateGrade
	}

	grade.Component = key.String()
	grade.Score = in.Score
	grade.Date = in.Date
	grade.ProfessorID = in.ProfessorID
	if err := s.db.WithContext(ctx).Save(&grade).Error; err != nil {
		return nil, fmt.Errorf("update grade: %w", err)
	}
	return &grade, nil
}

// resolve loads the enrollment and validates the input against the course's
// evaluation scheme, the grading scale, and the term window.
func (s *GradeService) resolve(ctx context.Context, in GradeInput) (*model.Enrollment, academic.ComponentKey, error) {
	var enrollment model.Enrollment
	if err := s.db.WithContext(ctx).
		Preload("Course").
		First(&enrollment, in.EnrollmentID).Error; err != nil {
		return nil, academic.ComponentKey{}, err
	}

	key, err := academic.ParseComponentKey(in.Component)
	if err != nil {
		return nil, academic.ComponentKey{}, err
	}
	found := false
	for _, c := range enrollment.Course.Evaluations {
		if academic.KeyOf(c) == key {
			found = true
			break
		}
	}
	if !found {
		return nil, academic.ComponentKey{}, ErrUnknownComponent
	}

	if !academic.IsValidScore(in.Score) {
		return nil, academic.ComponentKey{}, ErrScoreOutOfRange
	}
	if !academic.InTermWindow(in.Date, enrollment.Term, enrollment.Year) {
		return nil, academic.ComponentKey{}, ErrDateOutsideTerm
	}
	return &enrollment, key, nil
}

// FinalGradeResult reports an enrollment's aggregated grade. Missing lists
// the component keys still lacking a score when the result is incomplete.
type FinalGradeResult struct {
	EnrollmentID uint     `json:"enrollment_id"`
	Complete     bool     `json:"complete"`
	Final        float64  `json:"final,omitempty"`
	Missing      []string `json:"missing,omitempty"`
}

// FinalGrade computes the weighted final grade for one enrollment, or reports
// which components are still unsatisfied.
func (s *GradeService) FinalGrade(ctx context.Context, enrollmentID uint) (*FinalGradeResult, error) {
	var enrollment model.Enrollment
	if err := s.db.WithContext(ctx).
		Preload("Course").
		First(&enrollment, enrollmentID).Error; err != nil {
		return nil, err
	}

	var grades []model.Grade
	if err := s.db.WithContext(ctx).
		Where("enrollment_id = ?", enrollmentID).
		Find(&grades).Error; err != nil {
		return nil, fmt.Errorf("fetch grades: %w", err)
	}

	scores := scoresByComponent(grades)
	result := &FinalGradeResult{EnrollmentID: enrollment.ID}
	result.Final, result.Complete = academic.ComputeFinal(enrollment.Course.Evaluations, scores)
	if !result.Complete {
		for _, c := range enrollment.Course.Evaluations {
			if _, ok := scores[academic.KeyOf(c)]; !ok {
				result.Missing = append(result.Missing, academic.KeyOf(c).String())
			}
		}
	}
	return result, nil
}

// GradeRow is one display row of a grade listing: a recorded grade with its
// derived label and scheme weight, or the synthesized final grade row
// appended after an enrollment's regular rows.
type GradeRow struct {
	ID           uint      `json:"id,omitempty"`
	EnrollmentID uint      `json:"enrollment_id"`
	Component    string    `json:"component,omitempty"`
	Label        string    `json:"label"`
	Score        float64   `json:"score"`
	Weight       float64   `json:"weight,omitempty"`
	Date         time.Time `json:"date,omitempty"`
	ProfessorID  uint      `json:"professor_id,omitempty"`
	IsFinal      bool      `json:"is_final"`
}

// RowsForEnrollment builds the ordered display rows for one enrollment:
// regular grades sorted by component sequence number, then the final grade
// row when every scheme component has a score.
func (s *GradeService) RowsForEnrollment(ctx context.Context, enrollmentID uint) ([]GradeRow, error) {
	var enrollment model.Enrollment
	if err := s.db.WithContext(ctx).
		Preload("Course").
		First(&enrollment, enrollmentID).Error; err != nil {
		return nil, err
	}

	var grades []model.Grade
	if err := s.db.WithContext(ctx).
		Where("enrollment_id = ?", enrollmentID).
		Find(&grades).Error; err != nil {
		return nil, fmt.Errorf("fetch grades: %w", err)
	}

	return buildRows(enrollment, grades), nil
}

// GradeFilter narrows the grade listing. Zero fields are ignored. StudentID
// and CourseID select enrollments; ProfessorID selects grades within them.
type GradeFilter struct {
	StudentID   uint
	CourseID    uint
	ProfessorID uint
}

// Rows builds the display rows for every enrollment matching the filter,
// grouped per enrollment in id order. Each group is sorted by component
// sequence number and carries its own final grade row when complete.
func (s *GradeService) Rows(ctx context.Context, filter GradeFilter) ([]GradeRow, error) {
	q := s.db.WithContext(ctx).Preload("Course").Order("id ASC")
	if filter.StudentID != 0 {
		q = q.Where("student_id = ?", filter.StudentID)
	}
	if filter.CourseID != 0 {
		q = q.Where("course_id = ?", filter.CourseID)
	}
	var enrollments []model.Enrollment
	if err := q.Find(&enrollments).Error; err != nil {
		return nil, fmt.Errorf("fetch enrollments: %w", err)
	}
	if len(enrollments) == 0 {
		return []GradeRow{}, nil
	}

	ids := make([]uint, len(enrollments))
	for i, e := range enrollments {
		ids[i] = e.ID
	}
	gq := s.db.WithContext(ctx).Where("enrollment_id IN ?", ids)
	if filter.ProfessorID != 0 {
		gq = gq.Where("professor_id = ?", filter.ProfessorID)
	}
	var grades []model.Grade
	if err := gq.Find(&grades).Error; err != nil {
		return nil, fmt.Errorf("fetch grades: %w", err)
	}

	return rowsForEnrollments(enrollments, grades), nil
}

// rowsForEnrollments groups grades by enrollment and concatenates each
// group's display rows in enrollment order.
func rowsForEnrollments(enrollments []model.Enrollment, grades []model.Grade) []GradeRow {
	byEnrollment := make(map[uint][]model.Grade, len(enrollments))
	for _, g := range grades {
		byEnrollment[g.EnrollmentID] = append(byEnrollment[g.EnrollmentID], g)
	}
	rows := make([]GradeRow, 0, len(grades)+len(enrollments))
	for _, e := range enrollments {
		rows = append(rows, buildRows(e, byEnrollment[e.ID])...)
	}
	return rows
}

// buildRows assembles display rows from an enrollment's grades and its
// course's scheme. Pure helper shared by single- and multi-enrollment reads.
func buildRows(enrollment model.Enrollment, grades []model.Grade) []GradeRow {
	scheme := enrollment.Course.Evaluations
	academic.SortGrades(grades)

	rows := make([]GradeRow, 0, len(grades)+1)
	for _, g := range grades {
		row := GradeRow{
			ID:           g.ID,
			EnrollmentID: g.EnrollmentID,
			Component:    g.Component,
			Label:        g.Component,
			Score:        g.Score,
			Date:         g.Date,
			ProfessorID:  g.ProfessorID,
		}
		if key, err := academic.ParseComponentKey(g.Component); err == nil {
			row.Label = academic.DisplayLabel(key, scheme)
			for _, c := range scheme {
				if academic.KeyOf(c) == key {
					row.Weight = c.Weight
					break
				}
			}
		}
		rows = append(rows, row)
	}

	if final, complete := academic.ComputeFinal(scheme, scoresByComponent(grades)); complete {
		rows = append(rows, GradeRow{
			EnrollmentID: enrollment.ID,
			Label:        FinalGradeLabel,
			Score:        final,
			IsFinal:      true,
		})
	}
	return rows
}

func scoresByComponent(grades []model.Grade) map[academic.ComponentKey]float64 {
	scores := make(map[academic.ComponentKey]float64, len(grades))
	for _, g := range grades {
		if key, err := academic.ParseComponentKey(g.Component); err == nil {
			scores[key] = g.Score
		}
	}
	return scores
}
