package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/sahilchouksey/academic-records-api/database"
	"github.com/sahilchouksey/academic-records-api/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TestRegistryLifecycle exercises the deletion guard and grade recording
// against a real database. It requires:
// 1. RUN_INTEGRATION_TESTS=true
// 2. The DB_* environment variables pointing at a PostgreSQL instance
func TestRegistryLifecycle(t *testing.T) {
	// Skip if not in integration test mode
	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration test. Set RUN_INTEGRATION_TESTS=true to run")
	}

	store, err := database.StartGORM()
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	if err := store.Init(); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	db := store.GetDB().(*gorm.DB)

	ctx := context.Background()
	deletion := NewDeletionService(db)
	grades := NewGradeService(db)

	suffix := time.Now().UnixNano()

	student := model.Student{
		RUT:        fmt.Sprintf("12.%06d-3", suffix%1000000),
		FirstNames: "Test",
		LastNames:  "Student",
		Email:      "test.student@alumnos.cl",
	}
	if err := db.Create(&student).Error; err != nil {
		t.Fatalf("create student: %v", err)
	}
	professor := model.Professor{
		RUT:        fmt.Sprintf("11.%06d-K", suffix%1000000),
		FirstNames: "Test",
		LastNames:  "Professor",
		Email:      "test.professor@universidad.cl",
	}
	if err := db.Create(&professor).Error; err != nil {
		t.Fatalf("create professor: %v", err)
	}
	course := model.Course{
		Code:    fmt.Sprintf("TST%06d", suffix%1000000),
		Name:    "Integration Testing",
		Credits: 3,
		Evaluations: datatypes.NewJSONSlice([]model.EvaluationComponent{
			{Type: "Exam", Number: 1, Weight: 40},
			{Type: "Exam", Number: 2, Weight: 60},
		}),
	}
	if err := db.Create(&course).Error; err != nil {
		t.Fatalf("create course: %v", err)
	}
	assignment := model.CourseAssignment{CourseID: course.ID, ProfessorID: professor.ID}
	if err := db.Create(&assignment).Error; err != nil {
		t.Fatalf("create assignment: %v", err)
	}
	enrollment := model.Enrollment{
		StudentID:   student.ID,
		CourseID:    course.ID,
		ProfessorID: professor.ID,
		Term:        1,
		Year:        2026,
	}
	if err := db.Create(&enrollment).Error; err != nil {
		t.Fatalf("create enrollment: %v", err)
	}

	t.Run("enrolled student cannot be deleted", func(t *testing.T) {
		verdict, err := deletion.DeleteStudent(ctx, student.ID)
		if err != nil {
			t.Fatalf("DeleteStudent: %v", err)
		}
		if verdict.Allowed {
			t.Fatal("student with an enrollment was deleted")
		}
		var count int64
		db.Model(&model.Student{}).Where("id = ?", student.ID).Count(&count)
		if count != 1 {
			t.Fatal("student row removed despite blocked verdict")
		}
	})

	t.Run("grade creation and duplicate rejection", func(t *testing.T) {
		in := GradeInput{
			EnrollmentID: enrollment.ID,
			Component:    "Exam 1",
			Score:        5.5,
			Date:         time.Date(2026, time.April, 10, 0, 0, 0, 0, time.UTC),
			ProfessorID:  professor.ID,
		}
		if _, err := grades.Create(ctx, in); err != nil {
			t.Fatalf("Create grade: %v", err)
		}
		if _, err := grades.Create(ctx, in); !errors.Is(err, ErrDuplicateGrade) {
			t.Fatalf("second create = %v, want ErrDuplicateGrade", err)
		}
	})

	t.Run("grade validation", func(t *testing.T) {
		base := GradeInput{
			EnrollmentID: enrollment.ID,
			Component:    "Exam 2",
			Score:        6.0,
			Date:         time.Date(2026, time.May, 10, 0, 0, 0, 0, time.UTC),
			ProfessorID:  professor.ID,
		}

		bad := base
		bad.Component = "Exam 9"
		if _, err := grades.Create(ctx, bad); !errors.Is(err, ErrUnknownComponent) {
			t.Errorf("unknown component = %v", err)
		}

		bad = base
		bad.Score = 7.5
		if _, err := grades.Create(ctx, bad); !errors.Is(err, ErrScoreOutOfRange) {
			t.Errorf("score out of range = %v", err)
		}

		bad = base
		bad.Date = time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)
		if _, err := grades.Create(ctx, bad); !errors.Is(err, ErrDateOutsideTerm) {
			t.Errorf("date outside term = %v", err)
		}
	})

	t.Run("final grade after all components scored", func(t *testing.T) {
		result, err := grades.FinalGrade(ctx, enrollment.ID)
		if err != nil {
			t.Fatalf("FinalGrade: %v", err)
		}
		if result.Complete {
			t.Fatal("final grade complete with Exam 2 unscored")
		}

		in := GradeInput{
			EnrollmentID: enrollment.ID,
			Component:    "Exam 2",
			Score:        6.0,
			Date:         time.Date(2026, time.May, 10, 0, 0, 0, 0, time.UTC),
			ProfessorID:  professor.ID,
		}
		if _, err := grades.Create(ctx, in); err != nil {
			t.Fatalf("Create grade: %v", err)
		}

		result, err = grades.FinalGrade(ctx, enrollment.ID)
		if err != nil {
			t.Fatalf("FinalGrade: %v", err)
		}
		if !result.Complete {
			t.Fatal("final grade incomplete with all components scored")
		}
		// 5.5*0.4 + 6.0*0.6 = 5.8
		if result.Final < 5.79 || result.Final > 5.81 {
			t.Errorf("final = %g, want 5.8", result.Final)
		}

		rows, err := grades.RowsForEnrollment(ctx, enrollment.ID)
		if err != nil {
			t.Fatalf("RowsForEnrollment: %v", err)
		}
		last := rows[len(rows)-1]
		if !last.IsFinal || last.Label != FinalGradeLabel {
			t.Errorf("last row = %+v, want final grade row", last)
		}
	})

	t.Run("filtered listing groups by enrollment", func(t *testing.T) {
		rows, err := grades.Rows(ctx, GradeFilter{StudentID: student.ID})
		if err != nil {
			t.Fatalf("Rows: %v", err)
		}
		if len(rows) != 3 {
			t.Fatalf("expected 2 grade rows plus final row, got %d", len(rows))
		}
		if rows[0].Component != "Exam 1" || rows[1].Component != "Exam 2" {
			t.Errorf("rows out of component order: %q, %q", rows[0].Component, rows[1].Component)
		}
		if !rows[2].IsFinal || rows[2].EnrollmentID != enrollment.ID {
			t.Errorf("last row = %+v, want final row for enrollment %d", rows[2], enrollment.ID)
		}
	})

	t.Run("grade update revalidates and keeps enrollment", func(t *testing.T) {
		var grade model.Grade
		if err := db.Where("enrollment_id = ? AND component = ?", enrollment.ID, "Exam 1").
			First(&grade).Error; err != nil {
			t.Fatalf("fetch grade: %v", err)
		}

		in := GradeInput{
			// A different enrollment id in the input must be ignored.
			EnrollmentID: enrollment.ID + 9999,
			Component:    "Exam 1",
			Score:        6.5,
			Date:         time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC),
			ProfessorID:  professor.ID,
		}
		updated, err := grades.Update(ctx, grade.ID, in)
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		if updated.EnrollmentID != enrollment.ID {
			t.Errorf("enrollment changed to %d on update", updated.EnrollmentID)
		}
		if updated.Score != 6.5 {
			t.Errorf("score = %g after update, want 6.5", updated.Score)
		}

		bad := in
		bad.Component = "Exam 2"
		if _, err := grades.Update(ctx, grade.ID, bad); !errors.Is(err, ErrDuplicateGrade) {
			t.Errorf("move onto scored component = %v, want ErrDuplicateGrade", err)
		}

		bad = in
		bad.Date = time.Date(2026, time.December, 1, 0, 0, 0, 0, time.UTC)
		if _, err := grades.Update(ctx, grade.ID, bad); !errors.Is(err, ErrDateOutsideTerm) {
			t.Errorf("date outside term on update = %v, want ErrDateOutsideTerm", err)
		}

		bad = in
		bad.Score = 0.5
		if _, err := grades.Update(ctx, grade.ID, bad); !errors.Is(err, ErrScoreOutOfRange) {
			t.Errorf("score out of range on update = %v, want ErrScoreOutOfRange", err)
		}

		// Rewriting the same component in place is not a duplicate.
		if _, err := grades.Update(ctx, grade.ID, in); err != nil {
			t.Errorf("same-component update = %v, want success", err)
		}
	})

	t.Run("teardown honors dependency order", func(t *testing.T) {
		verdict, err := deletion.DeleteEnrollment(ctx, enrollment.ID)
		if err != nil {
			t.Fatalf("DeleteEnrollment: %v", err)
		}
		if verdict.Allowed {
			t.Fatal("enrollment with grades was deleted")
		}

		if err := db.Where("enrollment_id = ?", enrollment.ID).Delete(&model.Grade{}).Error; err != nil {
			t.Fatalf("delete grades: %v", err)
		}

		verdict, err = deletion.DeleteEnrollment(ctx, enrollment.ID)
		if err != nil {
			t.Fatalf("DeleteEnrollment: %v", err)
		}
		if !verdict.Allowed {
			t.Fatalf("gradeless enrollment blocked: %s", verdict.Reason)
		}

		// Course deletion removes its assignments in the same transaction
		verdict, err = deletion.DeleteCourse(ctx, course.ID)
		if err != nil {
			t.Fatalf("DeleteCourse: %v", err)
		}
		if !verdict.Allowed {
			t.Fatalf("enrollment-free course blocked: %s", verdict.Reason)
		}
		var remaining int64
		db.Model(&model.CourseAssignment{}).Where("course_id = ?", course.ID).Count(&remaining)
		if remaining != 0 {
			t.Errorf("%d assignment(s) survived course deletion", remaining)
		}

		if verdict, err = deletion.DeleteProfessor(ctx, professor.ID); err != nil || !verdict.Allowed {
			t.Fatalf("DeleteProfessor: %v %+v", err, verdict)
		}
		if verdict, err = deletion.DeleteStudent(ctx, student.ID); err != nil || !verdict.Allowed {
			t.Fatalf("DeleteStudent: %v %+v", err, verdict)
		}
	})
}
