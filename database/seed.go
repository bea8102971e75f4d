package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/sahilchouksey/academic-records-api/model"
	"github.com/sahilchouksey/academic-records-api/utils/auth"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// RunSeeds runs all seed functions against the given database
func RunSeeds(db *gorm.DB) error {
	return NewSeeder(db).SeedAll()
}

// SeedAll runs all seed functions
func (s *Seeder) SeedAll() error {
	log.Println("🌱 Starting database seeding...")

	// Run seeds in order (respecting foreign key constraints)
	if err := s.SeedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	if err := s.SeedProfessors(); err != nil {
		return fmt.Errorf("failed to seed professors: %w", err)
	}

	if err := s.SeedStudents(); err != nil {
		return fmt.Errorf("failed to seed students: %w", err)
	}

	if err := s.SeedCourses(); err != nil {
		return fmt.Errorf("failed to seed courses: %w", err)
	}

	if err := s.SeedAssignments(); err != nil {
		return fmt.Errorf("failed to seed course assignments: %w", err)
	}

	if err := s.SeedEnrollments(); err != nil {
		return fmt.Errorf("failed to seed enrollments: %w", err)
	}

	log.Println("✅ Database seeding completed successfully!")
	return nil
}

// SeedAdminUser creates the default admin user from ADMIN_EMAIL and
// ADMIN_PASSWORD
func (s *Seeder) SeedAdminUser() error {
	var count int64
	if err := s.db.Model(&model.User{}).Where("role = ?", "admin").Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Admin user already exists, skipping...")
		return nil
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminEmail == "" || adminPassword == "" {
		log.Println("⚠️  ADMIN_EMAIL and ADMIN_PASSWORD environment variables not set, skipping admin user creation")
		return nil
	}

	passwordHash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &model.User{
		Email:        adminEmail,
		PasswordHash: passwordHash,
		Name:         "System Administrator",
		Role:         "admin",
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Created admin user: %s\n", admin.Email)
	return nil
}

// SeedProfessors creates sample professors
func (s *Seeder) SeedProfessors() error {
	var count int64
	if err := s.db.Model(&model.Professor{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Professors already exist, skipping...")
		return nil
	}

	professors := []model.Professor{
		{
			RUT:        "9.876.543-2",
			FirstNames: "María Elena",
			LastNames:  "Riquelme Soto",
			Email:      "maria.riquelme@universidad.cl",
		},
		{
			RUT:        "8.765.432-1",
			FirstNames: "Jorge Andrés",
			LastNames:  "Fuenzalida Castro",
			Email:      "jorge.fuenzalida@universidad.cl",
		},
		{
			RUT:        "7.654.321-K",
			FirstNames: "Carolina",
			LastNames:  "Vera Montt",
			Email:      "carolina.vera@universidad.cl",
		},
	}

	if err := s.db.Create(&professors).Error; err != nil {
		return err
	}

	log.Printf("✅ Created %d professors\n", len(professors))
	return nil
}

// SeedStudents creates sample students
func (s *Seeder) SeedStudents() error {
	var count int64
	if err := s.db.Model(&model.Student{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Students already exist, skipping...")
		return nil
	}

	students := []model.Student{
		{
			RUT:        "21.345.678-9",
			FirstNames: "Valentina Paz",
			LastNames:  "Muñoz Araya",
			Email:      "valentina.munoz@alumnos.cl",
		},
		{
			RUT:        "20.234.567-8",
			FirstNames: "Benjamín",
			LastNames:  "Rojas Pino",
			Email:      "benjamin.rojas@alumnos.cl",
		},
		{
			RUT:        "19.123.456-7",
			FirstNames: "Catalina Sofía",
			LastNames:  "Herrera Díaz",
			Email:      "catalina.herrera@alumnos.cl",
		},
		{
			RUT:        "22.456.789-K",
			FirstNames: "Matías Ignacio",
			LastNames:  "Silva Contreras",
			Email:      "matias.silva@alumnos.cl",
		},
	}

	if err := s.db.Create(&students).Error; err != nil {
		return err
	}

	log.Printf("✅ Created %d students\n", len(students))
	return nil
}

// SeedCourses creates sample courses with evaluation schemes
func (s *Seeder) SeedCourses() error {
	var count int64
	if err := s.db.Model(&model.Course{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Courses already exist, skipping...")
		return nil
	}

	courses := []model.Course{
		{
			Code:    "MAT101",
			Name:    "Cálculo I",
			Credits: 6,
			Evaluations: datatypes.NewJSONSlice([]model.EvaluationComponent{
				{Type: "Exam", Number: 1, Weight: 30},
				{Type: "Exam", Number: 2, Weight: 30},
				{Type: "Final Exam", Number: 1, Weight: 40},
			}),
		},
		{
			Code:    "INF110",
			Name:    "Programación",
			Credits: 5,
			Evaluations: datatypes.NewJSONSlice([]model.EvaluationComponent{
				{Type: "Lab", Number: 1, Weight: 20},
				{Type: "Lab", Number: 2, Weight: 20},
				{Type: "Project", Number: 1, Weight: 30},
				{Type: "Final Exam", Number: 1, Weight: 30},
			}),
		},
		{
			Code:    "FIS100",
			Name:    "Física General",
			Credits: 4,
			Evaluations: datatypes.NewJSONSlice([]model.EvaluationComponent{
				{Type: "Exam", Number: 1, Weight: 33.33},
				{Type: "Exam", Number: 2, Weight: 33.33},
				{Type: "Exam", Number: 3, Weight: 33.34},
			}),
		},
	}

	if err := s.db.Create(&courses).Error; err != nil {
		return err
	}

	log.Printf("✅ Created %d courses\n", len(courses))
	return nil
}

// SeedAssignments links each professor to a course
func (s *Seeder) SeedAssignments() error {
	var count int64
	if err := s.db.Model(&model.CourseAssignment{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Course assignments already exist, skipping...")
		return nil
	}

	pairs := []struct {
		courseCode   string
		professorRUT string
	}{
		{"MAT101", "9.876.543-2"},
		{"INF110", "8.765.432-1"},
		{"FIS100", "7.654.321-K"},
		{"MAT101", "7.654.321-K"},
	}

	created := 0
	for _, p := range pairs {
		var course model.Course
		if err := s.db.Where("code = ?", p.courseCode).First(&course).Error; err != nil {
			return err
		}
		var professor model.Professor
		if err := s.db.Where("rut = ?", p.professorRUT).First(&professor).Error; err != nil {
			return err
		}
		assignment := model.CourseAssignment{
			CourseID:    course.ID,
			ProfessorID: professor.ID,
		}
		if err := s.db.Create(&assignment).Error; err != nil {
			return err
		}
		created++
	}

	log.Printf("✅ Created %d course assignments\n", created)
	return nil
}

// SeedEnrollments enrolls the sample students and records a few grades
func (s *Seeder) SeedEnrollments() error {
	var count int64
	if err := s.db.Model(&model.Enrollment{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Enrollments already exist, skipping...")
		return nil
	}

	var course model.Course
	if err := s.db.Where("code = ?", "MAT101").First(&course).Error; err != nil {
		return err
	}
	var professor model.Professor
	if err := s.db.Where("rut = ?", "9.876.543-2").First(&professor).Error; err != nil {
		return err
	}
	var students []model.Student
	if err := s.db.Order("id ASC").Limit(2).Find(&students).Error; err != nil {
		return err
	}

	year := time.Now().Year()
	for _, student := range students {
		enrollment := model.Enrollment{
			StudentID:   student.ID,
			CourseID:    course.ID,
			ProfessorID: professor.ID,
			Term:        1,
			Year:        year,
		}
		if err := s.db.Create(&enrollment).Error; err != nil {
			return err
		}
	}

	// One graded component for the first student
	var first model.Enrollment
	if err := s.db.Order("id ASC").First(&first).Error; err != nil {
		return err
	}
	grade := model.Grade{
		EnrollmentID: first.ID,
		Component:    "Exam 1",
		Score:        5.8,
		Date:         time.Date(year, time.April, 15, 0, 0, 0, 0, time.UTC),
		ProfessorID:  professor.ID,
	}
	if err := s.db.Create(&grade).Error; err != nil {
		return err
	}

	log.Printf("✅ Created %d enrollments and 1 grade\n", len(students))
	return nil
}
