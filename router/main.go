package router

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/academic-records-api/database"
	"github.com/sahilchouksey/academic-records-api/handlers"
	auth_handlers "github.com/sahilchouksey/academic-records-api/handlers/auth"
	course_handlers "github.com/sahilchouksey/academic-records-api/handlers/course"
	enrollment_handlers "github.com/sahilchouksey/academic-records-api/handlers/enrollment"
	grade_handlers "github.com/sahilchouksey/academic-records-api/handlers/grade"
	professor_handlers "github.com/sahilchouksey/academic-records-api/handlers/professor"
	student_handlers "github.com/sahilchouksey/academic-records-api/handlers/student"
	"github.com/sahilchouksey/academic-records-api/services"
	"github.com/sahilchouksey/academic-records-api/utils/auth"
	"github.com/sahilchouksey/academic-records-api/utils/cache"
	"github.com/sahilchouksey/academic-records-api/utils/middleware"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, store database.Storage) {
	// Get JWT secret from environment
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	jwtIssuer := os.Getenv("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "academic-records-api"
	}

	// Initialize JWT manager with config
	jwtConfig := auth.JWTConfig{
		Secret:        jwtSecret,
		Expiry:        24 * time.Hour,     // Access token expires in 24 hours
		RefreshExpiry: 7 * 24 * time.Hour, // Refresh token expires in 7 days
		Issuer:        jwtIssuer,
	}
	jwtManager := auth.NewJWTManager(jwtConfig)

	// Get DB instance (type assert from interface)
	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		log.Fatal("Failed to get GORM DB instance")
	}

	// Initialize Redis cache for brute force protection
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	redisCache, err := cache.NewRedisCache(redisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Brute force protection will be disabled.", err)
	}

	// Initialize brute force protection
	var bruteForceProtection *middleware.BruteForceProtection
	if redisCache != nil {
		bruteForceProtection = middleware.NewBruteForceProtection(redisCache)
	}

	// Initialize auth middleware with DB for blacklist checking
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, db)

	// Initialize auth handler with brute force protection
	authHandler := auth_handlers.NewAuthHandler(db, jwtManager, bruteForceProtection)

	// Shared services
	deletionService := services.NewDeletionService(db)
	gradeService := services.NewGradeService(db)

	// Domain handlers
	studentHandler := student_handlers.NewStudentHandler(db, deletionService)
	professorHandler := professor_handlers.NewProfessorHandler(db, deletionService)
	courseHandler := course_handlers.NewCourseHandler(db, deletionService)
	enrollmentHandler := enrollment_handlers.NewEnrollmentHandler(db, deletionService, gradeService)
	gradeHandler := grade_handlers.NewGradeHandler(db, gradeService)

	// Apply security middleware
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000,http://localhost:3001"
	}

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    allowedOrigins,
		RateLimitRequests: 100,             // 100 requests
		RateLimitWindow:   1 * time.Minute, // per minute
	})

	// Health check endpoint (public)
	app.Get("/ping", handlers.HandleCheckHealth(store))

	// API v1 group
	api := app.Group("/api/v1")

	// Auth routes (public)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)

	// Login with brute force protection
	if bruteForceProtection != nil {
		authGroup.Post("/login", bruteForceProtection.CheckAndRecordAttempt(), authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}

	authGroup.Post("/refresh", authHandler.RefreshToken)
	authGroup.Post("/logout", authMiddleware.Required(), authHandler.Logout)

	// Profile routes (protected)
	profileGroup := api.Group("/profile", authMiddleware.Required())
	profileGroup.Get("/", authHandler.GetProfile)

	// Students routes
	students := api.Group("/students", authMiddleware.Required())
	students.Get("/", studentHandler.ListStudents)
	students.Get("/:id", studentHandler.GetStudent)
	students.Post("/", studentHandler.CreateStudent)
	students.Put("/:id", studentHandler.UpdateStudent)
	students.Delete("/:id", authMiddleware.RequireAdmin(), studentHandler.DeleteStudent) // Admin only

	// Professors routes
	professors := api.Group("/professors", authMiddleware.Required())
	professors.Get("/", professorHandler.ListProfessors)
	professors.Get("/:id", professorHandler.GetProfessor)
	professors.Post("/", professorHandler.CreateProfessor)
	professors.Put("/:id", professorHandler.UpdateProfessor)
	professors.Delete("/:id", authMiddleware.RequireAdmin(), professorHandler.DeleteProfessor) // Admin only

	// Courses routes
	courses := api.Group("/courses", authMiddleware.Required())
	courses.Get("/", courseHandler.ListCourses)
	courses.Get("/:id", courseHandler.GetCourse)
	courses.Post("/", courseHandler.CreateCourse)
	courses.Put("/:id", courseHandler.UpdateCourse)
	courses.Delete("/:id", authMiddleware.RequireAdmin(), courseHandler.DeleteCourse) // Admin only: cascades assignments

	// Evaluation scheme (whole-scheme replacement, validated as a unit)
	courses.Put("/:id/evaluations", courseHandler.UpdateEvaluations)
	courses.Get("/:id/evaluations/next-number", courseHandler.NextComponentNumber)

	// Professor assignments (nested under courses)
	courses.Get("/:id/professors", courseHandler.ListAssignments)
	courses.Post("/:id/professors", courseHandler.AssignProfessor)
	courses.Delete("/:id/professors/:professor_id", authMiddleware.RequireAdmin(), courseHandler.UnassignProfessor) // Admin only

	// Enrollments routes
	enrollments := api.Group("/enrollments", authMiddleware.Required())
	enrollments.Get("/", enrollmentHandler.ListEnrollments)
	enrollments.Get("/:id", enrollmentHandler.GetEnrollment)
	enrollments.Post("/", enrollmentHandler.CreateEnrollment)
	enrollments.Delete("/:id", authMiddleware.RequireAdmin(), enrollmentHandler.DeleteEnrollment) // Admin only
	enrollments.Get("/:id/final-grade", enrollmentHandler.GetFinalGrade)

	// Grades routes
	grades := api.Group("/grades", authMiddleware.Required())
	grades.Get("/", gradeHandler.ListGrades)
	grades.Get("/:id", gradeHandler.GetGrade)
	grades.Post("/", gradeHandler.CreateGrade)
	grades.Put("/:id", gradeHandler.UpdateGrade)
	grades.Delete("/:id", authMiddleware.RequireAdmin(), gradeHandler.DeleteGrade) // Admin only
}
