package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jattu8602/school-portal-web-sub001/internal/config"
	"github.com/jattu8602/school-portal-web-sub001/internal/database"
	"github.com/jattu8602/school-portal-web-sub001/internal/handler"
	"github.com/jattu8602/school-portal-web-sub001/internal/jobs"
	"github.com/jattu8602/school-portal-web-sub001/internal/middleware"
	"github.com/jattu8602/school-portal-web-sub001/internal/model"
	"github.com/jattu8602/school-portal-web-sub001/internal/repository"
	"github.com/jattu8602/school-portal-web-sub001/internal/service"
)

func main() {
	// Initialize structured logger
	logLevel := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("starting school portal server",
		"environment", cfg.Server.Env,
		"port", cfg.Server.Port,
	)

	// Connect to database
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := db.Connect(ctx); err != nil {
		cancel()
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	cancel()
	defer db.Close()

	slog.Info("connected to database",
		"host", cfg.Database.Host,
		"namespace", cfg.Database.Namespace,
	)

	// Initialize repositories
	schoolRepo := repository.NewSchoolRepository(db)
	classRepo := repository.NewClassRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	gradeRepo := repository.NewGradeRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	eventRepo := repository.NewEventRepository(db)

	// Initialize services
	sessionStore := service.NewDatabaseSessionStore(sessionRepo)
	authService := service.NewAuthService(service.AuthServiceConfig{
		SchoolRepo:  schoolRepo,
		StudentRepo: studentRepo,
		TeacherRepo: teacherRepo,
		Sessions:    sessionStore,
	})
	attendanceService := service.NewAttendanceService(attendanceRepo, studentRepo, classRepo)
	assignmentService := service.NewAssignmentService(assignmentRepo, classRepo)
	gradeService := service.NewGradeService(gradeRepo, studentRepo, classRepo)
	scheduleService := service.NewScheduleService(scheduleRepo, classRepo)
	profileService := service.NewProfileService(studentRepo, teacherRepo, classRepo)
	portalService := service.NewPortalService(studentRepo, classRepo, eventRepo)

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Rate:   cfg.RateLimit.Rate,
		Window: cfg.RateLimit.Window,
		Burst:  cfg.RateLimit.Burst,
	})
	defer rateLimiter.Stop()

	// Start background jobs
	sweeper := jobs.NewSessionSweeper(sessionRepo, cfg.Session.SweepInterval, cfg.Session.RevokedRetention)
	sweeper.Start()
	defer sweeper.Stop()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	studentHandler := handler.NewStudentHandler(handler.StudentHandlerConfig{
		AttendanceService: attendanceService,
		AssignmentService: assignmentService,
		GradeService:      gradeService,
		ScheduleService:   scheduleService,
		ProfileService:    profileService,
		PortalService:     portalService,
	})
	teacherHandler := handler.NewTeacherHandler(handler.TeacherHandlerConfig{
		AttendanceService: attendanceService,
		AssignmentService: assignmentService,
		GradeService:      gradeService,
		ScheduleService:   scheduleService,
		ProfileService:    profileService,
		PortalService:     portalService,
	})
	healthHandler := handler.NewHealthHandler(db)

	// Role guards for the authenticated sections
	studentGuard := middleware.RequireRole(model.RoleStudent, "/student/login")
	teacherGuard := middleware.RequireRole(model.RoleTeacher, "/teacher/login")

	// Set up routes
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /v1/health", healthHandler.Check)

	// Auth routes (login is public, logout and me require a session)
	mux.HandleFunc("POST /v1/auth/student/login", authHandler.StudentLogin)
	mux.HandleFunc("POST /v1/auth/teacher/login", authHandler.TeacherLogin)
	mux.HandleFunc("POST /v1/auth/logout", authHandler.Logout)
	mux.HandleFunc("GET /v1/auth/me", authHandler.Me)

	// Student section
	mux.Handle("GET /v1/student/home", studentGuard(http.HandlerFunc(studentHandler.Home)))
	mux.Handle("GET /v1/student/assignments", studentGuard(http.HandlerFunc(studentHandler.Assignments)))
	mux.Handle("POST /v1/student/assignments/{assignmentId}/submit", studentGuard(http.HandlerFunc(studentHandler.SubmitAssignment)))
	mux.Handle("GET /v1/student/attendance", studentGuard(http.HandlerFunc(studentHandler.Attendance)))
	mux.Handle("GET /v1/student/grades", studentGuard(http.HandlerFunc(studentHandler.Grades)))
	mux.Handle("GET /v1/student/schedule", studentGuard(http.HandlerFunc(studentHandler.Schedule)))
	mux.Handle("GET /v1/student/profile", studentGuard(http.HandlerFunc(studentHandler.Profile)))
	mux.Handle("PATCH /v1/student/profile", studentGuard(http.HandlerFunc(studentHandler.UpdateProfile)))
	mux.Handle("GET /v1/student/events", studentGuard(http.HandlerFunc(studentHandler.Events)))

	// Teacher section
	mux.Handle("GET /v1/teacher/classes/{classId}/students", teacherGuard(http.HandlerFunc(teacherHandler.Roster)))
	mux.Handle("POST /v1/teacher/classes/{classId}/attendance", teacherGuard(http.HandlerFunc(teacherHandler.MarkAttendance)))
	mux.Handle("GET /v1/teacher/classes/{classId}/attendance", teacherGuard(http.HandlerFunc(teacherHandler.Attendance)))
	mux.Handle("GET /v1/teacher/classes/{classId}/attendance/export", teacherGuard(http.HandlerFunc(teacherHandler.ExportAttendance)))
	mux.Handle("POST /v1/teacher/classes/{classId}/assignments", teacherGuard(http.HandlerFunc(teacherHandler.CreateAssignment)))
	mux.Handle("GET /v1/teacher/classes/{classId}/assignments", teacherGuard(http.HandlerFunc(teacherHandler.Assignments)))
	mux.Handle("GET /v1/teacher/assignments/{assignmentId}/submissions", teacherGuard(http.HandlerFunc(teacherHandler.Submissions)))
	mux.Handle("POST /v1/teacher/classes/{classId}/grades", teacherGuard(http.HandlerFunc(teacherHandler.RecordGrades)))
	mux.Handle("GET /v1/teacher/classes/{classId}/grades", teacherGuard(http.HandlerFunc(teacherHandler.Grades)))
	mux.Handle("GET /v1/teacher/classes/{classId}/schedule", teacherGuard(http.HandlerFunc(teacherHandler.ClassSchedule)))
	mux.Handle("GET /v1/teacher/schedule", teacherGuard(http.HandlerFunc(teacherHandler.Schedule)))
	mux.Handle("GET /v1/teacher/profile", teacherGuard(http.HandlerFunc(teacherHandler.Profile)))
	mux.Handle("PATCH /v1/teacher/profile", teacherGuard(http.HandlerFunc(teacherHandler.UpdateProfile)))
	mux.Handle("GET /v1/teacher/events", teacherGuard(http.HandlerFunc(teacherHandler.Events)))
	mux.Handle("POST /v1/teacher/events", teacherGuard(http.HandlerFunc(teacherHandler.CreateEvent)))

	// Apply global middleware
	app := middleware.Chain(mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.SessionAuth(sessionStore),
		middleware.RateLimit(rateLimiter),
		middleware.Compress,
	)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      app,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutting down server", "signal", sig.String())

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "error", err)
		if closeErr := server.Close(); closeErr != nil {
			slog.Error("server close failed", "error", closeErr)
		}
	}

	slog.Info("server stopped")
}
