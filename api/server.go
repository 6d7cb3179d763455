package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/ukane-philemon/educonnect/internal/course"
	"github.com/ukane-philemon/educonnect/internal/grade"
	"github.com/ukane-philemon/educonnect/internal/student"
	"github.com/ukane-philemon/educonnect/internal/trainer"
)

// Repositories are the persistence handles used by the route handlers.
type Repositories struct {
	Trainers trainer.Repository
	Courses  course.Repository
	Students student.Repository
	Grades   grade.Repository
}

type Options struct {
	// CORSOrigins lists the origins allowed to call the API. "*" allows any
	// origin.
	CORSOrigins []string
	// RequestsPerMinute limits requests per client IP. Zero disables the
	// limit.
	RequestsPerMinute int
	// Ping reports whether the database is reachable. A nil Ping always
	// reports healthy.
	Ping func(ctx context.Context) error
}

type Server struct {
	trainers trainer.Repository
	courses  course.Repository
	students student.Repository
	grades   grade.Repository

	opts       Options
	logger     *slog.Logger
	validate   *validator.Validate
	translator ut.Translator
}

// NewServer creates and returns a new instance of *Server.
func NewServer(repos *Repositories, opts Options, logger *slog.Logger) (*Server, error) {
	if repos == nil || repos.Trainers == nil || repos.Courses == nil || repos.Students == nil || repos.Grades == nil {
		return nil, errors.New("all repositories are required")
	}

	validate, translator, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("newValidator error: %w", err)
	}

	return &Server{
		trainers:   repos.Trainers,
		courses:    repos.Courses,
		students:   repos.Students,
		grades:     repos.Grades,
		opts:       opts,
		logger:     logger,
		validate:   validate,
		translator: translator,
	}, nil
}

// Router returns the http.Handler serving the API under /api.
func (s *Server) Router() http.Handler {
	requestLogger := slog.NewLogLogger(s.logger.Handler(), slog.LevelInfo)

	mux := chi.NewMux()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)
	mux.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: requestLogger, NoColor: true}))
	mux.Use(middleware.Recoverer)
	mux.Use(corsMiddleware(s.opts.CORSOrigins))

	mux.Route("/api", func(r chi.Router) {
		if s.opts.RequestsPerMinute > 0 {
			r.Use(httprate.LimitByIP(s.opts.RequestsPerMinute, time.Minute))
		}

		r.Get("/health", s.health)

		r.Post("/trainers", s.createTrainer)
		r.Get("/trainers", s.listTrainers)

		r.Post("/students", s.createStudent)
		r.Get("/students", s.listStudents)
		r.Delete("/students/grade/{id}", s.deleteStudentWithGrades)

		r.Post("/courses", s.createCourse)
		r.Get("/courses", s.listCourses)

		r.Post("/grades", s.createGrade)
		r.Get("/grades/student/{id}", s.studentGrades)

		r.Get("/stats/course/{courseId}", s.courseStats)
	})

	return mux
}

func (s *Server) health(res http.ResponseWriter, req *http.Request) {
	if s.opts.Ping != nil {
		if err := s.opts.Ping(req.Context()); err != nil {
			s.logger.ErrorContext(req.Context(), "database ping failed", "error", err)
			respondWithJSON(res, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	respondWithJSON(res, http.StatusOK, map[string]string{"status": "ok"})
}
