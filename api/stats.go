package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/ukane-philemon/educonnect/internal/course"
	"github.com/ukane-philemon/educonnect/internal/stats"
)

type courseStatsResponse struct {
	Cours *course.Course `json:"cours"`
	*stats.Summary
}

// courseStats summarizes the grades given for a course.
func (s *Server) courseStats(res http.ResponseWriter, req *http.Request) {
	courseID := chi.URLParam(req, "courseId")

	c, err := s.courses.Course(req.Context(), courseID)
	if err != nil {
		s.handleError(res, req, err)
		return
	}

	values, err := s.grades.CourseGradeValues(req.Context(), courseID)
	if err != nil {
		s.handleError(res, req, err)
		return
	}

	summary, err := stats.Summarize(values)
	if err != nil {
		s.handleError(res, req, fmt.Errorf("stats.Summarize error: %w", err))
		return
	}

	respondWithJSON(res, http.StatusOK, &courseStatsResponse{
		Cours:   c,
		Summary: summary,
	})
}
