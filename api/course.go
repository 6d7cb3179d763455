package api

import (
	"net/http"

	"github.com/ukane-philemon/educonnect/internal/course"
)

const msgCourseRequired = "Erreur : Le titre, la durée et le formateur sont obligatoires"

// createCourse saves a course. Missing fields are reported with a message,
// any other failure with the underlying error.
func (s *Server) createCourse(res http.ResponseWriter, req *http.Request) {
	var newCourse course.NewCourse
	if err := decodeBody(req, &newCourse); err != nil {
		respondWithError(res, http.StatusBadRequest, msgInvalidBody)
		return
	}

	if err := s.validate.Struct(&newCourse); err != nil {
		respondWithMessage(res, http.StatusBadRequest, msgCourseRequired)
		return
	}

	c, err := s.courses.Create(req.Context(), &newCourse)
	if err != nil {
		s.logger.WarnContext(req.Context(), "course not created", "error", err)
		respondWithError(res, http.StatusBadRequest, err.Error())
		return
	}

	s.logger.InfoContext(req.Context(), "course created", "id", c.ID.Hex(), "titre", c.Titre)
	respondWithJSON(res, http.StatusCreated, c)
}

func (s *Server) listCourses(res http.ResponseWriter, req *http.Request) {
	courses, err := s.courses.Courses(req.Context())
	if err != nil {
		s.handleError(res, req, err)
		return
	}

	respondWithJSON(res, http.StatusOK, courses)
}
