package api

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/ukane-philemon/educonnect/internal/grade"
)

const msgGradeOutOfRange = "La note doit être entre 0 et 20"

// createGrade saves a grade. An out of range value is reported with a message,
// any other failure with a generic error.
func (s *Server) createGrade(res http.ResponseWriter, req *http.Request) {
	var newGrade grade.NewGrade
	if err := decodeBody(req, &newGrade); err != nil {
		respondWithError(res, http.StatusBadRequest, msgInvalidData)
		return
	}

	if newGrade.Valeur != nil && !grade.ValidValue(*newGrade.Valeur) {
		respondWithMessage(res, http.StatusBadRequest, msgGradeOutOfRange)
		return
	}

	if err := s.validate.Struct(&newGrade); err != nil {
		s.logger.DebugContext(req.Context(), "invalid grade", "fields", s.fieldErrors(err))
		respondWithError(res, http.StatusBadRequest, msgInvalidData)
		return
	}

	g, err := s.grades.Create(req.Context(), &newGrade)
	if err != nil {
		s.logger.WarnContext(req.Context(), "grade not created", "error", err)
		respondWithError(res, http.StatusBadRequest, msgInvalidData)
		return
	}

	s.logger.InfoContext(req.Context(), "grade created", "id", g.ID.Hex())
	respondWithJSON(res, http.StatusCreated, g)
}

func (s *Server) studentGrades(res http.ResponseWriter, req *http.Request) {
	grades, err := s.grades.StudentGrades(req.Context(), chi.URLParam(req, "id"))
	if err != nil {
		s.handleError(res, req, err)
		return
	}

	respondWithJSON(res, http.StatusOK, grades)
}
