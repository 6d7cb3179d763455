package api

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/ukane-philemon/educonnect/internal/student"
)

const msgStudentDeleted = "Étudiant et notes supprimés"

func (s *Server) createStudent(res http.ResponseWriter, req *http.Request) {
	var newStudent student.NewStudent
	if err := decodeBody(req, &newStudent); err != nil {
		respondWithError(res, http.StatusBadRequest, msgInvalidBody)
		return
	}

	if err := s.validate.Struct(&newStudent); err != nil {
		s.respondWithFieldErrors(res, err)
		return
	}

	st, err := s.students.Create(req.Context(), &newStudent)
	if err != nil {
		s.handleError(res, req, err)
		return
	}

	s.logger.InfoContext(req.Context(), "student created", "id", st.ID.Hex())
	respondWithJSON(res, http.StatusCreated, st)
}

func (s *Server) listStudents(res http.ResponseWriter, req *http.Request) {
	students, err := s.students.Students(req.Context())
	if err != nil {
		s.handleError(res, req, err)
		return
	}

	respondWithJSON(res, http.StatusOK, students)
}

// deleteStudentWithGrades deletes a student and every grade they received.
func (s *Server) deleteStudentWithGrades(res http.ResponseWriter, req *http.Request) {
	studentID := chi.URLParam(req, "id")

	nGrades, err := s.students.Delete(req.Context(), studentID)
	if err != nil {
		s.handleError(res, req, err)
		return
	}

	s.logger.InfoContext(req.Context(), "student deleted", "id", studentID, "grades", nGrades)
	respondWithJSON(res, http.StatusOK, map[string]any{
		"message":         msgStudentDeleted,
		"etudiant":        studentID,
		"notesSupprimees": nGrades,
	})
}
