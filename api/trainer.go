package api

import (
	"net/http"

	"github.com/ukane-philemon/educonnect/internal/trainer"
)

func (s *Server) createTrainer(res http.ResponseWriter, req *http.Request) {
	var newTrainer trainer.NewTrainer
	if err := decodeBody(req, &newTrainer); err != nil {
		respondWithError(res, http.StatusBadRequest, msgInvalidBody)
		return
	}

	if err := s.validate.Struct(&newTrainer); err != nil {
		s.respondWithFieldErrors(res, err)
		return
	}

	t, err := s.trainers.Create(req.Context(), &newTrainer)
	if err != nil {
		s.handleError(res, req, err)
		return
	}

	s.logger.InfoContext(req.Context(), "trainer created", "id", t.ID.Hex())
	respondWithJSON(res, http.StatusCreated, t)
}

func (s *Server) listTrainers(res http.ResponseWriter, req *http.Request) {
	trainers, err := s.trainers.Trainers(req.Context())
	if err != nil {
		s.handleError(res, req, err)
		return
	}

	respondWithJSON(res, http.StatusOK, trainers)
}
