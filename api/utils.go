package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ukane-philemon/educonnect/internal/db"
	customerror "github.com/ukane-philemon/educonnect/internal/errors"
)

const (
	msgInvalidBody = "invalid request body"
	msgInvalidData = "Données invalides"
)

// handleError maps err to a response. Errors that are not user facing are
// logged and replaced with a generic error.
func (s *Server) handleError(res http.ResponseWriter, req *http.Request, err error) {
	switch {
	case errors.Is(err, db.ErrorNotFound):
		respondWithError(res, http.StatusNotFound, err.Error())
	case errors.Is(err, db.ErrorInvalidRequest):
		respondWithError(res, http.StatusBadRequest, err.Error())
	default:
		s.logger.ErrorContext(req.Context(), "SERVER ERROR", "method", req.Method, "path", req.URL.Path, "error", err)
		respondWithError(res, http.StatusInternalServerError, (&customerror.ErrorUnknown{}).Error())
	}
}

// decodeBody decodes the JSON request body into v.
func decodeBody(req *http.Request, v any) error {
	return json.NewDecoder(req.Body).Decode(v)
}

func respondWithError(res http.ResponseWriter, code int, message string) {
	respondWithJSON(res, code, map[string]string{"error": message})
}

func respondWithMessage(res http.ResponseWriter, code int, message string) {
	respondWithJSON(res, code, map[string]string{"message": message})
}

func respondWithJSON(res http.ResponseWriter, code int, payload any) {
	response, _ := json.Marshal(payload)
	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(code)
	res.Write(response)
}

// respondWithFieldErrors answers a failed validation with the message for
// each invalid field.
func (s *Server) respondWithFieldErrors(res http.ResponseWriter, err error) {
	respondWithJSON(res, http.StatusBadRequest, map[string]any{
		"message": msgInvalidData,
		"champs":  s.fieldErrors(err),
	})
}
