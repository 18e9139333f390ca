package common

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, ErrorResponse{Error: message})
}

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// RespondWithDomainError maps err to a status code. Client errors surface
// their own message; anything mapping to 500 is logged server-side and
// replaced with the generic fallback.
func RespondWithDomainError(w http.ResponseWriter, err error, fallback string) {
	code := HTTPStatusFromError(err)
	if code == http.StatusInternalServerError {
		log.Error().Err(err).Msg(fallback)
		RespondWithError(w, code, fallback)
		return
	}
	RespondWithError(w, code, err.Error())
}
