package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"hackswipe-service/internal/domain"
	"hackswipe-service/internal/geo"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("encode failed")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeServiceError maps domain errors to HTTP statuses. Unexpected errors
// are logged and reported as 500 without detail.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidCoordinate),
		errors.Is(err, geo.ErrInvalidRadius),
		errors.Is(err, domain.ErrInvalidJoin),
		errors.Is(err, domain.ErrInvalidUserID),
		errors.Is(err, domain.ErrInvalidInvitation),
		errors.Is(err, domain.ErrInvalidProfile):
		writeError(w, r, http.StatusBadRequest, rootMessage(err))
	case errors.Is(err, domain.ErrHackathonNotFound),
		errors.Is(err, domain.ErrDeveloperNotFound),
		errors.Is(err, domain.ErrProfileNotFound):
		writeError(w, r, http.StatusNotFound, rootMessage(err))
	case errors.Is(err, domain.ErrAlreadyJoined):
		writeError(w, r, http.StatusConflict, domain.ErrAlreadyJoined.Error())
	default:
		log.Error().Err(err).Str("op", op).Msg("request failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

// rootMessage drops the "op: " prefixes added while wrapping so clients
// see only the validation detail.
func rootMessage(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{
		domain.ErrInvalidCoordinate, geo.ErrInvalidRadius, domain.ErrInvalidJoin,
		domain.ErrInvalidUserID, domain.ErrInvalidInvitation, domain.ErrInvalidProfile,
		domain.ErrHackathonNotFound, domain.ErrDeveloperNotFound, domain.ErrProfileNotFound,
	} {
		if i := strings.Index(msg, sentinel.Error()); i >= 0 {
			return msg[i:]
		}
	}
	return msg
}

// decodeJSON reads exactly one JSON object into dst.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return errors.New("invalid json body")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must contain only one JSON object")
	}
	return nil
}

// queryList collects a repeatable query parameter, also splitting
// comma-separated values.
func queryList(r *http.Request, key string) []string {
	var out []string
	for _, v := range r.URL.Query()[key] {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// now reads clock, defaulting to time.Now.
func now(clock func() time.Time) time.Time {
	if clock == nil {
		return time.Now()
	}
	return clock()
}
