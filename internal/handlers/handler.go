package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"easybooking/internal/apperrors"
	"easybooking/internal/utils"
)

// HandlerFunc is a route handler that raises failures instead of writing
// error responses itself. The single classifier below turns every failure
// into the standard envelope, so all routes share one error shape.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Classified adapts a HandlerFunc to net/http, mapping any returned error
// through the classifier. Underlying detail leaks only in dev mode.
func Classified(dev bool, fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}

		app := apperrors.Classify(err, dev)
		evt := log.Error()
		if app.Status < http.StatusInternalServerError {
			evt = log.Warn()
		}
		evt.Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", app.Status).
			Msg("Request failed")

		utils.RespondWithJSON(w, app.Status, utils.Envelope{
			Success: false,
			Message: app.Message,
			Code:    app.Code,
		})
	}
}

func respond(w http.ResponseWriter, status int, payload interface{}) {
	utils.RespondWithJSON(w, status, payload)
}

// NotFound answers anything that matched no route.
func NotFound() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondWithError(w, http.StatusNotFound, "Requested resource not found")
	})
}
