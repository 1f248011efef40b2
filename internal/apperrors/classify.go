package apperrors

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/mongo"
)

// Classify maps any failure raised during request processing to the single
// user-facing error shape. Rules are applied in priority order; anything
// unrecognized becomes a generic 500, with the underlying message attached
// only in a development configuration.
func Classify(err error, dev bool) *AppError {
	var app *AppError
	if errors.As(err, &app) {
		return app
	}

	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		return New(http.StatusRequestEntityTooLarge, "Request payload too large")
	}

	var validation *ValidationError
	if errors.As(err, &validation) {
		return BadRequest("Validation Error: missing or invalid fields: " + strings.Join(validation.Fields, ", ")).
			WithCode("VALIDATION_ERROR")
	}

	if isMalformedJSON(err) {
		return BadRequest("Invalid JSON")
	}

	if isTokenError(err) {
		return Unauthorized("Invalid or expired token")
	}

	if mongo.IsDuplicateKeyError(err) {
		return Conflict("Duplicate entry found").WithCode("DUPLICATE_KEY")
	}

	if dev {
		return Internal(err.Error())
	}
	return Internal("Internal server error")
}

func isMalformedJSON(err error) bool {
	var syntax *json.SyntaxError
	var unmarshalType *json.UnmarshalTypeError
	return errors.As(err, &syntax) ||
		errors.As(err, &unmarshalType) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, io.EOF)
}

func isTokenError(err error) bool {
	return errors.Is(err, jwt.ErrTokenExpired) ||
		errors.Is(err, jwt.ErrTokenMalformed) ||
		errors.Is(err, jwt.ErrTokenSignatureInvalid) ||
		errors.Is(err, jwt.ErrTokenNotValidYet) ||
		errors.Is(err, jwt.ErrTokenInvalidClaims) ||
		errors.Is(err, jwt.ErrSignatureInvalid)
}
