package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// validate is the shared struct validator for request bodies.
var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeJSONBody decodes a JSON request body into the provided pointer.
// Returns true if successful, false if decoding fails (error response is written automatically).
func decodeJSONBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		BadRequest(w, "Invalid request body")
		return false
	}
	return true
}

// decodeAndValidate decodes a JSON body and runs struct-tag validation on
// it. Validation failures are written as a 422 with the offending field.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v any) bool {
	if !decodeJSONBody(w, r, v) {
		return false
	}
	if err := validate.Struct(v); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			UnprocessableEntity(w, "Invalid field: "+fieldErrs[0].Field())
			return false
		}
		UnprocessableEntity(w, "Invalid request")
		return false
	}
	return true
}
