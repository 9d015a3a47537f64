package common

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateAndDecode decodes the JSON body into payload and runs its validate tags.
func ValidateAndDecode(r *http.Request, payload interface{}) *AppError {
	if appErr := Decode(r, payload); appErr != nil {
		return appErr
	}
	return ValidateStruct(payload)
}

// Decode decodes the JSON body into payload without validating it.
func Decode(r *http.Request, payload interface{}) *AppError {
	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		return NewAppError(http.StatusBadRequest, "Invalid request body", nil)
	}
	return nil
}

// ValidateStruct runs the validate tags of payload.
func ValidateStruct(payload interface{}) *AppError {
	if err := validate.Struct(payload); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return NewAppError(http.StatusBadRequest, validationErrors.Error(), nil)
		}
		return NewAppError(http.StatusBadRequest, err.Error(), nil)
	}
	return nil
}
