package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/MKhiriev/go-clinic/internal/utils"
)

var requestValidator = validator.New(validator.WithRequiredStructEnabled())

// decodeAndValidate decodes the JSON body into dst and validates its
// struct tags.
func decodeAndValidate(r *http.Request, dst any) error {
	if err := utils.DecodeJSON(r, dst); err != nil {
		return err
	}

	if err := requestValidator.Struct(dst); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return nil
}

// int64Param reads a positive integer URL parameter.
func int64Param(r *http.Request, name string, invalid error) (int64, error) {
	value, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%w: %q", invalid, chi.URLParam(r, name))
	}

	return value, nil
}
