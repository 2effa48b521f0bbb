package adapter

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"

	"github.com/MKhiriev/go-clinic/internal/app"
	"github.com/MKhiriev/go-clinic/internal/service"
	"github.com/MKhiriev/go-clinic/models"
)

// codeErrors maps API error codes back to service sentinels.
var codeErrors = map[string]error{
	app.CodeIllegalAccess:    service.ErrIllegalAccess,
	app.CodeInvalidLogin:     service.ErrInvalidLogin,
	app.CodeDuplicateLogin:   service.ErrDuplicateLogin,
	app.CodeInvalidLogout:    service.ErrInvalidLogout,
	app.CodeNoCurrentPatient: service.ErrNoCurrentPatient,
	app.CodeIllegalOperation: service.ErrIllegalOperation,
	app.CodeBadRequest:       ErrBadRequest,
}

// errorResponse decodes the error body of a non-2xx response. A body that is
// not an API error yields a zero value carrying the raw text as message.
func errorResponse(resp *resty.Response) models.ErrorResponse {
	var body models.ErrorResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil || body.Code == "" {
		body = models.ErrorResponse{Message: strings.TrimSpace(string(resp.Body()))}
	}
	if body.Message == "" {
		body.Message = http.StatusText(resp.StatusCode())
	}

	return body
}

// mapHTTPError returns nil for 2xx responses, otherwise the service error
// matching the API error code.
func mapHTTPError(resp *resty.Response) error {
	if !resp.IsSuccess() {
		body := errorResponse(resp)
		if sentinel, ok := codeErrors[body.Code]; ok {
			return fmt.Errorf("%w: %s", sentinel, body.Message)
		}

		return fmt.Errorf("%w: http %d: %s", ErrUnexpectedResponse, resp.StatusCode(), body.Message)
	}

	return nil
}

// isNotFound reports whether the server answered that the requested entity
// does not exist.
func isNotFound(resp *resty.Response) bool {
	return resp.StatusCode() == http.StatusNotFound && errorResponse(resp).Code == app.CodeNotFound
}
