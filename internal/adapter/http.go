package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-clinic/internal/config"
	"github.com/MKhiriev/go-clinic/internal/logger"
	"github.com/MKhiriev/go-clinic/internal/service"
	"github.com/MKhiriev/go-clinic/internal/utils"
	"github.com/MKhiriev/go-clinic/models"
)

// httpController talks to the clinic HTTP API. The bearer token of the
// open session is its only state.
type httpController struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPController returns a [RemoteController] for the server at
// cfg.ServerURL. A URL without scheme is treated as http.
func NewHTTPController(cfg config.Adapter, logger *logger.Logger) (RemoteController, error) {
	baseURL, err := normalizeBaseURL(cfg.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter server url: %w", err)
	}

	return &httpController{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpController) setToken(token string) {
	h.mu.Lock()
	h.token = strings.TrimSpace(token)
	h.mu.Unlock()
}

func (h *httpController) getToken() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpController) Login(ctx context.Context, username, password string) error {
	var result models.TokenResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.LoginRequest{Username: username, Password: password}).
		SetResult(&result).
		Post("/api/session")
	if err != nil {
		return fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		token = result.Token
	}
	if token == "" {
		return fmt.Errorf("%w: login response carries no token", ErrUnexpectedResponse)
	}

	h.setToken(token)
	logger.FromContext(ctx).Info().Str("username", username).Msg("logged in to server")

	return nil
}

// Logout closes the server session. Without a token, or when the server no
// longer knows the session, it fails with ErrInvalidLogout.
func (h *httpController) Logout(ctx context.Context) error {
	if h.getToken() == "" {
		return service.ErrInvalidLogout
	}

	_, err := h.do(ctx, http.MethodDelete, "/api/session", nil, nil)
	if errors.Is(err, service.ErrIllegalAccess) {
		return fmt.Errorf("%w: %w", service.ErrInvalidLogout, err)
	}
	if err != nil {
		return err
	}

	h.setToken("")
	return nil
}

// IsLoggedIn reports whether a token is held. The server may still reject
// it; the token is dropped on the first such rejection.
func (h *httpController) IsLoggedIn(_ context.Context) bool {
	return h.getToken() != ""
}

func (h *httpController) CreatePatient(ctx context.Context, patient models.Patient) (models.Patient, error) {
	var created models.Patient
	if _, err := h.do(ctx, http.MethodPost, "/api/patients", patient, &created); err != nil {
		return models.Patient{}, err
	}

	return created, nil
}

func (h *httpController) SearchPatient(ctx context.Context, phn int64) (*models.Patient, error) {
	var patient models.Patient
	found, err := h.find(ctx, "/api/patients/"+strconv.FormatInt(phn, 10), &patient)
	if err != nil || !found {
		return nil, err
	}

	return &patient, nil
}

func (h *httpController) RetrievePatients(ctx context.Context, name string) ([]models.Patient, error) {
	patients := make([]models.Patient, 0)
	if _, err := h.do(ctx, http.MethodGet, "/api/patients?name="+url.QueryEscape(name), nil, &patients); err != nil {
		return nil, err
	}

	return patients, nil
}

func (h *httpController) UpdatePatient(ctx context.Context, phn int64, patient models.Patient) error {
	_, err := h.do(ctx, http.MethodPut, "/api/patients/"+strconv.FormatInt(phn, 10), patient, nil)
	return err
}

func (h *httpController) DeletePatient(ctx context.Context, phn int64) error {
	_, err := h.do(ctx, http.MethodDelete, "/api/patients/"+strconv.FormatInt(phn, 10), nil, nil)
	return err
}

func (h *httpController) ListPatients(ctx context.Context) ([]models.Patient, error) {
	patients := make([]models.Patient, 0)
	if _, err := h.do(ctx, http.MethodGet, "/api/patients", nil, &patients); err != nil {
		return nil, err
	}

	return patients, nil
}

func (h *httpController) SetCurrentPatient(ctx context.Context, phn int64) error {
	_, err := h.do(ctx, http.MethodPut, "/api/current", models.CurrentPatientRequest{PHN: phn}, nil)
	return err
}

func (h *httpController) GetCurrentPatient(ctx context.Context) (*models.Patient, error) {
	var patient models.Patient
	found, err := h.find(ctx, "/api/current", &patient)
	if err != nil || !found {
		return nil, err
	}

	return &patient, nil
}

func (h *httpController) UnsetCurrentPatient(ctx context.Context) error {
	_, err := h.do(ctx, http.MethodDelete, "/api/current", nil, nil)
	return err
}

func (h *httpController) CreateNote(ctx context.Context, text string) (models.Note, error) {
	var note models.Note
	if _, err := h.do(ctx, http.MethodPost, "/api/notes", models.NoteRequest{Text: text}, &note); err != nil {
		return models.Note{}, err
	}

	return note, nil
}

func (h *httpController) SearchNote(ctx context.Context, code int64) (*models.Note, error) {
	var note models.Note
	found, err := h.find(ctx, "/api/notes/"+strconv.FormatInt(code, 10), &note)
	if err != nil || !found {
		return nil, err
	}

	return &note, nil
}

func (h *httpController) RetrieveNotes(ctx context.Context, text string) ([]models.Note, error) {
	notes := make([]models.Note, 0)
	if _, err := h.do(ctx, http.MethodGet, "/api/notes?text="+url.QueryEscape(text), nil, &notes); err != nil {
		return nil, err
	}

	return notes, nil
}

func (h *httpController) UpdateNote(ctx context.Context, code int64, text string) (bool, error) {
	var result models.UpdateResult
	if _, err := h.do(ctx, http.MethodPut, "/api/notes/"+strconv.FormatInt(code, 10), models.NoteRequest{Text: text}, &result); err != nil {
		return false, err
	}

	return result.Found, nil
}

func (h *httpController) DeleteNote(ctx context.Context, code int64) (bool, error) {
	var result models.UpdateResult
	if _, err := h.do(ctx, http.MethodDelete, "/api/notes/"+strconv.FormatInt(code, 10), nil, &result); err != nil {
		return false, err
	}

	return result.Found, nil
}

func (h *httpController) ListNotes(ctx context.Context) ([]models.Note, error) {
	notes := make([]models.Note, 0)
	if _, err := h.do(ctx, http.MethodGet, "/api/notes", nil, &notes); err != nil {
		return nil, err
	}

	return notes, nil
}

func (h *httpController) ServerVersion(ctx context.Context) (models.BuildInfoResponse, error) {
	var info models.BuildInfoResponse

	resp, err := h.client.R().SetContext(ctx).SetResult(&info).Get("/api/version")
	if err != nil {
		return info, fmt.Errorf("version request: %w", err)
	}

	return info, mapHTTPError(resp)
}

// find GETs path into result. A not_found answer is reported as
// found == false with no error.
func (h *httpController) find(ctx context.Context, path string, result any) (bool, error) {
	resp, err := h.send(ctx, http.MethodGet, path, nil, result)
	if err != nil {
		return false, err
	}
	if isNotFound(resp) {
		return false, nil
	}

	return true, h.checkResponse(resp)
}

// do sends an authorized request and maps any error response.
func (h *httpController) do(ctx context.Context, method, path string, body, result any) (*resty.Response, error) {
	resp, err := h.send(ctx, method, path, body, result)
	if err != nil {
		return nil, err
	}

	return resp, h.checkResponse(resp)
}

func (h *httpController) send(ctx context.Context, method, path string, body, result any) (*resty.Response, error) {
	req := h.authedRequest(ctx)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("%s %s request: %w", method, path, err)
	}

	return resp, nil
}

// checkResponse maps resp to an error. A rejected token is dropped so the
// client falls back to the login screen.
func (h *httpController) checkResponse(resp *resty.Response) error {
	err := mapHTTPError(resp)
	if errors.Is(err, service.ErrIllegalAccess) {
		h.setToken("")
	}

	return err
}

func (h *httpController) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.getToken(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
