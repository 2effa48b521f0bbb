package http

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"go.uber.org/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-clinic/internal/config"
	"github.com/MKhiriev/go-clinic/internal/logger"
	"github.com/MKhiriev/go-clinic/internal/mock"
	"github.com/MKhiriev/go-clinic/internal/service"
	"github.com/MKhiriev/go-clinic/models"
)

const (
	testSessionID = "0192f0c4-7b1e-7cc3-a1c8-00000000abcd"
	testToken     = "signed.test.token"
)

// mockedHandler bundles a handler with the mocks behind it.
type mockedHandler struct {
	*Handler
	controller *mock.MockSessionController
	tokens     *mock.MockTokenService
}

func newMockedHandler(t *testing.T) *mockedHandler {
	t.Helper()

	ctrl := gomock.NewController(t)
	controller := mock.NewMockSessionController(ctrl)
	tokens := mock.NewMockTokenService(ctrl)

	h := NewHandler(
		&service.Services{Controller: controller, TokenService: tokens},
		models.NewAppBuildInfo("v1.2.3", "2026-10-01", "abc1234"),
		config.Server{},
		logger.Nop(),
	)

	return &mockedHandler{Handler: h, controller: controller, tokens: tokens}
}

// expectAuthorized lets the auth middleware accept testToken once.
func (m *mockedHandler) expectAuthorized() {
	token := models.Token{SignedString: testToken}
	token.ID = testSessionID
	token.Subject = "user"

	m.tokens.EXPECT().ParseToken(gomock.Any(), testToken).Return(token, nil)
	m.controller.EXPECT().Session(gomock.Any()).Return(models.Session{ID: testSessionID, Username: "user"}, true)
}

// serve sends a request through the full router. A non-nil body is encoded
// as JSON.
func (m *mockedHandler) serve(t *testing.T, method, target string, body any, authorized bool) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authorized {
		req.Header.Set("Authorization", "Bearer "+testToken)
	}

	rec := httptest.NewRecorder()
	m.Init().ServeHTTP(rec, req)

	return rec
}

func (m *mockedHandler) serveWithHeaders(t *testing.T, method, target string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	m.Init().ServeHTTP(rec, req)

	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func assertErrorBody(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()

	assert.Equal(t, status, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, code, decodeBody[models.ErrorResponse](t, rec).Code)
}

func TestNewHandler(t *testing.T) {
	m := newMockedHandler(t)

	assert.Equal(t, service.SessionController(m.controller), m.Handler.controller)
	assert.Equal(t, service.TokenService(m.tokens), m.Handler.tokens)
	assert.Equal(t, "v1.2.3", m.buildInfo.BuildVersion())
	assert.NotNil(t, m.traceIDs)
}

func TestNewHandler_IndependentInstances(t *testing.T) {
	h1 := newMockedHandler(t).Handler
	h2 := newMockedHandler(t).Handler

	assert.NotSame(t, h1, h2)
}
