package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/examboard/portal-api/internal/core/domain"
	"github.com/examboard/portal-api/internal/core/token"
)

func handleError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)
	return rec
}

func TestErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		kind string
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
		{"expired token", token.ErrExpired, http.StatusUnauthorized, "unauthorized"},
		{"bad signature", token.ErrSignatureInvalid, http.StatusUnauthorized, "unauthorized"},
		{"malformed token", token.ErrMalformed, http.StatusUnauthorized, "unauthorized"},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"duplicate account", domain.ErrPrincipalExists, http.StatusConflict, "conflict"},
		{"missing account", domain.ErrPrincipalNotFound, http.StatusNotFound, "not_found"},
		{"missing notice", domain.ErrNoticeNotFound, http.StatusNotFound, "not_found"},
		{"upstream down", domain.ErrUpstream, http.StatusServiceUnavailable, "upstream_failure"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := handleError(t, tc.err)
			assert.Equal(t, tc.code, rec.Code)
			assert.Contains(t, rec.Body.String(), fmt.Sprintf("%q", tc.kind))
		})
	}
}

func TestErrorHandler_WrappedErrorsStillMap(t *testing.T) {
	rec := handleError(t, fmt.Errorf("%w: dial tcp refused", domain.ErrUpstream))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.NotContains(t, rec.Body.String(), "dial tcp", "internal detail must not leak")
}

func TestErrorHandler_VerificationFailuresShareOneBody(t *testing.T) {
	expired := handleError(t, token.ErrExpired)
	badSig := handleError(t, token.ErrSignatureInvalid)
	malformed := handleError(t, token.ErrMalformed)

	assert.Equal(t, expired.Body.String(), badSig.Body.String())
	assert.Equal(t, expired.Body.String(), malformed.Body.String())
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	rec := handleError(t, echo.NewHTTPError(http.StatusBadRequest, "field email is required"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation_error")
	assert.Contains(t, rec.Body.String(), "field email is required")
}

func TestErrorHandler_UnknownErrorHidesCause(t *testing.T) {
	rec := handleError(t, errors.New("pq: connection reset"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "pq:")
}
