package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capitalize-ai/health-assistant/internal/model"
	"github.com/capitalize-ai/health-assistant/pkg/logger"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, subject string, method jwt.SigningMethod) string {
	t.Helper()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Scopes: []string{"chat"},
	}
	signed, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func echoUser() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(GetUserID(r.Context())))
	})
}

func TestAuth(t *testing.T) {
	h := Auth(testSecret)(echoUser())

	tests := []struct {
		name   string
		header string
		query  string
		status int
		body   string
	}{
		{"missing", "", "", http.StatusUnauthorized, ""},
		{"malformed", "Token abc", "", http.StatusUnauthorized, ""},
		{"wrong secret", "Bearer " + signToken(t, "other", "u1", jwt.SigningMethodHS256), "", http.StatusUnauthorized, ""},
		{"empty subject", "Bearer " + signToken(t, testSecret, "", jwt.SigningMethodHS256), "", http.StatusUnauthorized, ""},
		{"valid header", "Bearer " + signToken(t, testSecret, "u1", jwt.SigningMethodHS256), "", http.StatusOK, "u1"},
		{"valid query", "", signToken(t, testSecret, "u2", jwt.SigningMethodHS256), http.StatusOK, "u2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := "/"
			if tt.query != "" {
				target += "?access_token=" + tt.query
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, rec.Body.String())
			}
		})
	}
}

func TestRequireScope(t *testing.T) {
	h := Auth(testSecret)(RequireScope("admin")(echoUser()))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, "u1", jwt.SigningMethodHS256))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLoggingSetsCorrelationID(t *testing.T) {
	var seen string
	h := Logging(logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetCorrelationID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Correlation-ID", "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Correlation-ID"))
	assert.Equal(t, http.StatusTeapot, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))
}

func TestRateLimit(t *testing.T) {
	h := RateLimit(2, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		last = httptest.NewRecorder()
		h.ServeHTTP(last, req)
	}
	assert.Equal(t, http.StatusTooManyRequests, last.Code)
	assert.Equal(t, "60", last.Header().Get("Retry-After"))
}

func TestValidateSubmission(t *testing.T) {
	assert.NoError(t, ValidateSubmission(&model.SubmitRequest{Text: "malaria"}))
	assert.NoError(t, ValidateSubmission(&model.SubmitRequest{}))
	assert.Error(t, ValidateSubmission(&model.SubmitRequest{Text: strings.Repeat("a", maxTextLength+1)}))
	assert.Error(t, ValidateSubmission(&model.SubmitRequest{Text: "\xff"}))
	assert.Error(t, ValidateSubmission(&model.SubmitRequest{Attachments: []model.Attachment{{Name: ""}}}))
	assert.Error(t, ValidateSubmission(&model.SubmitRequest{Attachments: []model.Attachment{{Name: "a", Size: -1}}}))
}

func TestValidateIdentifiers(t *testing.T) {
	assert.Error(t, ValidateConversationID("nope"))
	assert.NoError(t, ValidateConversationID("0190b7a4-6f2a-7cc1-8d2e-3f4a5b6c7d8e"))
	assert.NoError(t, ValidateLanguage(""))
	assert.NoError(t, ValidateLanguage("bn"))
	assert.Error(t, ValidateLanguage("de"))
	assert.Error(t, ValidateTitle(strings.Repeat("t", maxTitleLength+1)))
}

func TestAnonymous(t *testing.T) {
	h := Anonymous(echoUser())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, AnonymousUserID, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-User-ID", "asha")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "asha", rec.Body.String())
}
