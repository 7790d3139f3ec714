package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	hooktest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/tariff-sync/internal/domain"
	"github.com/vfg2006/tariff-sync/internal/usecases/authenticating"
	"github.com/vfg2006/tariff-sync/internal/usecases/authenticating/mocks"
	"github.com/vfg2006/tariff-sync/pkg/apiErrors"
	"github.com/vfg2006/tariff-sync/pkg/log"
	"go.uber.org/mock/gomock"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthMiddleware(t *testing.T) {
	adminClaims := &domain.Claims{UserName: "operador", UserRoleID: domain.RoleAdmin}

	tests := []struct {
		name       string
		path       string
		header     string
		setupMock  func(m *mocks.MockAuthenticator)
		wantStatus int
		wantCode   string
	}{
		{
			name:       "healthcheck é público",
			path:       "/healthcheck",
			setupMock:  func(m *mocks.MockAuthenticator) {},
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "metrics é público",
			path:       "/metrics",
			setupMock:  func(m *mocks.MockAuthenticator) {},
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "sem cabeçalho",
			path:       "/v1/cron/status",
			setupMock:  func(m *mocks.MockAuthenticator) {},
			wantStatus: http.StatusUnauthorized,
			wantCode:   apiErrors.ErrInvalidToken,
		},
		{
			name:       "sem prefixo bearer",
			path:       "/v1/cron/status",
			header:     "abc",
			setupMock:  func(m *mocks.MockAuthenticator) {},
			wantStatus: http.StatusUnauthorized,
			wantCode:   apiErrors.ErrInvalidToken,
		},
		{
			name:   "token inválido",
			path:   "/v1/cron/status",
			header: "Bearer abc",
			setupMock: func(m *mocks.MockAuthenticator) {
				m.EXPECT().ValidateToken("abc").Return(nil, authenticating.ErrInvalidToken)
			},
			wantStatus: http.StatusUnauthorized,
			wantCode:   apiErrors.ErrInvalidToken,
		},
		{
			name:   "token expirado",
			path:   "/v1/cron/status",
			header: "Bearer abc",
			setupMock: func(m *mocks.MockAuthenticator) {
				m.EXPECT().ValidateToken("abc").Return(nil, authenticating.NewAuthError(authenticating.ErrExpiredToken, apiErrors.ErrExpiredToken, ""))
			},
			wantStatus: http.StatusUnauthorized,
			wantCode:   apiErrors.ErrExpiredToken,
		},
		{
			name:   "token válido",
			path:   "/v1/cron/status",
			header: "Bearer abc",
			setupMock: func(m *mocks.MockAuthenticator) {
				m.EXPECT().ValidateToken("abc").Return(adminClaims, nil)
			},
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			auth := mocks.NewMockAuthenticator(ctrl)
			tt.setupMock(auth)

			var gotClaims *domain.Claims
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotClaims, _ = r.Context().Value(ContextKeyUser).(*domain.Claims)
				w.WriteHeader(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(auth)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Contains(t, rec.Body.String(), tt.wantCode)
			}
			if tt.header == "Bearer abc" && tt.wantStatus == http.StatusNoContent {
				assert.Equal(t, adminClaims, gotClaims)
			}
		})
	}
}

func TestAdminOnly(t *testing.T) {
	tests := []struct {
		name       string
		claims     *domain.Claims
		wantStatus int
	}{
		{name: "sem claims", claims: nil, wantStatus: http.StatusUnauthorized},
		{name: "perfil diferente", claims: &domain.Claims{UserName: "leitor", UserRoleID: 2}, wantStatus: http.StatusForbidden},
		{name: "administrador", claims: &domain.Claims{UserName: "operador", UserRoleID: domain.RoleAdmin}, wantStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/tariffs", nil)
			if tt.claims != nil {
				req = req.WithContext(contextWithClaims(req, tt.claims))
			}
			rec := httptest.NewRecorder()

			AdminOnly()(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func captureLogs(t *testing.T) *hooktest.Hook {
	t.Helper()
	log.SetupTestLogger()
	hook := hooktest.NewGlobal()
	t.Cleanup(func() { logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks)) })
	return hook
}

func TestLoggingMiddleware(t *testing.T) {
	tests := []struct {
		name         string
		incomingID   string
		status       int
		wantLevel    logrus.Level
		wantReusedID bool
	}{
		{name: "gera id de correlação", status: http.StatusAccepted, wantLevel: logrus.InfoLevel},
		{name: "reaproveita id recebido", incomingID: "req-123", status: http.StatusOK, wantLevel: logrus.InfoLevel, wantReusedID: true},
		{name: "erro do cliente", status: http.StatusConflict, wantLevel: logrus.WarnLevel},
		{name: "erro do servidor", status: http.StatusBadGateway, wantLevel: logrus.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hook := captureLogs(t)

			var seenID string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seenID = log.GetCorrelationID(r.Context())
				w.WriteHeader(tt.status)
			})

			req := httptest.NewRequest(http.MethodPost, "/v1/cron/tariffs", nil)
			if tt.incomingID != "" {
				req.Header.Set(CorrelationIDHeader, tt.incomingID)
			}
			rec := httptest.NewRecorder()

			LoggingMiddleware()(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			require.NotEmpty(t, seenID)
			assert.Equal(t, seenID, rec.Header().Get(CorrelationIDHeader))
			if tt.wantReusedID {
				assert.Equal(t, tt.incomingID, seenID)
			}

			last := hook.LastEntry()
			require.NotNil(t, last)
			assert.Equal(t, tt.wantLevel, last.Level)
			assert.Equal(t, seenID, last.Data["correlation_id"])
			assert.Equal(t, tt.status, last.Data["status_code"])
			assert.Equal(t, "/v1/cron/tariffs", last.Data["path"])
		})
	}
}

func TestLogPanicMiddleware(t *testing.T) {
	hook := captureLogs(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		LogPanicMiddleware()(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/tariffs", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), apiErrors.ErrInternalServer)

	last := hook.LastEntry()
	require.NotNil(t, last)
	assert.Equal(t, logrus.ErrorLevel, last.Level)
	assert.Equal(t, "boom", last.Data["error"])
	assert.NotEmpty(t, last.Data["stack_trace"])
}

func contextWithClaims(r *http.Request, claims *domain.Claims) context.Context {
	return context.WithValue(r.Context(), ContextKeyUser, claims)
}
