package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/fee-tracker/internal/lib/apperr"
)

// MockService реализует интерфейс middlewarectx.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) ValidateToken(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func uidEchoHandler(t *testing.T, wantUID string, called *bool) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		uid, _ := r.Context().Value(UserUID).(string)
		assert.Equal(t, wantUID, uid)
		w.WriteHeader(http.StatusOK)
	})
}

func TestJWTMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		authHeader     string
		setupMock      func(*MockService)
		expectedStatus int
		wantNextCalled bool
		wantUID        string
	}{
		{
			name:           "valid token",
			authHeader:     "Bearer good-token",
			setupMock: func(m *MockService) {
				m.On("ValidateToken", mock.Anything, "good-token").Return("uid-1", nil)
			},
			expectedStatus: http.StatusOK,
			wantNextCalled: true,
			wantUID:        "uid-1",
		},
		{
			name:           "missing header",
			authHeader:     "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "malformed header",
			authHeader:     "Basic abc",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			authHeader: "Bearer bad-token",
			setupMock: func(m *MockService) {
				m.On("ValidateToken", mock.Anything, "bad-token").Return("", apperr.ErrUnauthorized)
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			called := false
			handler := JWTMiddleware(mockService, testLogger())(uidEchoHandler(t, tt.wantUID, &called))

			req := httptest.NewRequest(http.MethodGet, "/groups/Grade%201/entries", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.wantNextCalled, called)
			mockService.AssertExpectations(t)
		})
	}
}

func TestOptionalJWTMiddleware_AnonymousPassesThrough(t *testing.T) {
	mockService := new(MockService)

	called := false
	handler := OptionalJWTMiddleware(mockService, testLogger())(uidEchoHandler(t, "", &called))

	req := httptest.NewRequest(http.MethodGet, "/groups", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, called)
}

func TestOptionalJWTMiddleware_BadTokenIsAnonymous(t *testing.T) {
	mockService := new(MockService)
	mockService.On("ValidateToken", mock.Anything, "bad-token").Return("", apperr.ErrUnauthorized)

	called := false
	handler := OptionalJWTMiddleware(mockService, testLogger())(uidEchoHandler(t, "", &called))

	req := httptest.NewRequest(http.MethodGet, "/groups", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, called)
}

func TestOptionalJWTMiddleware_ValidTokenInjectsUID(t *testing.T) {
	mockService := new(MockService)
	mockService.On("ValidateToken", mock.Anything, "good-token").Return("uid-1", nil)

	called := false
	handler := OptionalJWTMiddleware(mockService, testLogger())(uidEchoHandler(t, "uid-1", &called))

	req := httptest.NewRequest(http.MethodGet, "/groups", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.True(t, called)
}
