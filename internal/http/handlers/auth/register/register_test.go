package register

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/fee-tracker/internal/http/response"
	"github.com/magabrotheeeer/fee-tracker/internal/lib/apperr"
	"github.com/magabrotheeeer/fee-tracker/internal/models"
)

// MockService реализует интерфейс register.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, userName, login, rawPassword string) (*models.User, error) {
	args := m.Called(ctx, userName, login, rawPassword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func TestRegisterHandler(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    any
		setupMock      func(*MockService)
		expectedStatus int
		expectedOK     bool
	}{
		{
			name: "success",
			requestBody: Request{
				UserName: "Anna Petrova",
				Login:    "anna@example.com",
				Password: "secret123",
			},
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "Anna Petrova", "anna@example.com", "secret123").
					Return(&models.User{UID: "uid-1", UserName: "Anna Petrova", Login: "anna@example.com"}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedOK:     true,
		},
		{
			name: "missing password",
			requestBody: map[string]string{
				"userName": "Anna Petrova",
				"user":     "anna@example.com",
			},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate login",
			requestBody: Request{
				UserName: "Anna Petrova",
				Login:    "anna@example.com",
				Password: "secret123",
			},
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "Anna Petrova", "anna@example.com", "secret123").
					Return(nil, apperr.ErrConflict)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "invalid json",
			requestBody:    "not json",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)
			handler := New(logger, mockService)

			var body []byte
			if s, ok := tt.requestBody.(string); ok {
				body = []byte(s)
			} else {
				var err error
				body, err = json.Marshal(tt.requestBody)
				require.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var resp response.Response
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, tt.expectedOK, resp.Success)
			if tt.expectedOK {
				data, err := json.Marshal(resp.Data)
				require.NoError(t, err)
				assert.Contains(t, string(data), "uid-1")
				assert.NotContains(t, string(data), "secret123")
			}
			mockService.AssertExpectations(t)
		})
	}
}
