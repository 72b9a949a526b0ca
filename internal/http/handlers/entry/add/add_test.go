package add

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/fee-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fee-tracker/internal/http/response"
	"github.com/magabrotheeeer/fee-tracker/internal/lib/apperr"
)

// MockService реализует интерфейс add.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) AddEntry(ctx context.Context, userUID, groupName, entryName string) error {
	args := m.Called(ctx, userUID, groupName, entryName)
	return args.Error(0)
}

func newRequest(t *testing.T, groupName, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/groups/"+url.PathEscape(groupName)+"/entries", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("groupName", groupName)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, middlewarectx.UserUID, "uid-1")
	return req.WithContext(ctx)
}

func TestAddEntryHandler(t *testing.T) {
	tests := []struct {
		name           string
		groupName      string
		requestBody    string
		setupMock      func(*MockService)
		expectedStatus int
	}{
		{
			name:        "success",
			groupName:   "Grade 1",
			requestBody: `{"entryName":"Ivanov Ivan"}`,
			setupMock: func(m *MockService) {
				m.On("AddEntry", mock.Anything, "uid-1", "Grade 1", "Ivanov Ivan").Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing entry name",
			groupName:      "Grade 1",
			requestBody:    `{}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "group not found",
			groupName:   "Nope",
			requestBody: `{"entryName":"Ivanov Ivan"}`,
			setupMock: func(m *MockService) {
				m.On("AddEntry", mock.Anything, "uid-1", "Nope", "Ivanov Ivan").Return(apperr.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:        "duplicate entry",
			groupName:   "Grade 1",
			requestBody: `{"entryName":"Ivanov Ivan"}`,
			setupMock: func(m *MockService) {
				m.On("AddEntry", mock.Anything, "uid-1", "Grade 1", "Ivanov Ivan").Return(apperr.ErrConflict)
			},
			expectedStatus: http.StatusConflict,
		},
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)
			handler := New(logger, mockService)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, newRequest(t, tt.groupName, tt.requestBody))

			assert.Equal(t, tt.expectedStatus, w.Code)

			var resp response.Response
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, tt.expectedStatus == http.StatusOK, resp.Success)
			mockService.AssertExpectations(t)
		})
	}
}
