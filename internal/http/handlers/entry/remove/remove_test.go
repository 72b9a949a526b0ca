package remove

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

// MockService реализует интерфейс remove.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) RemoveEntry(ctx context.Context, userUID, groupName, entryName string) error {
	args := m.Called(ctx, userUID, groupName, entryName)
	return args.Error(0)
}

func newRequest(t *testing.T, groupName, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodDelete, "/groups/"+url.PathEscape(groupName)+"/entries", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("groupName", groupName)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, middlewarectx.UserUID, "uid-1")
	return req.WithContext(ctx)
}

func TestRemoveEntryHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	t.Run("success", func(t *testing.T) {
		mockService := new(MockService)
		mockService.On("RemoveEntry", mock.Anything, "uid-1", "Grade 1", "Ivanov Ivan").Return(nil)
		handler := New(logger, mockService)

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, newRequest(t, "Grade 1", `{"entryName":"Ivanov Ivan"}`))

		assert.Equal(t, http.StatusOK, w.Code)
		var resp response.Response
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.True(t, resp.Success)
		mockService.AssertExpectations(t)
	})

	t.Run("missing entry name", func(t *testing.T) {
		mockService := new(MockService)
		handler := New(logger, mockService)

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, newRequest(t, "Grade 1", `{}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("group not found", func(t *testing.T) {
		mockService := new(MockService)
		mockService.On("RemoveEntry", mock.Anything, "uid-1", "Nope", "Ivanov Ivan").Return(apperr.ErrNotFound)
		handler := New(logger, mockService)

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, newRequest(t, "Nope", `{"entryName":"Ivanov Ivan"}`))

		assert.Equal(t, http.StatusNotFound, w.Code)
		mockService.AssertExpectations(t)
	})
}
