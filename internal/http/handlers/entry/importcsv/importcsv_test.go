package importcsv

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/finance-ledger/internal/errs"
	"github.com/magabrotheeeer/finance-ledger/internal/http/middlewarectx"
	"github.com/magabrotheeeer/finance-ledger/internal/models"
)

type ServiceMock struct{ mock.Mock }

func (m *ServiceMock) ImportCSV(ctx context.Context, filename string, data []byte, userID int64) (*models.ImportResult, error) {
	args := m.Called(ctx, filename, data, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ImportResult), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func newUploadRequest(t *testing.T, fieldName, filename string, content []byte, user *models.User) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(fieldName, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/entries/import", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123")
	if user != nil {
		ctx = context.WithValue(ctx, middlewarectx.UserKey, user)
	}
	return req.WithContext(ctx)
}

func TestImportCSVHandler_ServeHTTP(t *testing.T) {
	user := &models.User{ID: 7, Name: "Maria", Email: "maria@example.com"}
	csvContent := []byte("descricao,valor,mes,ano,tipo,status\nsalary,2500.00,3,2026,INCOME,PENDING\n")

	t.Run("success returns raw import result", func(t *testing.T) {
		serviceMock := new(ServiceMock)
		serviceMock.On("ImportCSV", mock.Anything, "entries.csv", csvContent, int64(7)).
			Return(&models.ImportResult{
				TotalProcessed: 3,
				TotalErrors:    1,
				Errors: []models.RowError{
					{Line: 4, Messages: []string{"invalid amount: abc"}},
				},
			}, nil).Once()

		handler := New(newNoopLogger(), serviceMock)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newUploadRequest(t, "file", "entries.csv", csvContent, user))

		assert.Equal(t, http.StatusOK, rec.Code)

		var got map[string]any
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, float64(3), got["totalLinhasProcessadas"])
		assert.Equal(t, float64(1), got["totalLinhasComErro"])

		rows := got["erros"].([]any)
		require.Len(t, rows, 1)
		row := rows[0].(map[string]any)
		assert.Equal(t, float64(4), row["linha"])
		serviceMock.AssertExpectations(t)
	})

	t.Run("no authenticated user", func(t *testing.T) {
		handler := New(newNoopLogger(), new(ServiceMock))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newUploadRequest(t, "file", "entries.csv", csvContent, nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing file field", func(t *testing.T) {
		handler := New(newNoopLogger(), new(ServiceMock))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newUploadRequest(t, "attachment", "entries.csv", csvContent, user))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("service rejects non csv file", func(t *testing.T) {
		serviceMock := new(ServiceMock)
		serviceMock.On("ImportCSV", mock.Anything, "entries.txt", csvContent, int64(7)).
			Return(nil, errs.NewValidation("the file must be a CSV")).Once()

		handler := New(newNoopLogger(), serviceMock)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newUploadRequest(t, "file", "entries.txt", csvContent, user))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		serviceMock.AssertExpectations(t)
	})
}
