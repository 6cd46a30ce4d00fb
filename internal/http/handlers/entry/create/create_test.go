package create

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/finance-ledger/internal/http/middlewarectx"
	"github.com/magabrotheeeer/finance-ledger/internal/models"
)

type ServiceMock struct{ mock.Mock }

func (m *ServiceMock) Save(ctx context.Context, e models.Entry) (*models.Entry, error) {
	args := m.Called(ctx, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Entry), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func newRequest(body []byte, user *models.User) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/entries", bytes.NewReader(body))
	ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123")
	if user != nil {
		ctx = context.WithValue(ctx, middlewarectx.UserKey, user)
	}
	return req.WithContext(ctx)
}

func TestCreateHandler_ServeHTTP(t *testing.T) {
	user := &models.User{ID: 7, Name: "Maria", Email: "maria@example.com"}

	validBody := `{"descricao":"salary","valor":"2500.00","mes":3,"ano":2026,"tipo":"income"}`

	t.Run("success", func(t *testing.T) {
		serviceMock := new(ServiceMock)
		serviceMock.On("Save", mock.Anything, mock.MatchedBy(func(e models.Entry) bool {
			return e.Description == "salary" &&
				e.Type == models.TypeIncome &&
				e.Status == models.StatusPending &&
				e.UserID == 7 &&
				e.Amount.Equal(decimal.RequireFromString("2500.00"))
		})).Return(&models.Entry{
			ID:          42,
			Description: "salary",
			Amount:      decimal.RequireFromString("2500.00"),
			Month:       3,
			Year:        2026,
			Type:        models.TypeIncome,
			Status:      models.StatusPending,
			UserID:      7,
		}, nil).Once()

		handler := New(newNoopLogger(), serviceMock)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newRequest([]byte(validBody), user))

		assert.Equal(t, http.StatusCreated, rec.Code)

		var got map[string]any
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		data := got["data"].(map[string]any)
		assert.Equal(t, float64(42), data["id"])
		assert.Equal(t, float64(7), data["usuario"])
		serviceMock.AssertExpectations(t)
	})

	t.Run("no authenticated user", func(t *testing.T) {
		handler := New(newNoopLogger(), new(ServiceMock))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newRequest([]byte(validBody), nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid json body", func(t *testing.T) {
		handler := New(newNoopLogger(), new(ServiceMock))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newRequest([]byte("not a json"), user))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown entry type", func(t *testing.T) {
		body := `{"descricao":"salary","valor":"2500.00","mes":3,"ano":2026,"tipo":"transfer"}`
		handler := New(newNoopLogger(), new(ServiceMock))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newRequest([]byte(body), user))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing required field", func(t *testing.T) {
		body := `{"valor":"2500.00","mes":3,"ano":2026,"tipo":"income"}`
		handler := New(newNoopLogger(), new(ServiceMock))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newRequest([]byte(body), user))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}
