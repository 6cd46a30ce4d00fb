// Package create реализует HTTP-обработчик создания записи журнала.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/finance-ledger/internal/http/middlewarectx"
	"github.com/magabrotheeeer/finance-ledger/internal/http/response"
	"github.com/magabrotheeeer/finance-ledger/internal/lib/sl"
	"github.com/magabrotheeeer/finance-ledger/internal/models"
)

// Service описывает интерфейс бизнес-логики для создания записи.
type Service interface {
	Save(ctx context.Context, e models.Entry) (*models.Entry, error)
}

// Handler обрабатывает HTTP-запросы на создание записи.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создание записи журнала
// @Description Создает новую запись дохода или расхода для текущего пользователя.
// @Tags Entries
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param request body models.DummyEntry true "Данные записи"
// @Success 201 {object} models.EntryDTO "Созданная запись"
// @Failure 400 {object} response.ErrorResponse "Некорректные данные"
// @Failure 401 {object} response.ErrorResponse "Пользователь не аутентифицирован"
// @Router /entries [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.entry.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("authentication required"))
		return
	}

	var req models.DummyEntry
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	entry, err := entryFromRequest(req, user.ID)
	if err != nil {
		log.Error("failed to build entry", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	saved, err := h.service.Save(r.Context(), entry)
	if err != nil {
		log.Error("failed to save entry", sl.Err(err))
		w.WriteHeader(response.StatusFromError(err))
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	log.Info("entry created", slog.Int64("id", saved.ID), slog.Int64("user_id", user.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(models.NewEntryDTO(*saved)))
}

// entryFromRequest конвертирует DTO запроса в доменную запись,
// разбирая строковые поля типа и статуса.
func entryFromRequest(req models.DummyEntry, userID int64) (models.Entry, error) {
	entryType, err := models.ParseEntryType(req.Type)
	if err != nil {
		return models.Entry{}, err
	}

	status := models.StatusPending
	if req.Status != "" {
		status, err = models.ParseEntryStatus(req.Status)
		if err != nil {
			return models.Entry{}, err
		}
	}

	return models.Entry{
		Description: req.Description,
		Amount:      req.Amount,
		Month:       req.Month,
		Year:        req.Year,
		Type:        entryType,
		Status:      status,
		UserID:      userID,
	}, nil
}
