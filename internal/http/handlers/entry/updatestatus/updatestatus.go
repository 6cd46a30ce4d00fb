// Package updatestatus реализует HTTP-обработчик смены статуса записи журнала.
package updatestatus

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/finance-ledger/internal/http/response"
	"github.com/magabrotheeeer/finance-ledger/internal/lib/sl"
	"github.com/magabrotheeeer/finance-ledger/internal/models"
)

// Request — структура входных данных для смены статуса.
type Request struct {
	Status string `json:"status" validate:"required"`
}

// Service описывает интерфейс бизнес-логики для смены статуса записи.
type Service interface {
	UpdateStatus(ctx context.Context, id int64, status models.EntryStatus) (*models.Entry, error)
}

// Handler обрабатывает HTTP-запросы на смену статуса записи.
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
// @Summary Смена статуса записи журнала
// @Description Переводит запись в новый статус, остальные поля не меняются.
// @Tags Entries
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param id path int true "Идентификатор записи"
// @Param request body Request true "Новый статус"
// @Success 200 {object} models.EntryDTO "Запись с новым статусом"
// @Failure 400 {object} response.ErrorResponse "Некорректный статус"
// @Failure 404 {object} response.ErrorResponse "Запись не найдена"
// @Router /entries/{id}/status [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.entry.updatestatus"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("invalid entry id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid entry id"))
		return
	}

	var req Request
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

	status, err := models.ParseEntryStatus(req.Status)
	if err != nil {
		log.Error("invalid entry status", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	entry, err := h.service.UpdateStatus(r.Context(), id, status)
	if err != nil {
		log.Error("failed to update entry status", sl.Err(err))
		w.WriteHeader(response.StatusFromError(err))
		render.JSON(w, r, response.Error("entry not found"))
		return
	}

	log.Info("entry status updated",
		slog.Int64("id", entry.ID),
		slog.String("status", string(entry.Status)))
	render.JSON(w, r, response.OKWithData(models.NewEntryDTO(*entry)))
}
