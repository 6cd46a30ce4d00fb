// Package update реализует HTTP-обработчик полного обновления записи журнала.
package update

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

// Service описывает интерфейс бизнес-логики для обновления записи.
type Service interface {
	GetByID(ctx context.Context, id int64) (*models.Entry, error)
	Update(ctx context.Context, e models.Entry) error
}

// Handler обрабатывает HTTP-запросы на обновление записи.
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
// @Summary Обновление записи журнала
// @Description Перезаписывает поля существующей записи. Владелец записи не меняется.
// @Tags Entries
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param id path int true "Идентификатор записи"
// @Param request body models.DummyEntry true "Новые данные записи"
// @Success 200 {object} models.EntryDTO "Обновлённая запись"
// @Failure 400 {object} response.ErrorResponse "Некорректные данные"
// @Failure 404 {object} response.ErrorResponse "Запись не найдена"
// @Router /entries/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.entry.update"

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

	existing, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		log.Error("failed to find entry", sl.Err(err))
		w.WriteHeader(response.StatusFromError(err))
		render.JSON(w, r, response.Error("entry not found"))
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

	entryType, err := models.ParseEntryType(req.Type)
	if err != nil {
		log.Error("invalid entry type", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	status := existing.Status
	if req.Status != "" {
		status, err = models.ParseEntryStatus(req.Status)
		if err != nil {
			log.Error("invalid entry status", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}
	}

	entry := models.Entry{
		ID:          existing.ID,
		Description: req.Description,
		Amount:      req.Amount,
		Month:       req.Month,
		Year:        req.Year,
		Type:        entryType,
		Status:      status,
		UserID:      existing.UserID,
	}

	if err := h.service.Update(r.Context(), entry); err != nil {
		log.Error("failed to update entry", sl.Err(err))
		w.WriteHeader(response.StatusFromError(err))
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	log.Info("entry updated", slog.Int64("id", entry.ID))
	render.JSON(w, r, response.OKWithData(models.NewEntryDTO(entry)))
}
