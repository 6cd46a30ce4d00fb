// Package read реализует HTTP-обработчик получения записи журнала по id.
package read

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/finance-ledger/internal/http/response"
	"github.com/magabrotheeeer/finance-ledger/internal/lib/sl"
	"github.com/magabrotheeeer/finance-ledger/internal/models"
)

// Service описывает интерфейс бизнес-логики для чтения записи.
type Service interface {
	GetByID(ctx context.Context, id int64) (*models.Entry, error)
}

// Handler обрабатывает HTTP-запросы на получение записи.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Получение записи журнала
// @Description Возвращает запись по её идентификатору.
// @Tags Entries
// @Security BearerAuth
// @Produce  json
// @Param id path int true "Идентификатор записи"
// @Success 200 {object} models.EntryDTO "Найденная запись"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 404 {object} response.ErrorResponse "Запись не найдена"
// @Router /entries/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.entry.read"

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

	entry, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		log.Error("failed to find entry", sl.Err(err))
		w.WriteHeader(response.StatusFromError(err))
		render.JSON(w, r, response.Error("entry not found"))
		return
	}

	render.JSON(w, r, response.OKWithData(models.NewEntryDTO(*entry)))
}
