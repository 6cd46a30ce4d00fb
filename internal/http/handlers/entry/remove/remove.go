// Package remove реализует HTTP-обработчик удаления записи журнала.
package remove

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
)

// Service описывает интерфейс бизнес-логики для удаления записи.
type Service interface {
	Delete(ctx context.Context, id int64) error
}

// Handler обрабатывает HTTP-запросы на удаление записи.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удаление записи журнала
// @Description Удаляет запись по её идентификатору.
// @Tags Entries
// @Security BearerAuth
// @Produce  json
// @Param id path int true "Идентификатор записи"
// @Success 204 "Запись удалена"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 404 {object} response.ErrorResponse "Запись не найдена"
// @Router /entries/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.entry.remove"

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

	if err := h.service.Delete(r.Context(), id); err != nil {
		log.Error("failed to delete entry", sl.Err(err))
		w.WriteHeader(response.StatusFromError(err))
		render.JSON(w, r, response.Error("entry not found"))
		return
	}

	log.Info("entry deleted", slog.Int64("id", id))
	w.WriteHeader(http.StatusNoContent)
}
