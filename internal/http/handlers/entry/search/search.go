// Package search реализует HTTP-обработчик поиска записей журнала
// по параметрам запроса. Поиск всегда ограничен записями текущего
// пользователя; пустые параметры в фильтрации не участвуют.
package search

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/finance-ledger/internal/http/middlewarectx"
	"github.com/magabrotheeeer/finance-ledger/internal/http/response"
	"github.com/magabrotheeeer/finance-ledger/internal/lib/sl"
	"github.com/magabrotheeeer/finance-ledger/internal/models"
)

// Service описывает интерфейс бизнес-логики для поиска записей.
type Service interface {
	Search(ctx context.Context, f models.EntryFilter) ([]*models.Entry, error)
}

// Handler обрабатывает HTTP-запросы на поиск записей.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Поиск записей журнала
// @Description Возвращает записи текущего пользователя, подходящие под фильтр.
// @Tags Entries
// @Security BearerAuth
// @Produce  json
// @Param descricao query string false "Подстрока описания (без учёта регистра)"
// @Param mes query int false "Месяц записи"
// @Param ano query int false "Год записи"
// @Param tipo query string false "Тип записи (INCOME или EXPENSE)"
// @Param status query string false "Статус записи"
// @Success 200 {array} models.EntryDTO "Найденные записи"
// @Failure 400 {object} response.ErrorResponse "Некорректный параметр фильтра"
// @Failure 401 {object} response.ErrorResponse "Пользователь не аутентифицирован"
// @Router /entries [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.entry.search"

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

	filter, err := filterFromQuery(r, user.ID)
	if err != nil {
		log.Error("invalid search filter", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	entries, err := h.service.Search(r.Context(), filter)
	if err != nil {
		log.Error("failed to search entries", sl.Err(err))
		w.WriteHeader(response.StatusFromError(err))
		render.JSON(w, r, response.Error("could not search entries"))
		return
	}

	dtos := make([]models.EntryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, models.NewEntryDTO(*e))
	}

	log.Info("entries found", slog.Int("count", len(dtos)))
	render.JSON(w, r, response.OKWithData(dtos))
}

// filterFromQuery разбирает параметры запроса в фильтр поиска.
func filterFromQuery(r *http.Request, userID int64) (models.EntryFilter, error) {
	filter := models.EntryFilter{UserID: userID}
	query := r.URL.Query()

	if raw := query.Get("descricao"); raw != "" {
		filter.Description = &raw
	}
	if raw := query.Get("mes"); raw != "" {
		month, err := strconv.Atoi(raw)
		if err != nil {
			return models.EntryFilter{}, err
		}
		filter.Month = &month
	}
	if raw := query.Get("ano"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return models.EntryFilter{}, err
		}
		filter.Year = &year
	}
	if raw := query.Get("tipo"); raw != "" {
		entryType, err := models.ParseEntryType(raw)
		if err != nil {
			return models.EntryFilter{}, err
		}
		filter.Type = &entryType
	}
	if raw := query.Get("status"); raw != "" {
		status, err := models.ParseEntryStatus(raw)
		if err != nil {
			return models.EntryFilter{}, err
		}
		filter.Status = &status
	}
	return filter, nil
}
