// Package balance реализует HTTP-обработчик получения сальдо пользователя.
//
// Сальдо считается как разница подтверждённых доходов и подтверждённых
// расходов; записи в других статусах в расчёте не участвуют.
package balance

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/finance-ledger/internal/http/response"
	"github.com/magabrotheeeer/finance-ledger/internal/lib/sl"
	"github.com/magabrotheeeer/finance-ledger/internal/models"
)

// Service описывает интерфейс бизнес-логики для расчёта сальдо.
type Service interface {
	BalanceByUser(ctx context.Context, userID int64) (decimal.Decimal, error)
}

// UserProvider проверяет существование пользователя перед расчётом.
type UserProvider interface {
	FindUserByID(ctx context.Context, id int64) (*models.User, error)
}

// Handler обрабатывает HTTP-запросы на расчёт сальдо.
type Handler struct {
	log     *slog.Logger
	service Service
	users   UserProvider
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, users UserProvider) *Handler {
	return &Handler{log: log, service: service, users: users}
}

// ServeHTTP godoc
// @Summary Сальдо пользователя
// @Description Возвращает сальдо пользователя: подтверждённые доходы минус подтверждённые расходы.
// @Tags Users
// @Security BearerAuth
// @Produce  json
// @Param id path int true "Идентификатор пользователя"
// @Success 200 {number} number "Сальдо пользователя"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Router /users/{id}/saldo [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.balance"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("invalid user id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid user id"))
		return
	}

	user, err := h.users.FindUserByID(r.Context(), id)
	if err != nil {
		log.Error("failed to find user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not find user"))
		return
	}
	if user == nil {
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("user not found for the given id"))
		return
	}

	balance, err := h.service.BalanceByUser(r.Context(), id)
	if err != nil {
		log.Error("failed to compute balance", sl.Err(err))
		w.WriteHeader(response.StatusFromError(err))
		render.JSON(w, r, response.Error("could not compute balance"))
		return
	}

	log.Info("balance computed", slog.Int64("user_id", id), slog.String("balance", balance.String()))
	// Исходный контракт отдает сальдо как голое число,
	// а decimal по умолчанию сериализуется строкой в кавычках.
	render.JSON(w, r, json.Number(balance.String()))
}
