// Package middlewarectx содержит HTTP middleware для установления личности
// вызывающего по JWT токену сессии.
//
// AuthMiddleware читает заголовок Authorization и при валидном токене
// прикладывает пользователя к контексту запроса. Личность живёт только
// в контексте одного запроса, общего изменяемого состояния нет.
// Отсутствие заголовка или невалидный токен не прерывают запрос:
// он продолжается неаутентифицированным, решение об отказе принимает
// политика маршрута (RequireUser).
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/finance-ledger/internal/http/response"
	"github.com/magabrotheeeer/finance-ledger/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// UserKey — ключ, под которым аутентифицированный пользователь
// хранится в контексте запроса.
const UserKey Key = "user"

// TokenVerifier проверяет токен и извлекает из него subject.
type TokenVerifier interface {
	IsValid(tokenStr string) bool
	Subject(tokenStr string) (string, error)
}

// UserFinder возвращает пользователя по email, (nil, nil) при отсутствии.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// UserFromContext возвращает аутентифицированного пользователя запроса,
// если он установлен.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(UserKey).(*models.User)
	return user, ok && user != nil
}

// AuthMiddleware возвращает middleware, восстанавливающее личность
// вызывающего из заголовка Authorization: Bearer <token>.
func AuthMiddleware(verifier TokenVerifier, users UserFinder, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.AuthMiddleware"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				next.ServeHTTP(w, r)
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			if !verifier.IsValid(tokenStr) {
				log.Warn("invalid or expired token")
				next.ServeHTTP(w, r)
				return
			}

			email, err := verifier.Subject(tokenStr)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.FindByEmail(r.Context(), email)
			if err != nil || user == nil {
				log.Warn("token subject has no matching user", slog.String("email", email))
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser отклоняет запросы без установленной личности с кодом 401.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFromContext(r.Context()); !ok {
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("unauthorized"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
