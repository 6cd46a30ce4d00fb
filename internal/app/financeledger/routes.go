// Package financeledger предоставляет маршруты для основного приложения.
package financeledger

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/finance-ledger/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/finance-ledger/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/finance-ledger/internal/http/handlers/entry/create"
	"github.com/magabrotheeeer/finance-ledger/internal/http/handlers/entry/importcsv"
	"github.com/magabrotheeeer/finance-ledger/internal/http/handlers/entry/read"
	"github.com/magabrotheeeer/finance-ledger/internal/http/handlers/entry/remove"
	"github.com/magabrotheeeer/finance-ledger/internal/http/handlers/entry/search"
	"github.com/magabrotheeeer/finance-ledger/internal/http/handlers/entry/update"
	"github.com/magabrotheeeer/finance-ledger/internal/http/handlers/entry/updatestatus"
	"github.com/magabrotheeeer/finance-ledger/internal/http/handlers/user/balance"
	"github.com/magabrotheeeer/finance-ledger/internal/http/middlewarectx"
	"github.com/magabrotheeeer/finance-ledger/internal/lib/jwt"
	authservice "github.com/magabrotheeeer/finance-ledger/internal/services/auth"
	ledgerservice "github.com/magabrotheeeer/finance-ledger/internal/services/ledger"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, ledgerService *ledgerservice.LedgerService, authService *authservice.AuthService, jwtMaker jwt.Maker) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.AuthMiddleware(jwtMaker, authService, logger))
			r.Use(middlewarectx.RequireUser)
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/entries", create.New(logger, ledgerService).ServeHTTP)
			r.Get("/entries", search.New(logger, ledgerService).ServeHTTP)
			r.Get("/entries/{id}", read.New(logger, ledgerService).ServeHTTP)
			r.Put("/entries/{id}", update.New(logger, ledgerService).ServeHTTP)
			r.Delete("/entries/{id}", remove.New(logger, ledgerService).ServeHTTP)
			r.Put("/entries/{id}/status", updatestatus.New(logger, ledgerService).ServeHTTP)
			r.Post("/entries/import", importcsv.New(logger, ledgerService).ServeHTTP)
			r.Get("/users/{id}/saldo", balance.New(logger, ledgerService, authService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
