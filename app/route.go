package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/angelofallars/facturier/app/route/invoice"
	"github.com/angelofallars/facturier/app/route/registry"
	"github.com/angelofallars/facturier/app/session"
)

func (a *App) RegisterRoutes() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)

	a.router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	a.router.Group(func(r chi.Router) {
		r.Use(session.Middleware)

		invoice.NewHandlerGroup(a.svcInvoice, a.svcRegistry, a.currency, a.slog).Mount(r)
		registry.NewHandlerGroup(a.svcRegistry, a.slog).Mount(r)
	})
}
