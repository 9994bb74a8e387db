package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/angelofallars/htmx-go"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/angelofallars/facturier/app/component"
	"github.com/angelofallars/facturier/app/event"
	"github.com/angelofallars/facturier/app/session"
	"github.com/angelofallars/facturier/internal/registry"
	"github.com/angelofallars/facturier/internal/service"
)

type HandlerGroup struct {
	svcRegistry service.Registry
	slog        *slog.Logger
}

func NewHandlerGroup(svcRegistry service.Registry, slog *slog.Logger) *HandlerGroup {
	return &HandlerGroup{
		svcRegistry: svcRegistry,
		slog:        slog,
	}
}

func (hg *HandlerGroup) Mount(r chi.Router) {
	r.Route("/registry", func(r chi.Router) {
		r.Get("/", hg.handleGetRegistry)
		r.Post("/", hg.handleAdd)
		r.Get("/select", hg.handleGetSelect)
		r.Get("/table", hg.handleGetTable)
		r.Post("/sort/{field}", hg.handleSort)
		r.Get("/{index}/edit", hg.handleStartEdit)
		r.Put("/{index}", hg.handleCommitEdit)
		r.Post("/edit/cancel", hg.handleCancelEdit)
		r.Post("/{index}/delete", hg.handleRequestDelete)
		r.Post("/delete/confirm", hg.handleConfirmDelete)
		r.Post("/delete/cancel", hg.handleCancelDelete)
	})
}

// handleGetRegistry serves the manager page, or only the shop selector when
// the render query parameter is true.
func (hg *HandlerGroup) handleGetRegistry(w http.ResponseWriter, r *http.Request) {
	if displayOnly, _ := strconv.ParseBool(r.URL.Query().Get("render")); displayOnly {
		hg.handleGetSelect(w, r)
		return
	}

	sessionID, err := session.GetID(r.Context())
	if err != nil {
		showError(w, http.StatusUnauthorized, err)
		return
	}

	view := hg.svcRegistry.View(r.Context(), sessionID)
	templ.Handler(component.FullPage("Matricules fiscaux", component.RegistryManager(view))).ServeHTTP(w, r)
}

func (hg *HandlerGroup) handleGetSelect(w http.ResponseWriter, r *http.Request) {
	_ = htmx.NewResponse().
		RenderTempl(r.Context(), w, component.RegistrySelect(component.SelectorProps{
			Entries:  hg.svcRegistry.Entries(r.Context()),
			Selected: r.URL.Query().Get("shopFiscalId"),
		}))
}

func (hg *HandlerGroup) handleGetTable(w http.ResponseWriter, r *http.Request) {
	sessionID, err := session.GetID(r.Context())
	if err != nil {
		showError(w, http.StatusUnauthorized, err)
		return
	}

	hg.renderManager(w, r, hg.svcRegistry.View(r.Context(), sessionID))
}

func (hg *HandlerGroup) handleSort(w http.ResponseWriter, r *http.Request) {
	sessionID, err := session.GetID(r.Context())
	if err != nil {
		showError(w, http.StatusUnauthorized, err)
		return
	}

	field := registry.ParseField(chi.URLParam(r, "field"))
	hg.renderManager(w, r, hg.svcRegistry.Sort(r.Context(), sessionID, field))
}

func (hg *HandlerGroup) handleAdd(w http.ResponseWriter, r *http.Request) {
	req := &EntryRequest{}
	if err := render.Bind(r, req); err != nil {
		showError(w, http.StatusBadRequest, err)
		return
	}

	sessionID, err := session.GetID(r.Context())
	if err != nil {
		showError(w, http.StatusUnauthorized, err)
		return
	}

	view, err := hg.svcRegistry.Add(r.Context(), sessionID, req.entry())
	if err != nil {
		hg.storeError(w, "adding shop failed", err)
		return
	}

	hg.renderManager(w, r, view)
}

func (hg *HandlerGroup) handleStartEdit(w http.ResponseWriter, r *http.Request) {
	index, err := indexParam(r)
	if err != nil {
		showError(w, http.StatusBadRequest, err)
		return
	}

	sessionID, err := session.GetID(r.Context())
	if err != nil {
		showError(w, http.StatusUnauthorized, err)
		return
	}

	hg.renderManager(w, r, hg.svcRegistry.StartEdit(r.Context(), sessionID, index))
}

func (hg *HandlerGroup) handleCommitEdit(w http.ResponseWriter, r *http.Request) {
	index, err := indexParam(r)
	if err != nil {
		showError(w, http.StatusBadRequest, err)
		return
	}

	req := &EntryRequest{}
	if err := render.Bind(r, req); err != nil {
		showError(w, http.StatusBadRequest, err)
		return
	}

	sessionID, err := session.GetID(r.Context())
	if err != nil {
		showError(w, http.StatusUnauthorized, err)
		return
	}

	view, err := hg.svcRegistry.CommitEdit(r.Context(), sessionID, index, req.entry())
	if err != nil {
		hg.storeError(w, "updating shop failed", err)
		return
	}

	hg.renderManager(w, r, view)
}

func (hg *HandlerGroup) handleCancelEdit(w http.ResponseWriter, r *http.Request) {
	sessionID, err := session.GetID(r.Context())
	if err != nil {
		showError(w, http.StatusUnauthorized, err)
		return
	}

	hg.renderManager(w, r, hg.svcRegistry.CancelEdit(r.Context(), sessionID))
}

func (hg *HandlerGroup) handleRequestDelete(w http.ResponseWriter, r *http.Request) {
	index, err := indexParam(r)
	if err != nil {
		showError(w, http.StatusBadRequest, err)
		return
	}

	sessionID, err := session.GetID(r.Context())
	if err != nil {
		showError(w, http.StatusUnauthorized, err)
		return
	}

	hg.renderManager(w, r, hg.svcRegistry.RequestDelete(r.Context(), sessionID, index), event.TriggerOpenDeleteDialog)
}

func (hg *HandlerGroup) handleConfirmDelete(w http.ResponseWriter, r *http.Request) {
	sessionID, err := session.GetID(r.Context())
	if err != nil {
		showError(w, http.StatusUnauthorized, err)
		return
	}

	view, err := hg.svcRegistry.ConfirmDelete(r.Context(), sessionID)
	if err != nil {
		hg.storeError(w, "deleting shop failed", err)
		return
	}

	hg.renderManager(w, r, view, event.TriggerCloseDeleteDialog)
}

func (hg *HandlerGroup) handleCancelDelete(w http.ResponseWriter, r *http.Request) {
	sessionID, err := session.GetID(r.Context())
	if err != nil {
		showError(w, http.StatusUnauthorized, err)
		return
	}

	hg.renderManager(w, r, hg.svcRegistry.CancelDelete(r.Context(), sessionID), event.TriggerCloseDeleteDialog)
}

func (hg *HandlerGroup) renderManager(w http.ResponseWriter, r *http.Request, view service.RegistryView, triggers ...htmx.EventTrigger) {
	triggers = append(triggers, event.TriggerSetErrMessage(""))
	if view.Changed {
		triggers = append(triggers, event.TriggerRegistryChanged)
	}

	_ = htmx.NewResponse().
		AddTrigger(triggers...).
		RenderTempl(r.Context(), w, component.RegistryManager(view))
}

func (hg *HandlerGroup) storeError(w http.ResponseWriter, msg string, err error) {
	hg.slog.Error(msg, "err", err)
	showError(w, http.StatusInternalServerError, fmt.Errorf("Could not save the shop list: %w", err))
}

type EntryRequest struct {
	ShopName string `form:"shopName"`
	FiscalID string `form:"fiscalId"`
}

// EntryRequest satisfies [render.Binder]
func (req *EntryRequest) Bind(*http.Request) error {
	req.ShopName = strings.TrimSpace(req.ShopName)
	req.FiscalID = strings.TrimSpace(req.FiscalID)
	return nil
}

func (req *EntryRequest) entry() registry.Entry {
	return registry.Entry{ShopName: req.ShopName, FiscalID: req.FiscalID}
}

func indexParam(r *http.Request) (int, error) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		return 0, errors.New("Invalid shop index.")
	}
	return index, nil
}

func showError(w http.ResponseWriter, code int, err error) {
	_ = htmx.NewResponse().
		StatusCode(code).
		Reswap(htmx.SwapNone).
		AddTrigger(event.TriggerSetErrMessage(err.Error())).
		Write(w)
}
