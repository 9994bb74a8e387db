package invoice

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/angelofallars/htmx-go"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/angelofallars/facturier/app/component"
	"github.com/angelofallars/facturier/app/event"
	"github.com/angelofallars/facturier/app/session"
	invoicing "github.com/angelofallars/facturier/internal/invoice"
	"github.com/angelofallars/facturier/internal/printout"
	"github.com/angelofallars/facturier/internal/service"
)

type HandlerGroup struct {
	svcInvoice  service.Invoice
	svcRegistry service.Registry
	currency    string
	slog        *slog.Logger
}

func NewHandlerGroup(svcInvoice service.Invoice, svcRegistry service.Registry, currency string, slog *slog.Logger) *HandlerGroup {
	return &HandlerGroup{
		svcInvoice:  svcInvoice,
		svcRegistry: svcRegistry,
		currency:    currency,
		slog:        slog,
	}
}

func (hg *HandlerGroup) Mount(r chi.Router) {
	r.Get("/", hg.handleIndex)
	r.Route("/invoice", func(r chi.Router) {
		r.Get("/form", hg.handleGetForm)
		r.Post("/mode", hg.handleSetMode)
		r.Post("/header", hg.handleSetHeader)
		r.Post("/items", hg.handleAddItem)
		r.Post("/items/{index}", hg.handleEditItem)
		r.Delete("/items/{index}", hg.handleRemoveItem)
		r.Post("/clear", hg.handleClear)
		r.Get("/print", hg.handlePrint)
	})
}

func (hg *HandlerGroup) handleIndex(w http.ResponseWriter, r *http.Request) {
	sessionID, err := session.GetID(r.Context())
	if err != nil {
		showError(w, http.StatusUnauthorized, err)
		return
	}

	inv := hg.svcInvoice.Get(r.Context(), sessionID)
	view := hg.svcRegistry.View(r.Context(), sessionID)

	templ.Handler(component.FullPage("Facture",
		component.InvoiceForm(hg.formProps(r, inv)),
		component.RegistryManager(view),
	)).ServeHTTP(w, r)
}

func (hg *HandlerGroup) handleGetForm(w http.ResponseWriter, r *http.Request) {
	sessionID, err := session.GetID(r.Context())
	if err != nil {
		showError(w, http.StatusUnauthorized, err)
		return
	}

	hg.renderForm(w, r, hg.svcInvoice.Get(r.Context(), sessionID))
}

func (hg *HandlerGroup) handleSetMode(w http.ResponseWriter, r *http.Request) {
	req := &SetModeRequest{}
	if err := render.Bind(r, req); err != nil {
		showError(w, http.StatusBadRequest, err)
		return
	}

	sessionID, err := session.GetID(r.Context())
	if err != nil {
		showError(w, http.StatusUnauthorized, err)
		return
	}

	hg.renderForm(w, r, hg.svcInvoice.SetMotorcycle(r.Context(), sessionID, req.Motorcycle))
}

func (hg *HandlerGroup) handleSetHeader(w http.ResponseWriter, r *http.Request) {
	req := &SetHeaderRequest{}
	if err := render.Bind(r, req); err != nil {
		showError(w, http.StatusBadRequest, err)
		return
	}

	sessionID, err := session.GetID(r.Context())
	if err != nil {
		showError(w, http.StatusUnauthorized, err)
		return
	}

	hg.svcInvoice.SetHeader(r.Context(), sessionID, service.Header{
		Date:          req.Date,
		ClientName:    req.ClientName,
		ClientID:      req.ClientID,
		ClientAddress: req.ClientAddress,
		ShopFiscalID:  req.ShopFiscalID,
	})

	clearError(w)
}

func (hg *HandlerGroup) handleAddItem(w http.ResponseWriter, r *http.Request) {
	sessionID, err := session.GetID(r.Context())
	if err != nil {
		showError(w, http.StatusUnauthorized, err)
		return
	}

	hg.renderItems(w, r, hg.svcInvoice.AddItem(r.Context(), sessionID))
}

func (hg *HandlerGroup) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
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

	hg.renderItems(w, r, hg.svcInvoice.RemoveItem(r.Context(), sessionID, index))
}

func (hg *HandlerGroup) handleEditItem(w http.ResponseWriter, r *http.Request) {
	index, err := indexParam(r)
	if err != nil {
		showError(w, http.StatusBadRequest, err)
		return
	}

	req := &EditItemRequest{}
	if err := render.Bind(r, req); err != nil {
		showError(w, http.StatusBadRequest, err)
		return
	}

	sessionID, err := session.GetID(r.Context())
	if err != nil {
		showError(w, http.StatusUnauthorized, err)
		return
	}

	inv, ok := hg.svcInvoice.EditItem(r.Context(), sessionID, index, req.field, req.Value)
	if !ok {
		showError(w, http.StatusNotFound, fmt.Errorf("No item at row %d.", index))
		return
	}

	// A non-price edit may re-derive prices on every row.
	if hg.svcInvoice.Policy() == invoicing.PolicyExclTax && !req.field.IsPrice() {
		hg.renderItems(w, r, inv)
		return
	}

	_ = htmx.NewResponse().
		AddTrigger(
			event.TriggerTotalChanged(total(inv)),
			event.TriggerSetErrMessage(""),
		).
		RenderTempl(r.Context(), w, component.ItemRow(component.ItemRowProps{
			Index:      index,
			Item:       inv.Items[index],
			Motorcycle: inv.IsMotorcycle,
		}))
}

func (hg *HandlerGroup) handleClear(w http.ResponseWriter, r *http.Request) {
	sessionID, err := session.GetID(r.Context())
	if err != nil {
		showError(w, http.StatusUnauthorized, err)
		return
	}

	hg.renderForm(w, r, hg.svcInvoice.Clear(r.Context(), sessionID))
}

func (hg *HandlerGroup) handlePrint(w http.ResponseWriter, r *http.Request) {
	sessionID, err := session.GetID(r.Context())
	if err != nil {
		showError(w, http.StatusUnauthorized, err)
		return
	}

	doc := hg.svcInvoice.Document(r.Context(), sessionID)
	doc.AutoPrint = true

	printout.Print(r.Context(), hg.slog, printout.ResponseSurface{W: w}, doc)
}

func (hg *HandlerGroup) formProps(r *http.Request, inv invoicing.Invoice) component.InvoiceFormProps {
	return component.InvoiceFormProps{
		Invoice: inv,
		Selector: component.SelectorProps{
			Entries:  hg.svcRegistry.Entries(r.Context()),
			Selected: inv.ShopFiscalID,
		},
		Total:    total(inv),
		Currency: hg.currency,
	}
}

func (hg *HandlerGroup) renderForm(w http.ResponseWriter, r *http.Request, inv invoicing.Invoice) {
	_ = htmx.NewResponse().
		AddTrigger(
			event.TriggerTotalChanged(total(inv)),
			event.TriggerSetErrMessage(""),
		).
		RenderTempl(r.Context(), w, component.InvoiceForm(hg.formProps(r, inv)))
}

func (hg *HandlerGroup) renderItems(w http.ResponseWriter, r *http.Request, inv invoicing.Invoice) {
	_ = htmx.NewResponse().
		Retarget("#items").
		Reswap(htmx.SwapOuterHTML).
		AddTrigger(
			event.TriggerTotalChanged(total(inv)),
			event.TriggerSetErrMessage(""),
		).
		RenderTempl(r.Context(), w, component.InvoiceItems(component.InvoiceFormProps{Invoice: inv}))
}

type SetModeRequest struct {
	Motorcycle bool `form:"motorcycle"`
}

// SetModeRequest satisfies [render.Binder]
func (*SetModeRequest) Bind(*http.Request) error { return nil }

type SetHeaderRequest struct {
	Date          string `form:"date"`
	ClientName    string `form:"clientName"`
	ClientID      string `form:"clientId"`
	ClientAddress string `form:"clientAddress"`
	ShopFiscalID  string `form:"shopFiscalId"`
}

// SetHeaderRequest satisfies [render.Binder]
func (*SetHeaderRequest) Bind(*http.Request) error { return nil }

type EditItemRequest struct {
	Field string `form:"field"`
	Value string `form:"value"`

	field invoicing.Field `form:"-"`
}

// EditItemRequest satisfies [render.Binder]
func (req *EditItemRequest) Bind(*http.Request) error {
	field, ok := invoicing.ParseField(req.Field)
	if !ok {
		return fmt.Errorf("Unknown item field: %s", req.Field)
	}
	req.field = field
	return nil
}

func indexParam(r *http.Request) (int, error) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		return 0, errors.New("Invalid item index.")
	}
	return index, nil
}

func total(inv invoicing.Invoice) string {
	return invoicing.FormatAmount(invoicing.Total(inv.Items))
}

func showError(w http.ResponseWriter, code int, err error) {
	_ = htmx.NewResponse().
		StatusCode(code).
		Reswap(htmx.SwapNone).
		AddTrigger(event.TriggerSetErrMessage(err.Error())).
		Write(w)
}

func clearError(w http.ResponseWriter) {
	_ = htmx.NewResponse().
		AddTrigger(event.TriggerSetErrMessage("")).
		Write(w)
}
