// Package component holds the HTML fragments shared by the route handlers.
package component

//go:generate templ generate

import (
	"strconv"

	"github.com/angelofallars/facturier/internal/invoice"
	"github.com/angelofallars/facturier/internal/registry"
	"github.com/angelofallars/facturier/internal/service"
)

type InvoiceFormProps struct {
	Invoice  invoice.Invoice
	Selector SelectorProps
	Total    string
	Currency string
}

type ItemRowProps struct {
	Index      int
	Item       invoice.LineItem
	Motorcycle bool
}

type SelectorProps struct {
	Entries  []registry.Entry
	Selected string
}

func itemRowID(i int) string {
	return "item-" + strconv.Itoa(i)
}

func itemPath(i int) string {
	return "/invoice/items/" + strconv.Itoa(i)
}

// fieldVals is the hx-vals payload naming the edited column.
func fieldVals(field invoice.Field) string {
	return `{"field": ` + strconv.Quote(string(field)) + `}`
}

func registryRowID(i int) string {
	return "registry-row-" + strconv.Itoa(i)
}

func registryPath(i int, suffix string) string {
	return "/registry/" + strconv.Itoa(i) + suffix
}

func arrow(order registry.Order, field registry.Field) string {
	if order.Field != field {
		return ""
	}
	if order.Direction == registry.Descending {
		return "▼"
	}
	return "▲"
}

// draft is the add form's content. The buffer belongs to the edited row
// while an edit is open.
func draft(view service.RegistryView) registry.Entry {
	if view.Editing {
		return registry.Entry{}
	}
	return view.Buffer
}
