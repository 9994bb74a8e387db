package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/angelofallars/facturier/internal/invoice"
	"github.com/angelofallars/facturier/internal/printout"
	"github.com/angelofallars/facturier/internal/registry"
	"github.com/angelofallars/facturier/internal/store"
)

var ctx = context.Background()

func newServices(t *testing.T, policy invoice.Policy) (*invoiceService, *registryService, *Sessions) {
	t.Helper()
	reg := registry.New(store.NewMemory(), registry.NewComparator(language.French), nil)
	sessions := NewSessions(time.Hour, policy, reg).WithClock(func() time.Time {
		return time.Date(2025, time.March, 14, 9, 0, 0, 0, time.UTC)
	})
	opts := printout.Options{Locale: "fr", Currency: "TND", ShopAddress: "8030 GROMBALIA"}
	return NewInvoice(sessions, reg, opts), NewRegistry(sessions, reg), sessions
}

func TestInvoice_SessionsAreIsolated(t *testing.T) {
	svc, _, sessions := newServices(t, invoice.PolicyInclTax)

	svc.SetMotorcycle(ctx, "a", true)
	svc.AddItem(ctx, "a")

	a := svc.Get(ctx, "a")
	b := svc.Get(ctx, "b")

	assert.True(t, a.IsMotorcycle)
	assert.Len(t, a.Items, 2)
	assert.False(t, b.IsMotorcycle)
	assert.Len(t, b.Items, 1)
	assert.Equal(t, "2025-03-14", b.Date)
	assert.Equal(t, 2, sessions.Count())
}

func TestInvoice_TwoLineTotal(t *testing.T) {
	svc, _, _ := newServices(t, invoice.PolicyInclTax)

	svc.AddItem(ctx, "s")
	edits := []struct {
		index int
		field invoice.Field
		value string
	}{
		{0, invoice.FieldTaxRate, "18"},
		{0, invoice.FieldPriceExclTax, "100"},
		{0, invoice.FieldQuantity, "2"},
		{1, invoice.FieldPriceExclTax, "50"},
		{1, invoice.FieldQuantity, "1"},
	}
	for _, e := range edits {
		_, ok := svc.EditItem(ctx, "s", e.index, e.field, e.value)
		require.True(t, ok)
	}

	inv := svc.Get(ctx, "s")
	assert.Equal(t, 118.0, inv.Items[0].PriceInclTax.Float())
	assert.Equal(t, 50.0, inv.Items[1].PriceInclTax.Float())
	assert.Equal(t, 286.0, invoice.Total(inv.Items))
}

func TestInvoice_EditMissingRow(t *testing.T) {
	svc, _, _ := newServices(t, invoice.PolicyInclTax)

	_, ok := svc.EditItem(ctx, "s", 4, invoice.FieldModel, "X")
	assert.False(t, ok)
}

func TestInvoice_HeaderAndClear(t *testing.T) {
	svc, _, _ := newServices(t, invoice.PolicyInclTax)

	inv := svc.SetHeader(ctx, "s", Header{
		Date:         "2025-01-02",
		ClientName:   "Ali",
		ShopFiscalID: "ABC12345",
	})
	assert.Equal(t, "Ali", inv.ClientName)
	assert.Equal(t, "2025-01-02", inv.Date)

	inv = svc.Clear(ctx, "s")
	assert.Empty(t, inv.ClientName)
	assert.Equal(t, "2025-03-14", inv.Date)
}

func TestInvoice_Document(t *testing.T) {
	svc, _, _ := newServices(t, invoice.PolicyInclTax)

	svc.SetHeader(ctx, "s", Header{ShopFiscalID: "XYZ67890"})
	assert.Equal(t, "Boutique B", svc.Document(ctx, "s").ShopName)

	svc.SetHeader(ctx, "s", Header{ShopFiscalID: "UNKNOWN"})
	doc := svc.Document(ctx, "s")
	assert.Equal(t, "N/A", doc.ShopName)
	assert.Equal(t, "zéro", doc.TotalWords)
}

func TestRegistry_AddKeepsRejectedInput(t *testing.T) {
	_, svc, _ := newServices(t, invoice.PolicyInclTax)

	view, err := svc.Add(ctx, "s", registry.Entry{ShopName: "Boutique D"})
	require.NoError(t, err)
	assert.False(t, view.Changed)
	assert.Equal(t, "Boutique D", view.Buffer.ShopName)
	assert.Len(t, view.Rows, 3)

	view, err = svc.Add(ctx, "s", registry.Entry{ShopName: "Boutique D", FiscalID: "DDD11111"})
	require.NoError(t, err)
	assert.True(t, view.Changed)
	assert.Equal(t, registry.Entry{}, view.Buffer)
	assert.Len(t, view.Rows, 4)
}

func TestRegistry_SortedEditTargetsPersistedIndex(t *testing.T) {
	_, svc, _ := newServices(t, invoice.PolicyInclTax)

	view := svc.Sort(ctx, "s", registry.FieldShopName)
	require.Equal(t, registry.Descending, view.Order.Direction)

	top := view.Rows[0]
	assert.Equal(t, "Boutique C", top.Entry.ShopName)

	view = svc.StartEdit(ctx, "s", top.Index)
	assert.True(t, view.Editing)
	assert.Equal(t, top.Entry, view.Buffer)

	view, err := svc.CommitEdit(ctx, "s", top.Index, registry.Entry{ShopName: "Boutique Z", FiscalID: "XXX98765"})
	require.NoError(t, err)
	assert.True(t, view.Changed)
	assert.False(t, view.Editing)
	assert.Equal(t, "Boutique Z", svc.Entries(ctx)[2].ShopName)
}

func TestRegistry_DeleteFlow(t *testing.T) {
	_, svc, _ := newServices(t, invoice.PolicyInclTax)

	view := svc.RequestDelete(ctx, "s", 1)
	row, ok := view.Pending()
	require.True(t, ok)
	assert.Equal(t, "Boutique B", row.Entry.ShopName)

	view = svc.CancelDelete(ctx, "s")
	assert.False(t, view.DeletePending)
	assert.Len(t, svc.Entries(ctx), 3)

	svc.RequestDelete(ctx, "s", 1)
	view, err := svc.ConfirmDelete(ctx, "s")
	require.NoError(t, err)
	assert.True(t, view.Changed)

	entries := svc.Entries(ctx)
	require.Len(t, entries, 2)
	assert.Equal(t, "Boutique A", entries[0].ShopName)
	assert.Equal(t, "Boutique C", entries[1].ShopName)

	view, err = svc.ConfirmDelete(ctx, "s")
	require.NoError(t, err)
	assert.False(t, view.Changed)
}

func TestRegistry_EditorStateIsPerSession(t *testing.T) {
	_, svc, _ := newServices(t, invoice.PolicyInclTax)

	svc.RequestDelete(ctx, "a", 0)
	svc.StartEdit(ctx, "a", 2)

	b := svc.View(ctx, "b")
	assert.False(t, b.DeletePending)
	assert.False(t, b.Editing)
	assert.Equal(t, registry.DefaultOrder, b.Order)
}
