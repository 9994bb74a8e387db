package service

import (
	"context"

	"github.com/angelofallars/facturier/internal/invoice"
	"github.com/angelofallars/facturier/internal/printout"
	"github.com/angelofallars/facturier/internal/registry"
)

type Invoice interface {
	Get(ctx context.Context, sessionID string) invoice.Invoice
	SetMotorcycle(ctx context.Context, sessionID string, on bool) invoice.Invoice
	SetHeader(ctx context.Context, sessionID string, h Header) invoice.Invoice
	AddItem(ctx context.Context, sessionID string) invoice.Invoice
	RemoveItem(ctx context.Context, sessionID string, index int) invoice.Invoice
	// EditItem changes one field of row index. ok is false when the row does
	// not exist.
	EditItem(ctx context.Context, sessionID string, index int, field invoice.Field, value string) (inv invoice.Invoice, ok bool)
	Clear(ctx context.Context, sessionID string) invoice.Invoice
	Document(ctx context.Context, sessionID string) printout.Document
	Policy() invoice.Policy
}

// Header holds the invoice fields above the item table.
type Header struct {
	Date          string
	ClientName    string
	ClientID      string
	ClientAddress string
	ShopFiscalID  string
}

type invoiceService struct {
	sessions *Sessions
	registry *registry.Registry
	print    printout.Options
}

func NewInvoice(sessions *Sessions, reg *registry.Registry, print printout.Options) *invoiceService {
	return &invoiceService{
		sessions: sessions,
		registry: reg,
		print:    print,
	}
}

func (s *invoiceService) Policy() invoice.Policy { return s.sessions.policy }

func (s *invoiceService) Get(_ context.Context, sessionID string) invoice.Invoice {
	return s.update(sessionID, func(*invoice.Draft) {})
}

func (s *invoiceService) SetMotorcycle(_ context.Context, sessionID string, on bool) invoice.Invoice {
	return s.update(sessionID, func(d *invoice.Draft) {
		d.SetMotorcycle(on)
	})
}

func (s *invoiceService) SetHeader(_ context.Context, sessionID string, h Header) invoice.Invoice {
	return s.update(sessionID, func(d *invoice.Draft) {
		d.SetDate(h.Date)
		d.SetClientName(h.ClientName)
		d.SetClientID(h.ClientID)
		d.SetClientAddress(h.ClientAddress)
		d.SetShopFiscalID(h.ShopFiscalID)
	})
}

func (s *invoiceService) AddItem(_ context.Context, sessionID string) invoice.Invoice {
	return s.update(sessionID, func(d *invoice.Draft) {
		d.AddItem()
	})
}

func (s *invoiceService) RemoveItem(_ context.Context, sessionID string, index int) invoice.Invoice {
	return s.update(sessionID, func(d *invoice.Draft) {
		d.RemoveItem(index)
	})
}

func (s *invoiceService) EditItem(_ context.Context, sessionID string, index int, field invoice.Field, value string) (invoice.Invoice, bool) {
	var ok bool
	inv := s.update(sessionID, func(d *invoice.Draft) {
		_, ok = d.EditItem(index, field, value)
	})
	return inv, ok
}

func (s *invoiceService) Clear(_ context.Context, sessionID string) invoice.Invoice {
	return s.update(sessionID, func(d *invoice.Draft) {
		d.Clear()
	})
}

// Document lays out the session's invoice for printing, naming the shop
// registered under its fiscal ID.
func (s *invoiceService) Document(ctx context.Context, sessionID string) printout.Document {
	inv := s.Get(ctx, sessionID)

	var shopName string
	if entry, ok := s.registry.Lookup(ctx, inv.ShopFiscalID); ok {
		shopName = entry.ShopName
	}

	return printout.Build(inv, shopName, s.print)
}

func (s *invoiceService) update(sessionID string, f func(*invoice.Draft)) invoice.Invoice {
	var inv invoice.Invoice
	s.sessions.with(sessionID, func(sess *session) {
		f(sess.draft)
		inv = sess.draft.Invoice()
	})
	return inv
}
