package invoice

import (
	"slices"
	"time"
)

// Draft is the invoice being edited in one form session.
type Draft struct {
	policy  Policy
	now     func() time.Time
	invoice Invoice
}

func NewDraft(policy Policy, now func() time.Time) *Draft {
	if now == nil {
		now = time.Now
	}
	d := &Draft{policy: policy, now: now}
	d.Clear()
	return d
}

func (d *Draft) Policy() Policy { return d.policy }

// Invoice returns a copy of the current state.
func (d *Draft) Invoice() Invoice {
	inv := d.invoice
	inv.Items = slices.Clone(d.invoice.Items)
	return inv
}

// Clear resets the draft to an empty "other" invoice dated today.
func (d *Draft) Clear() {
	d.invoice = Invoice{
		Date:  d.now().Format(time.DateOnly),
		Items: []LineItem{blankItem(false)},
	}
}

// SetMotorcycle switches the form type. A change of type resets the item
// list to a single blank item.
func (d *Draft) SetMotorcycle(on bool) {
	if d.invoice.IsMotorcycle == on {
		return
	}
	d.invoice.IsMotorcycle = on
	d.invoice.Items = []LineItem{blankItem(on)}
}

func (d *Draft) SetDate(date string) { d.invoice.Date = date }
func (d *Draft) SetClientName(name string) { d.invoice.ClientName = name }
func (d *Draft) SetClientID(id string) { d.invoice.ClientID = id }
func (d *Draft) SetClientAddress(a string) { d.invoice.ClientAddress = a }
func (d *Draft) SetShopFiscalID(id string) { d.invoice.ShopFiscalID = id }

func (d *Draft) Items() []LineItem { return slices.Clone(d.invoice.Items) }

func (d *Draft) Total() float64 { return Total(d.invoice.Items) }

func (d *Draft) Item(i int) (LineItem, bool) {
	if i < 0 || i >= len(d.invoice.Items) {
		return LineItem{}, false
	}
	return d.invoice.Items[i], true
}

func (d *Draft) AddItem() {
	d.invoice.Items = append(d.invoice.Items, blankItem(d.invoice.IsMotorcycle))
	d.settle()
}

func (d *Draft) RemoveItem(i int) bool {
	if i < 0 || i >= len(d.invoice.Items) {
		return false
	}
	d.invoice.Items = slices.Delete(d.invoice.Items, i, i+1)
	d.settle()
	return true
}

// EditItem applies one field change to row i and returns the updated row.
func (d *Draft) EditItem(i int, field Field, value string) (LineItem, bool) {
	if i < 0 || i >= len(d.invoice.Items) {
		return LineItem{}, false
	}
	item := &d.invoice.Items[i]
	if field == FieldArticleType && d.invoice.IsMotorcycle {
		return *item, true
	}
	d.policy.Apply(item, field, value)
	if !field.IsPrice() {
		d.settle()
	}
	return *item, true
}

func (d *Draft) settle() {
	if d.policy != PolicyExclTax {
		return
	}
	for i := range d.invoice.Items {
		Settle(&d.invoice.Items[i])
	}
}
