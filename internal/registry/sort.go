package registry

import (
	"slices"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type Field string

const (
	FieldShopName Field = "shopName"
	FieldFiscalID Field = "fiscalId"
)

func ParseField(s string) Field {
	if Field(s) == FieldFiscalID {
		return FieldFiscalID
	}
	return FieldShopName
}

func (f Field) value(e Entry) string {
	if f == FieldFiscalID {
		return e.FiscalID
	}
	return e.ShopName
}

type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Order is the sort state of a registry view.
type Order struct {
	Field     Field
	Direction Direction
}

var DefaultOrder = Order{Field: FieldShopName, Direction: Ascending}

// Toggle flips the direction when field is already the sort field and
// resets to ascending on a new field.
func (o Order) Toggle(field Field) Order {
	if o.Field == field && o.Direction == Ascending {
		return Order{Field: field, Direction: Descending}
	}
	return Order{Field: field, Direction: Ascending}
}

// Comparator orders entries with the collation rules of a locale.
type Comparator struct {
	// collate.Collator keeps internal buffers
	mu       sync.Mutex
	collator *collate.Collator
}

func NewComparator(tag language.Tag) *Comparator {
	return &Comparator{collator: collate.New(tag)}
}

// Compare returns -1, 0 or 1. Descending is the inverse of ascending.
func (c *Comparator) Compare(a, b Entry, field Field, dir Direction) int {
	c.mu.Lock()
	cmp := c.collator.CompareString(field.value(a), field.value(b))
	c.mu.Unlock()

	if dir == Descending {
		return -cmp
	}
	return cmp
}

// Row is an entry together with its index in the persisted list.
type Row struct {
	Index int
	Entry Entry
}

func Rows(entries []Entry) []Row {
	rows := make([]Row, len(entries))
	for i, e := range entries {
		rows[i] = Row{Index: i, Entry: e}
	}
	return rows
}

// Sort orders rows in place. Ties keep their relative order.
func (c *Comparator) Sort(rows []Row, order Order) {
	slices.SortStableFunc(rows, func(a, b Row) int {
		return c.Compare(a.Entry, b.Entry, order.Field, order.Direction)
	})
}
