package registry

import (
	"context"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func shopNames(rows []Row) []string {
	return lo.Map(rows, func(r Row, _ int) string { return r.Entry.ShopName })
}

func TestOrder_Toggle(t *testing.T) {
	o := DefaultOrder
	assert.Equal(t, Order{Field: FieldShopName, Direction: Ascending}, o)

	o = o.Toggle(FieldShopName)
	assert.Equal(t, Order{Field: FieldShopName, Direction: Descending}, o)

	o = o.Toggle(FieldShopName)
	assert.Equal(t, Order{Field: FieldShopName, Direction: Ascending}, o)

	o = o.Toggle(FieldShopName).Toggle(FieldFiscalID)
	assert.Equal(t, Order{Field: FieldFiscalID, Direction: Ascending}, o)
}

func TestParseField(t *testing.T) {
	assert.Equal(t, FieldFiscalID, ParseField("fiscalId"))
	assert.Equal(t, FieldShopName, ParseField("shopName"))
	assert.Equal(t, FieldShopName, ParseField("unknown"))
}

func TestComparator_Compare(t *testing.T) {
	c := NewComparator(language.French)
	a := Entry{ShopName: "Épicerie", FiscalID: "10"}
	b := Entry{ShopName: "Fromagerie", FiscalID: "9"}

	assert.Equal(t, -1, c.Compare(a, b, FieldShopName, Ascending))
	assert.Equal(t, 1, c.Compare(a, b, FieldShopName, Descending))
	assert.Equal(t, 0, c.Compare(a, a, FieldShopName, Ascending))

	// strings, not numbers: "10" sorts before "9"
	assert.Equal(t, -1, c.Compare(a, b, FieldFiscalID, Ascending))
}

func TestComparator_SortIdempotentAndReversible(t *testing.T) {
	c := NewComparator(language.French)
	entries := []Entry{
		{ShopName: "delta", FiscalID: "4"},
		{ShopName: "Alpha", FiscalID: "1"},
		{ShopName: "charlie", FiscalID: "3"},
		{ShopName: "Bravo", FiscalID: "2"},
	}

	asc := Rows(entries)
	c.Sort(asc, Order{Field: FieldShopName, Direction: Ascending})
	assert.Equal(t, []string{"Alpha", "Bravo", "charlie", "delta"}, shopNames(asc))

	again := append([]Row(nil), asc...)
	c.Sort(again, Order{Field: FieldShopName, Direction: Ascending})
	assert.Equal(t, asc, again)

	desc := append([]Row(nil), asc...)
	c.Sort(desc, Order{Field: FieldShopName, Direction: Descending})
	assert.Equal(t, lo.Reverse(append([]Row(nil), asc...)), desc)

	// rows keep their persisted index
	assert.Equal(t, 1, asc[0].Index)
	assert.Equal(t, 0, asc[3].Index)
}

func TestComparator_SortIsStable(t *testing.T) {
	c := NewComparator(language.French)
	entries := []Entry{
		{ShopName: "Same", FiscalID: "b"},
		{ShopName: "Same", FiscalID: "a"},
		{ShopName: "Other", FiscalID: "c"},
	}
	rows := Rows(entries)
	c.Sort(rows, Order{Field: FieldShopName, Direction: Ascending})
	assert.Equal(t, []int{2, 0, 1}, lo.Map(rows, func(r Row, _ int) int { return r.Index }))
}

func TestEditor_SortedViewKeepsPersistedOrder(t *testing.T) {
	ctx := context.Background()
	seed := []Entry{{ShopName: "B", FiscalID: "2"}, {ShopName: "A", FiscalID: "1"}}
	r, _ := newRegistry(t, seed)
	ed := NewEditor(r)

	assert.Equal(t, []string{"A", "B"}, shopNames(ed.View(ctx)))
	ed.Sort(FieldShopName)
	assert.Equal(t, []string{"B", "A"}, shopNames(ed.View(ctx)))
	assert.Equal(t, seed, r.Entries(ctx))

	// edits address the persisted index carried by the row
	row := ed.View(ctx)[1]
	assert.True(t, ed.StartEdit(ctx, row.Index))
	assert.Equal(t, "A", ed.Buffer().ShopName)
}
