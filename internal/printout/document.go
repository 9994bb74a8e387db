// Package printout renders an invoice into the self-contained HTML document
// handed to a print surface.
package printout

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
	"github.com/samber/lo"

	"github.com/angelofallars/facturier/internal/invoice"
	"github.com/angelofallars/facturier/pkg/numwords"
)

const unknownShop = "N/A"

type Options struct {
	Locale      string
	Currency    string
	ShopAddress string
}

type Line struct {
	ArticleType  string
	Model        string
	Designation  string
	Color        string
	Quantity     string
	PriceExclTax string
	PriceInclTax string
}

type Document struct {
	Motorcycle    bool
	Date          string
	ClientName    string
	ClientID      string
	ClientAddress string
	Lines         []Line
	Total         string
	TotalWords    string
	Currency      string
	ShopName      string
	ShopAddress   string
	ShopFiscalID  string
	AutoPrint     bool
}

func (d Document) TotalColspan() int {
	if d.Motorcycle {
		return 5
	}
	return 4
}

// Build lays out inv for printing. shopName is the registry name of the
// invoice's fiscal ID, empty when the ID is not registered.
func Build(inv invoice.Invoice, shopName string, opts Options) Document {
	total := invoice.Total(inv.Items)

	if shopName == "" {
		shopName = unknownShop
	}

	return Document{
		Motorcycle:    inv.IsMotorcycle,
		Date:          inv.Date,
		ClientName:    inv.ClientName,
		ClientID:      inv.ClientID,
		ClientAddress: inv.ClientAddress,
		Lines: lo.Map(inv.Items, func(item invoice.LineItem, _ int) Line {
			articleType := item.ArticleType
			if inv.IsMotorcycle {
				articleType = invoice.ArticleMotorcycle
			}
			return Line{
				ArticleType:  articleType,
				Model:        item.Model,
				Designation:  item.Designation,
				Color:        item.Color,
				Quantity:     strconv.FormatFloat(item.Quantity.Float(), 'f', -1, 64),
				PriceExclTax: item.PriceExclTax.Fixed2(),
				PriceInclTax: item.PriceInclTax.Fixed2(),
			}
		}),
		Total:        invoice.FormatAmount(total),
		TotalWords:   numwords.Convert(total, opts.Locale),
		Currency:     opts.Currency,
		ShopName:     shopName,
		ShopAddress:  opts.ShopAddress,
		ShopFiscalID: inv.ShopFiscalID,
	}
}

func Render(w io.Writer, doc Document) error {
	return documentPage(doc).Render(context.Background(), w)
}

// Component is the document as served by the print route.
func Component(doc Document) templ.Component {
	return documentPage(doc)
}
