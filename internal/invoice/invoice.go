package invoice

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ArticleMotorcycle is the locked article type of every line item on a
// motorcycle invoice.
const ArticleMotorcycle = "MOTOCYCLE"

type Invoice struct {
	IsMotorcycle  bool       `json:"isMotorcycle"`
	Date          string     `json:"date"`
	ClientName    string     `json:"clientName"`
	ClientID      string     `json:"clientId"`
	ClientAddress string     `json:"clientAddress"`
	ShopFiscalID  string     `json:"shopFiscalId"`
	Items         []LineItem `json:"items"`
}

type LineItem struct {
	ArticleType  string `json:"articleType"`
	Model        string `json:"model"`
	Designation  string `json:"designation,omitempty"`
	Color        string `json:"color,omitempty"`
	Quantity     Number `json:"quantity"`
	PriceExclTax Number `json:"priceExclTax"`
	PriceInclTax Number `json:"priceInclTax"`
	TaxRate      Number `json:"taxRate"`
}

// Subtotal is the row amount, TTC times quantity rounded to cents.
func (li LineItem) Subtotal() float64 {
	return Multiply(li.PriceInclTax.Float(), li.Quantity.Float())
}

func blankItem(motorcycle bool) LineItem {
	item := LineItem{
		Quantity:     "0",
		PriceExclTax: "0",
		PriceInclTax: "0",
		TaxRate:      "0",
	}
	if motorcycle {
		item.ArticleType = ArticleMotorcycle
	}
	return item
}

// Number is the raw text of a numeric field as the user typed it.
type Number string

func NumberOf(v float64) Number {
	return Number(strconv.FormatFloat(v, 'f', -1, 64))
}

// UnmarshalJSON accepts both JSON strings and JSON numbers.
func (n *Number) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*n = Number(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return fmt.Errorf("decoding number: %w", err)
	}
	*n = Number(num.String())
	return nil
}

// Float coerces the text to a float64. Text that does not parse is 0.
func (n Number) Float() float64 {
	s := strings.TrimSpace(strings.Replace(string(n), ",", ".", 1))
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Valid reports whether the text parses as a number.
func (n Number) Valid() bool {
	s := strings.TrimSpace(strings.Replace(string(n), ",", ".", 1))
	if s == "" {
		return true
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// Fixed2 formats the coerced value with two decimals.
func (n Number) Fixed2() string {
	return strconv.FormatFloat(n.Float(), 'f', 2, 64)
}

func (n Number) String() string { return string(n) }

type Field string

const (
	FieldArticleType  Field = "articleType"
	FieldModel        Field = "model"
	FieldDesignation  Field = "designation"
	FieldColor        Field = "color"
	FieldQuantity     Field = "quantity"
	FieldPriceExclTax Field = "priceExclTax"
	FieldPriceInclTax Field = "priceInclTax"
	FieldTaxRate      Field = "taxRate"
)

var fields = []Field{
	FieldArticleType,
	FieldModel,
	FieldDesignation,
	FieldColor,
	FieldQuantity,
	FieldPriceExclTax,
	FieldPriceInclTax,
	FieldTaxRate,
}

func ParseField(s string) (Field, bool) {
	for _, f := range fields {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

// IsPrice reports whether editing f runs the tax reconciliation.
func (f Field) IsPrice() bool {
	return f == FieldPriceExclTax || f == FieldPriceInclTax || f == FieldTaxRate
}
