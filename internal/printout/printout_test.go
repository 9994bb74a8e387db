package printout

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelofallars/facturier/internal/invoice"
)

var opts = Options{Locale: "fr", Currency: "TND", ShopAddress: "8030 GROMBALIA"}

func sampleInvoice(motorcycle bool) invoice.Invoice {
	return invoice.Invoice{
		IsMotorcycle:  motorcycle,
		Date:          "2025-03-14",
		ClientName:    "Ali Ben Salah",
		ClientID:      "01234567",
		ClientAddress: "Tunis",
		ShopFiscalID:  "ABC12345",
		Items: []invoice.LineItem{
			{ArticleType: "Pneu", Model: "X1", Designation: "Scooter", Color: "Rouge", Quantity: "2", PriceExclTax: "100", PriceInclTax: "118", TaxRate: "18"},
			{ArticleType: "Casque", Model: "H2", Quantity: "1", PriceExclTax: "42.02", PriceInclTax: "50", TaxRate: "19"},
		},
	}
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBuild(t *testing.T) {
	doc := Build(sampleInvoice(false), "Boutique A", opts)

	assert.Equal(t, "286.00", doc.Total)
	assert.Equal(t, "deux cent quatre-vingt-six", doc.TotalWords)
	assert.Equal(t, "Boutique A", doc.ShopName)
	assert.Equal(t, 4, doc.TotalColspan())
	require.Len(t, doc.Lines, 2)
	assert.Equal(t, "Pneu", doc.Lines[0].ArticleType)
	assert.Equal(t, "118.00", doc.Lines[0].PriceInclTax)
	assert.Equal(t, "2", doc.Lines[0].Quantity)
}

func TestBuild_UnknownShop(t *testing.T) {
	doc := Build(sampleInvoice(false), "", opts)
	assert.Equal(t, "N/A", doc.ShopName)
}

func TestBuild_Motorcycle(t *testing.T) {
	doc := Build(sampleInvoice(true), "Boutique A", opts)

	assert.Equal(t, 5, doc.TotalColspan())
	for _, line := range doc.Lines {
		assert.Equal(t, invoice.ArticleMotorcycle, line.ArticleType)
	}
}

func TestBuild_HugeAmounts(t *testing.T) {
	overflow := invoice.Invoice{Items: []invoice.LineItem{
		{PriceInclTax: "1e300", Quantity: "1e10"},
	}}
	require.NotPanics(t, func() {
		doc := Build(overflow, "", opts)
		assert.Equal(t, "0.00", doc.Total)
		assert.Equal(t, "zéro", doc.TotalWords)
	})

	large := invoice.Invoice{Items: []invoice.LineItem{
		{PriceInclTax: "1e20", Quantity: "1"},
	}}
	doc := Build(large, "", opts)
	assert.Equal(t, "100000000000000000000.00", doc.Total)
	assert.Equal(t, doc.Total, doc.TotalWords)
}

func TestRender(t *testing.T) {
	t.Run("standard invoice", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Render(&buf, Build(sampleInvoice(false), "Boutique A", opts)))
		out := buf.String()

		assert.Contains(t, out, "<h1>Facture</h1>")
		assert.Contains(t, out, "Ali Ben Salah")
		assert.Contains(t, out, "Total (Prix TTC)")
		assert.Contains(t, out, "286.00 TND")
		assert.Contains(t, out, `colspan="4"`)
		assert.Contains(t, out, "deux cent quatre-vingt-six dinars")
		assert.Contains(t, out, "8030 GROMBALIA")
		assert.Contains(t, out, "ABC12345")
		assert.NotContains(t, out, "Désignation")
		assert.NotContains(t, out, "Couleur")
		assert.NotContains(t, out, "window.print")
	})

	t.Run("motorcycle invoice", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Render(&buf, Build(sampleInvoice(true), "Boutique A", opts)))
		out := buf.String()

		assert.Contains(t, out, "Désignation")
		assert.Contains(t, out, "Couleur")
		assert.Contains(t, out, "Scooter")
		assert.Contains(t, out, `colspan="5"`)
		assert.Equal(t, 2, strings.Count(out, "<td>MOTOCYCLE</td>"))
	})

	t.Run("field values are escaped", func(t *testing.T) {
		inv := sampleInvoice(false)
		inv.ClientName = "<script>alert(1)</script>"

		var buf bytes.Buffer
		require.NoError(t, Render(&buf, Build(inv, "Boutique A", opts)))
		assert.NotContains(t, buf.String(), "<script>alert(1)</script>")
	})

	t.Run("auto print", func(t *testing.T) {
		doc := Build(sampleInvoice(false), "Boutique A", opts)
		doc.AutoPrint = true

		var buf bytes.Buffer
		require.NoError(t, Render(&buf, doc))
		assert.Contains(t, buf.String(), "window.print()")
	})
}

type brokenSurface struct{}

func (brokenSurface) Open(context.Context) (Target, error) {
	return nil, ErrSurfaceUnavailable
}

type recordingTarget struct {
	bytes.Buffer
	printed bool
	closed  bool
	failing bool
}

func (t *recordingTarget) Print() error {
	if t.failing {
		return errors.New("printer jammed")
	}
	t.printed = true
	return nil
}

func (t *recordingTarget) Close() error {
	t.closed = true
	return nil
}

type recordingSurface struct {
	target *recordingTarget
}

func (s recordingSurface) Open(context.Context) (Target, error) {
	return s.target, nil
}

func TestPrint(t *testing.T) {
	doc := Build(sampleInvoice(false), "Boutique A", opts)

	t.Run("unavailable surface is a no-op", func(t *testing.T) {
		assert.False(t, Print(context.Background(), discard(), brokenSurface{}, doc))
	})

	t.Run("target is printed and released", func(t *testing.T) {
		target := &recordingTarget{}
		assert.True(t, Print(context.Background(), discard(), recordingSurface{target}, doc))
		assert.True(t, target.printed)
		assert.True(t, target.closed)
		assert.Contains(t, target.String(), "286.00 TND")
	})

	t.Run("target released when printing fails", func(t *testing.T) {
		target := &recordingTarget{failing: true}
		assert.False(t, Print(context.Background(), discard(), recordingSurface{target}, doc))
		assert.True(t, target.closed)
	})
}

func TestResponseSurface(t *testing.T) {
	t.Run("writes the document on print", func(t *testing.T) {
		rec := httptest.NewRecorder()
		doc := Build(sampleInvoice(false), "Boutique A", opts)

		require.True(t, Print(context.Background(), discard(), ResponseSurface{W: rec}, doc))
		assert.Equal(t, 200, rec.Code)
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Body.String(), "Facture")
	})

	t.Run("nil writer is unavailable", func(t *testing.T) {
		_, err := ResponseSurface{}.Open(context.Background())
		assert.ErrorIs(t, err, ErrSurfaceUnavailable)
	})

	t.Run("closed target rejects use", func(t *testing.T) {
		target, err := ResponseSurface{W: httptest.NewRecorder()}.Open(context.Background())
		require.NoError(t, err)
		require.NoError(t, target.Close())

		_, err = target.Write([]byte("late"))
		assert.ErrorIs(t, err, ErrSurfaceClosed)
		assert.ErrorIs(t, target.Print(), ErrSurfaceClosed)
	})
}

func TestDirSurface(t *testing.T) {
	surface := &DirSurface{Dir: t.TempDir(), Name: "facture-test"}
	doc := Build(sampleInvoice(false), "Boutique A", opts)

	require.True(t, Print(context.Background(), discard(), surface, doc))
	require.NotEmpty(t, surface.Path)

	data, err := os.ReadFile(surface.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "286.00 TND")
	assert.True(t, strings.HasSuffix(surface.Path, ".html"))
}

func TestDirSurface_UnprintedFileRemoved(t *testing.T) {
	dir := t.TempDir()
	surface := &DirSurface{Dir: dir}

	target, err := surface.Open(context.Background())
	require.NoError(t, err)
	path := surface.Path
	require.FileExists(t, path)

	_, err = target.Write([]byte("<html>partial"))
	require.NoError(t, err)
	require.NoError(t, target.Close())

	assert.NoFileExists(t, path)
	assert.Empty(t, surface.Path)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
