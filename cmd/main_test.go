package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	a := newCLI()
	a.Reader = strings.NewReader(stdin)
	a.Writer = &out
	a.ErrWriter = &out
	a.ExitErrHandler = func(*cli.Context, error) {}

	argv := append([]string{"facturier", "--env-file", filepath.Join(t.TempDir(), "missing.env")}, args...)
	err := a.Run(argv)
	return out.String(), err
}

func useFileStore(t *testing.T) string {
	dir := t.TempDir()
	t.Setenv("STORE_DRIVER", "file")
	t.Setenv("STORE_PATH", dir)
	t.Setenv("LOG_LEVEL", "error")
	return dir
}

func TestShops(t *testing.T) {
	useFileStore(t)

	out, err := runCLI(t, "", "shops", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Boutique A")
	assert.Contains(t, out, "XXX98765")

	_, err = runCLI(t, "", "shops", "add", "Épicerie Centrale", "EPC00001")
	require.NoError(t, err)

	_, err = runCLI(t, "", "shops", "remove", "0")
	require.NoError(t, err)

	out, err = runCLI(t, "", "shops", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "Boutique A")
	assert.Contains(t, out, "Épicerie Centrale")
}

func TestShops_Errors(t *testing.T) {
	useFileStore(t)

	_, err := runCLI(t, "", "shops", "add", "Boutique D", " ")
	assert.Error(t, err)

	_, err = runCLI(t, "", "shops", "remove", "42")
	assert.Error(t, err)

	_, err = runCLI(t, "", "shops", "remove", "first")
	assert.Error(t, err)
}

func TestPrint(t *testing.T) {
	useFileStore(t)
	outDir := t.TempDir()

	invoiceJSON := `{
		"date": "2025-03-14",
		"clientName": "Ali Ben Salah",
		"shopFiscalId": "XYZ67890",
		"items": [
			{"articleType": "Pneu", "model": "X1", "quantity": 2, "priceExclTax": 100, "taxRate": 18},
			{"articleType": "Casque", "model": "H2", "quantity": 1, "priceExclTax": 50, "priceInclTax": 50, "taxRate": 0}
		]
	}`

	out, err := runCLI(t, invoiceJSON, "print", "--out", outDir, "-")
	require.NoError(t, err)

	path := strings.TrimSpace(out)
	assert.Equal(t, outDir, filepath.Dir(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	doc := string(data)
	assert.Contains(t, doc, "286.00 TND")
	assert.Contains(t, doc, "deux cent quatre-vingt-six dinars")
	assert.Contains(t, doc, "Boutique B")
	assert.NotContains(t, doc, "window.print")
}

func TestPrint_BadInput(t *testing.T) {
	useFileStore(t)

	_, err := runCLI(t, "{not json", "print", "--out", t.TempDir(), "-")
	assert.Error(t, err)

	_, err = runCLI(t, "", "print")
	assert.Error(t, err)
}
