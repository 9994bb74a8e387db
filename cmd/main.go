package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/angelofallars/facturier/app"
	"github.com/angelofallars/facturier/internal/config"
	"github.com/angelofallars/facturier/internal/invoice"
	"github.com/angelofallars/facturier/internal/printout"
	"github.com/angelofallars/facturier/internal/registry"
	"github.com/angelofallars/facturier/internal/service"
	"github.com/angelofallars/facturier/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCLI().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCLI() *cli.App {
	return &cli.App{
		Name:  "facturier",
		Usage: "shop registry and invoice builder",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "load settings from `FILE` before reading the environment",
				Value: ".env",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the web application",
				Action: serve,
			},
			{
				Name:      "print",
				Usage:     "render an invoice JSON file to a printable HTML document",
				ArgsUsage: "<invoice.json | ->",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "write the document into `DIR`",
						Value:   ".",
					},
				},
				Action: printInvoice,
			},
			{
				Name:  "shops",
				Usage: "manage the shop registry",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "list registered shops",
						Action: listShops,
					},
					{
						Name:      "add",
						Usage:     "register a shop",
						ArgsUsage: "<shop name> <fiscal id>",
						Action:    addShop,
					},
					{
						Name:      "remove",
						Usage:     "remove the shop at an index",
						ArgsUsage: "<index>",
						Action:    removeShop,
					},
				},
			},
		},
	}
}

type env struct {
	cfg    *config.Config
	logger *slog.Logger
	store  store.Store
	reg    *registry.Registry
}

func setup(cCtx *cli.Context) (*env, error) {
	cfg, err := config.Load(cCtx.String("env-file"))
	if err != nil {
		return nil, err
	}

	logger := config.NewLogger(cfg.Logging, os.Stderr)
	slog.SetDefault(logger)

	s, err := store.Open(cCtx.Context, cfg.Store.Options())
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	reg := registry.New(s, registry.NewComparator(cfg.Invoice.Locale), logger)

	return &env{cfg: cfg, logger: logger, store: s, reg: reg}, nil
}

func (e *env) printOptions() printout.Options {
	return printout.Options{
		Locale:      e.cfg.Invoice.Locale.String(),
		Currency:    e.cfg.Invoice.Currency,
		ShopAddress: e.cfg.Invoice.ShopAddress,
	}
}

func serve(cCtx *cli.Context) error {
	e, err := setup(cCtx)
	if err != nil {
		return err
	}
	defer e.store.Close()

	sessions := service.NewSessions(e.cfg.Session.TTL, e.cfg.Invoice.Policy, e.reg)
	svcInvoice := service.NewInvoice(sessions, e.reg, e.printOptions())
	svcRegistry := service.NewRegistry(sessions, e.reg)

	e.logger.Info("starting",
		"store", e.cfg.Store.Driver,
		"policy", e.cfg.Invoice.Policy,
		"locale", e.cfg.Invoice.Locale.String(),
	)

	return app.New(e.logger, svcInvoice, svcRegistry, e.cfg.Invoice.Currency).
		WithHost(e.cfg.Server.Host).
		WithPort(e.cfg.Server.Port).
		Serve(cCtx.Context)
}

func printInvoice(cCtx *cli.Context) error {
	if cCtx.NArg() != 1 {
		return cli.Exit("expected exactly one invoice file, or - for stdin", 2)
	}

	e, err := setup(cCtx)
	if err != nil {
		return err
	}
	defer e.store.Close()

	inv, err := readInvoice(cCtx.Args().First(), cCtx.App.Reader)
	if err != nil {
		return err
	}

	var shopName string
	if entry, ok := e.reg.Lookup(cCtx.Context, inv.ShopFiscalID); ok {
		shopName = entry.ShopName
	}

	surface := &printout.DirSurface{Dir: cCtx.String("out"), Name: "facture-" + inv.Date}
	if !printout.Print(cCtx.Context, e.logger, surface, printout.Build(inv, shopName, e.printOptions())) {
		return cli.Exit("invoice was not printed", 1)
	}

	fmt.Fprintln(cCtx.App.Writer, surface.Path)
	return nil
}

// readInvoice decodes an invoice and fills in the TTC of items that only
// carry an HT price.
func readInvoice(path string, stdin io.Reader) (invoice.Invoice, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return invoice.Invoice{}, err
		}
		defer f.Close()
		r = f
	}

	var inv invoice.Invoice
	if err := json.NewDecoder(r).Decode(&inv); err != nil {
		return invoice.Invoice{}, fmt.Errorf("decoding invoice: %w", err)
	}

	for i := range inv.Items {
		if inv.Items[i].PriceInclTax == "" {
			invoice.Settle(&inv.Items[i])
		}
	}
	return inv, nil
}

func listShops(cCtx *cli.Context) error {
	e, err := setup(cCtx)
	if err != nil {
		return err
	}
	defer e.store.Close()

	w := tabwriter.NewWriter(cCtx.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tSHOP\tFISCAL ID")
	for i, entry := range e.reg.Entries(cCtx.Context) {
		fmt.Fprintf(w, "%d\t%s\t%s\n", i, entry.ShopName, entry.FiscalID)
	}
	return w.Flush()
}

func addShop(cCtx *cli.Context) error {
	if cCtx.NArg() != 2 {
		return cli.Exit("expected a shop name and a fiscal id", 2)
	}

	e, err := setup(cCtx)
	if err != nil {
		return err
	}
	defer e.store.Close()

	added, err := e.reg.Add(cCtx.Context, cCtx.Args().Get(0), cCtx.Args().Get(1))
	if err != nil {
		return err
	}
	if !added {
		return cli.Exit("shop name and fiscal id must not be blank", 1)
	}
	return nil
}

func removeShop(cCtx *cli.Context) error {
	index, err := strconv.Atoi(cCtx.Args().First())
	if err != nil {
		return cli.Exit("expected a shop index", 2)
	}

	e, err := setup(cCtx)
	if err != nil {
		return err
	}
	defer e.store.Close()

	removed, err := e.reg.Remove(cCtx.Context, index)
	if err != nil {
		return err
	}
	if !removed {
		return cli.Exit(fmt.Sprintf("no shop at index %d", index), 1)
	}
	return nil
}
