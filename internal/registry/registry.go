// Package registry manages the persisted list of shops and their fiscal
// registration numbers.
package registry

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/angelofallars/facturier/internal/store"
	"github.com/samber/lo"
)

// Registry is the process-wide shop list. Every mutation is persisted
// before it returns.
type Registry struct {
	mu         sync.Mutex
	list       *store.List[Entry]
	comparator *Comparator
}

func New(s store.Store, comparator *Comparator, logger *slog.Logger) *Registry {
	return &Registry{
		list:       store.NewList(s, StoreKey, DefaultEntries, logger),
		comparator: comparator,
	}
}

func (r *Registry) Entries(ctx context.Context) []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.list.Load(ctx)
}

// View returns the entries sorted by order. The persisted order is unchanged.
func (r *Registry) View(ctx context.Context, order Order) []Row {
	rows := Rows(r.Entries(ctx))
	r.comparator.Sort(rows, order)
	return rows
}

// Lookup finds the first entry with the given fiscal ID.
func (r *Registry) Lookup(ctx context.Context, fiscalID string) (Entry, bool) {
	return lo.Find(r.Entries(ctx), func(e Entry) bool {
		return e.FiscalID == fiscalID
	})
}

// Add appends an entry. Blank names or IDs are ignored and report false.
func (r *Registry) Add(ctx context.Context, shopName, fiscalID string) (bool, error) {
	shopName, fiscalID = strings.TrimSpace(shopName), strings.TrimSpace(fiscalID)
	if shopName == "" || fiscalID == "" {
		return false, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entries := append(r.list.Load(ctx), Entry{ShopName: shopName, FiscalID: fiscalID})
	if err := r.list.Save(ctx, entries); err != nil {
		return false, err
	}
	return true, nil
}

// Replace overwrites entry i with the trimmed values of e.
func (r *Registry) Replace(ctx context.Context, i int, e Entry) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := r.list.Load(ctx)
	if i < 0 || i >= len(entries) {
		return false, nil
	}
	entries[i] = Entry{
		ShopName: strings.TrimSpace(e.ShopName),
		FiscalID: strings.TrimSpace(e.FiscalID),
	}
	if err := r.list.Save(ctx, entries); err != nil {
		return false, err
	}
	return true, nil
}

// Remove deletes entry i and nothing else.
func (r *Registry) Remove(ctx context.Context, i int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := r.list.Load(ctx)
	if i < 0 || i >= len(entries) {
		return false, nil
	}
	entries = slices.Delete(entries, i, i+1)
	if err := r.list.Save(ctx, entries); err != nil {
		return false, err
	}
	return true, nil
}
