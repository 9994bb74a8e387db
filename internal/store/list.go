package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
)

// List is a JSON array of T persisted under one key.
//
// Load never fails: a missing or undecodable value yields the default, which
// is written back. The stored shape is assumed compatible with T; there is no
// schema versioning.
type List[T any] struct {
	store  Store
	key    string
	def    []T
	logger *slog.Logger
}

func NewList[T any](s Store, key string, def []T, logger *slog.Logger) *List[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &List[T]{
		store:  s,
		key:    key,
		def:    slices.Clone(def),
		logger: logger.With("key", key),
	}
}

func (l *List[T]) Key() string { return l.key }

func (l *List[T]) Load(ctx context.Context) []T {
	raw, ok, err := l.store.Get(ctx, l.key)
	if err != nil {
		l.logger.Warn("loading list failed, using default", "err", err)
		return slices.Clone(l.def)
	}
	if !ok {
		return l.resetToDefault(ctx)
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		l.logger.Warn("stored list has an unexpected shape, using default", "err", err)
		return l.resetToDefault(ctx)
	}
	if items == nil {
		return l.resetToDefault(ctx)
	}
	return items
}

func (l *List[T]) Save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", l.key, err)
	}
	if err := l.store.Set(ctx, l.key, raw); err != nil {
		return fmt.Errorf("saving %s: %w", l.key, err)
	}
	return nil
}

func (l *List[T]) resetToDefault(ctx context.Context) []T {
	items := slices.Clone(l.def)
	if err := l.Save(ctx, items); err != nil {
		l.logger.Warn("persisting default list failed", "err", err)
	}
	return items
}
