package service

import (
	"context"

	"github.com/angelofallars/facturier/internal/registry"
)

type Registry interface {
	// Entries returns the shop list in persisted order.
	Entries(ctx context.Context) []registry.Entry
	View(ctx context.Context, sessionID string) RegistryView
	Sort(ctx context.Context, sessionID string, field registry.Field) RegistryView
	Add(ctx context.Context, sessionID string, e registry.Entry) (RegistryView, error)
	StartEdit(ctx context.Context, sessionID string, index int) RegistryView
	CommitEdit(ctx context.Context, sessionID string, index int, e registry.Entry) (RegistryView, error)
	CancelEdit(ctx context.Context, sessionID string) RegistryView
	RequestDelete(ctx context.Context, sessionID string, index int) RegistryView
	ConfirmDelete(ctx context.Context, sessionID string) (RegistryView, error)
	CancelDelete(ctx context.Context, sessionID string) RegistryView
}

// RegistryView is what the registry manager shows to one session.
type RegistryView struct {
	Rows          []registry.Row
	Order         registry.Order
	Buffer        registry.Entry
	EditIndex     int
	Editing       bool
	PendingDelete int
	DeletePending bool
	// Changed is set when the persisted list was modified.
	Changed bool
}

// Pending returns the row staged for deletion.
func (v RegistryView) Pending() (registry.Row, bool) {
	if !v.DeletePending {
		return registry.Row{}, false
	}
	for _, row := range v.Rows {
		if row.Index == v.PendingDelete {
			return row, true
		}
	}
	return registry.Row{}, false
}

type registryService struct {
	sessions *Sessions
	registry *registry.Registry
}

func NewRegistry(sessions *Sessions, reg *registry.Registry) *registryService {
	return &registryService{
		sessions: sessions,
		registry: reg,
	}
}

func (s *registryService) Entries(ctx context.Context) []registry.Entry {
	return s.registry.Entries(ctx)
}

func (s *registryService) View(ctx context.Context, sessionID string) RegistryView {
	view, _ := s.update(ctx, sessionID, func(*registry.Editor) (bool, error) {
		return false, nil
	})
	return view
}

func (s *registryService) Sort(ctx context.Context, sessionID string, field registry.Field) RegistryView {
	view, _ := s.update(ctx, sessionID, func(e *registry.Editor) (bool, error) {
		e.Sort(field)
		return false, nil
	})
	return view
}

// Add appends e. Rejected input stays in the buffer so the form keeps it.
func (s *registryService) Add(ctx context.Context, sessionID string, entry registry.Entry) (RegistryView, error) {
	return s.update(ctx, sessionID, func(e *registry.Editor) (bool, error) {
		e.SetBuffer(entry.ShopName, entry.FiscalID)
		return e.Add(ctx, entry.ShopName, entry.FiscalID)
	})
}

func (s *registryService) StartEdit(ctx context.Context, sessionID string, index int) RegistryView {
	view, _ := s.update(ctx, sessionID, func(e *registry.Editor) (bool, error) {
		e.StartEdit(ctx, index)
		return false, nil
	})
	return view
}

func (s *registryService) CommitEdit(ctx context.Context, sessionID string, index int, entry registry.Entry) (RegistryView, error) {
	return s.update(ctx, sessionID, func(e *registry.Editor) (bool, error) {
		e.SetBuffer(entry.ShopName, entry.FiscalID)
		return e.CommitEdit(ctx, index)
	})
}

func (s *registryService) CancelEdit(ctx context.Context, sessionID string) RegistryView {
	view, _ := s.update(ctx, sessionID, func(e *registry.Editor) (bool, error) {
		e.CancelEdit()
		return false, nil
	})
	return view
}

func (s *registryService) RequestDelete(ctx context.Context, sessionID string, index int) RegistryView {
	view, _ := s.update(ctx, sessionID, func(e *registry.Editor) (bool, error) {
		e.RequestDelete(index)
		return false, nil
	})
	return view
}

func (s *registryService) ConfirmDelete(ctx context.Context, sessionID string) (RegistryView, error) {
	return s.update(ctx, sessionID, func(e *registry.Editor) (bool, error) {
		return e.ConfirmDelete(ctx)
	})
}

func (s *registryService) CancelDelete(ctx context.Context, sessionID string) RegistryView {
	view, _ := s.update(ctx, sessionID, func(e *registry.Editor) (bool, error) {
		e.CancelDelete()
		return false, nil
	})
	return view
}

func (s *registryService) update(ctx context.Context, sessionID string, f func(*registry.Editor) (bool, error)) (RegistryView, error) {
	var (
		view RegistryView
		err  error
	)
	s.sessions.with(sessionID, func(sess *session) {
		var changed bool
		changed, err = f(sess.editor)
		view = snapshot(ctx, sess.editor)
		view.Changed = changed
	})
	return view, err
}

func snapshot(ctx context.Context, e *registry.Editor) RegistryView {
	editIndex, editing := e.Editing()
	pending, deletePending := e.Deletion().Pending()
	return RegistryView{
		Rows:          e.View(ctx),
		Order:         e.Order(),
		Buffer:        e.Buffer(),
		EditIndex:     editIndex,
		Editing:       editing,
		PendingDelete: pending,
		DeletePending: deletePending,
	}
}
