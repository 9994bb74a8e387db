package registry

import "context"

// DeleteState is either idle or waiting for confirmation of one index.
type DeleteState struct {
	pending bool
	index   int
}

// Pending returns the staged index, if any.
func (s DeleteState) Pending() (int, bool) {
	return s.index, s.pending
}

// Editor holds the per-session state of the registry manager: the scratch
// buffer of the add/edit inputs, the index being edited, the staged
// deletion and the sort order.
type Editor struct {
	registry  *Registry
	buffer    Entry
	editIndex int
	deletion  DeleteState
	order     Order
}

func NewEditor(r *Registry) *Editor {
	return &Editor{
		registry:  r,
		editIndex: -1,
		order:     DefaultOrder,
	}
}

func (e *Editor) Buffer() Entry { return e.buffer }

func (e *Editor) SetBuffer(shopName, fiscalID string) {
	e.buffer = Entry{ShopName: shopName, FiscalID: fiscalID}
}

// Editing returns the index in edit mode, if any.
func (e *Editor) Editing() (int, bool) {
	return e.editIndex, e.editIndex >= 0
}

func (e *Editor) Order() Order { return e.order }

// Sort toggles the sort order on field.
func (e *Editor) Sort(field Field) Order {
	e.order = e.order.Toggle(field)
	return e.order
}

func (e *Editor) View(ctx context.Context) []Row {
	return e.registry.View(ctx, e.order)
}

// Add appends the given values and clears the buffer when they were accepted.
func (e *Editor) Add(ctx context.Context, shopName, fiscalID string) (bool, error) {
	added, err := e.registry.Add(ctx, shopName, fiscalID)
	if added {
		e.buffer = Entry{}
	}
	return added, err
}

// StartEdit copies entry i into the buffer and enters edit mode.
func (e *Editor) StartEdit(ctx context.Context, i int) bool {
	entries := e.registry.Entries(ctx)
	if i < 0 || i >= len(entries) {
		return false
	}
	e.buffer = entries[i]
	e.editIndex = i
	return true
}

// CommitEdit writes the buffer over entry i and leaves edit mode.
func (e *Editor) CommitEdit(ctx context.Context, i int) (bool, error) {
	buffer := e.buffer
	e.CancelEdit()
	return e.registry.Replace(ctx, i, buffer)
}

func (e *Editor) CancelEdit() {
	e.buffer = Entry{}
	e.editIndex = -1
}

func (e *Editor) Deletion() DeleteState { return e.deletion }

// RequestDelete stages index i for deletion. The list is not touched.
func (e *Editor) RequestDelete(i int) {
	e.deletion = DeleteState{pending: true, index: i}
}

// ConfirmDelete removes the staged index. Without a staged index it does
// nothing.
func (e *Editor) ConfirmDelete(ctx context.Context) (bool, error) {
	i, ok := e.deletion.Pending()
	if !ok {
		return false, nil
	}
	e.deletion = DeleteState{}
	return e.registry.Remove(ctx, i)
}

func (e *Editor) CancelDelete() {
	e.deletion = DeleteState{}
}
