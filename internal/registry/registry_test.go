package registry

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/angelofallars/facturier/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func newRegistry(t *testing.T, seed []Entry) (*Registry, store.Store) {
	t.Helper()
	s := store.NewMemory()
	if seed != nil {
		raw, err := json.Marshal(seed)
		require.NoError(t, err)
		require.NoError(t, s.Set(context.Background(), StoreKey, raw))
	}
	return New(s, NewComparator(language.French), nil), s
}

func TestEntry_UnmarshalLegacyShapes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Entry
	}{
		{
			name: "canonical",
			raw:  `{"shopName":"Boutique A","fiscalId":"ABC12345"}`,
			want: Entry{ShopName: "Boutique A", FiscalID: "ABC12345"},
		},
		{
			name: "matriculeFiscale and shop",
			raw:  `{"matriculeFiscale":"XYZ67890","shop":"Boutique B"}`,
			want: Entry{ShopName: "Boutique B", FiscalID: "XYZ67890"},
		},
		{
			name: "matricule and description",
			raw:  `{"matricule":"XXX98765","description":"Matricule Fiscale C"}`,
			want: Entry{ShopName: "Matricule Fiscale C", FiscalID: "XXX98765"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Entry
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &got))
			assert.Equal(t, tt.want, got)
		})
	}

	var e Entry
	assert.Error(t, json.Unmarshal([]byte(`{"foo":"bar"}`), &e))
}

func TestRegistry_LegacyListIsRewrittenCanonically(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	require.NoError(t, s.Set(ctx, StoreKey, []byte(`[{"matriculeFiscale":"M1","shop":"S1"}]`)))
	r := New(s, NewComparator(language.French), nil)

	added, err := r.Add(ctx, "S2", "M2")
	require.NoError(t, err)
	require.True(t, added)

	raw, _, err := s.Get(ctx, StoreKey)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"shopName":"S1","fiscalId":"M1"},{"shopName":"S2","fiscalId":"M2"}]`, string(raw))
}

func TestRegistry_DefaultsOnFirstLoad(t *testing.T) {
	r, s := newRegistry(t, nil)
	assert.Equal(t, DefaultEntries, r.Entries(context.Background()))

	_, ok, err := s.Get(context.Background(), StoreKey)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRegistry_AddIgnoresBlankFields(t *testing.T) {
	ctx := context.Background()
	seed := []Entry{{ShopName: "A", FiscalID: "1"}}

	for _, in := range [][2]string{{"", "X"}, {"X", ""}, {"   ", "X"}, {"X", "\t"}} {
		r, _ := newRegistry(t, seed)
		added, err := r.Add(ctx, in[0], in[1])
		require.NoError(t, err)
		assert.False(t, added)
		assert.Equal(t, seed, r.Entries(ctx))
	}
}

func TestRegistry_AddTrimsAndAppends(t *testing.T) {
	ctx := context.Background()
	r, _ := newRegistry(t, []Entry{{ShopName: "A", FiscalID: "1"}})

	added, err := r.Add(ctx, "  Boutique Z ", " Z999 ")
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, []Entry{
		{ShopName: "A", FiscalID: "1"},
		{ShopName: "Boutique Z", FiscalID: "Z999"},
	}, r.Entries(ctx))

	// duplicates are allowed
	added, err = r.Add(ctx, "Other", "1")
	require.NoError(t, err)
	assert.True(t, added)
	assert.Len(t, r.Entries(ctx), 3)
}

func TestRegistry_Lookup(t *testing.T) {
	ctx := context.Background()
	r, _ := newRegistry(t, nil)

	e, ok := r.Lookup(ctx, "XYZ67890")
	assert.True(t, ok)
	assert.Equal(t, "Boutique B", e.ShopName)

	_, ok = r.Lookup(ctx, "nope")
	assert.False(t, ok)
}

func TestEditor_EditFlow(t *testing.T) {
	ctx := context.Background()
	r, _ := newRegistry(t, []Entry{{ShopName: "A", FiscalID: "1"}, {ShopName: "B", FiscalID: "2"}})
	ed := NewEditor(r)

	_, editing := ed.Editing()
	assert.False(t, editing)
	assert.False(t, ed.StartEdit(ctx, 9))

	require.True(t, ed.StartEdit(ctx, 1))
	i, editing := ed.Editing()
	assert.True(t, editing)
	assert.Equal(t, 1, i)
	assert.Equal(t, Entry{ShopName: "B", FiscalID: "2"}, ed.Buffer())

	// starting an edit does not touch the list
	assert.Equal(t, "B", r.Entries(ctx)[1].ShopName)

	ed.SetBuffer(" B2 ", " 22 ")
	ok, err := ed.CommitEdit(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, []Entry{{ShopName: "A", FiscalID: "1"}, {ShopName: "B2", FiscalID: "22"}}, r.Entries(ctx))
	assert.Equal(t, Entry{}, ed.Buffer())
	_, editing = ed.Editing()
	assert.False(t, editing)
}

func TestEditor_CommitOutOfRangeClearsBuffer(t *testing.T) {
	ctx := context.Background()
	r, _ := newRegistry(t, []Entry{{ShopName: "A", FiscalID: "1"}})
	ed := NewEditor(r)

	ed.SetBuffer("X", "Y")
	ok, err := ed.CommitEdit(ctx, 3)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, Entry{}, ed.Buffer())
	assert.Equal(t, []Entry{{ShopName: "A", FiscalID: "1"}}, r.Entries(ctx))
}

func TestEditor_AddClearsBufferOnlyWhenAccepted(t *testing.T) {
	ctx := context.Background()
	r, _ := newRegistry(t, []Entry{})
	ed := NewEditor(r)

	ed.SetBuffer("", "X")
	added, err := ed.Add(ctx, "", "X")
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, Entry{FiscalID: "X"}, ed.Buffer())

	ed.SetBuffer("S", "X")
	added, err = ed.Add(ctx, "S", "X")
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, Entry{}, ed.Buffer())
}

func TestEditor_DeleteStateMachine(t *testing.T) {
	ctx := context.Background()
	seed := []Entry{{ShopName: "A", FiscalID: "1"}, {ShopName: "B", FiscalID: "2"}, {ShopName: "C", FiscalID: "3"}}

	t.Run("starts idle and confirm is a no-op", func(t *testing.T) {
		r, _ := newRegistry(t, seed)
		ed := NewEditor(r)
		_, pending := ed.Deletion().Pending()
		assert.False(t, pending)

		ok, err := ed.ConfirmDelete(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
		ed.CancelDelete()
		assert.Equal(t, seed, r.Entries(ctx))
	})

	t.Run("cancel leaves the list unchanged", func(t *testing.T) {
		r, _ := newRegistry(t, seed)
		ed := NewEditor(r)
		ed.RequestDelete(1)
		i, pending := ed.Deletion().Pending()
		assert.True(t, pending)
		assert.Equal(t, 1, i)
		assert.Equal(t, seed, r.Entries(ctx))

		ed.CancelDelete()
		_, pending = ed.Deletion().Pending()
		assert.False(t, pending)
		assert.Equal(t, seed, r.Entries(ctx))
	})

	t.Run("confirm removes exactly the staged index", func(t *testing.T) {
		r, _ := newRegistry(t, seed)
		ed := NewEditor(r)
		ed.RequestDelete(1)

		ok, err := ed.ConfirmDelete(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []Entry{seed[0], seed[2]}, r.Entries(ctx))

		_, pending := ed.Deletion().Pending()
		assert.False(t, pending)

		// a second confirm does nothing
		ok, err = ed.ConfirmDelete(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Len(t, r.Entries(ctx), 2)
	})

	t.Run("re-request replaces the staged index", func(t *testing.T) {
		r, _ := newRegistry(t, seed)
		ed := NewEditor(r)
		ed.RequestDelete(0)
		ed.RequestDelete(2)

		_, err := ed.ConfirmDelete(ctx)
		require.NoError(t, err)
		assert.Equal(t, []Entry{seed[0], seed[1]}, r.Entries(ctx))
	})

	t.Run("stale index is ignored", func(t *testing.T) {
		r, _ := newRegistry(t, seed)
		ed := NewEditor(r)
		ed.RequestDelete(7)
		ok, err := ed.ConfirmDelete(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, seed, r.Entries(ctx))
	})
}
