package leads

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(OpenOptions{Path: filepath.Join(t.TempDir(), "nested", "leads.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStoreSaveGet(t *testing.T) {
	s := openTestStore(t)
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	l := Lead{ID: "01JNK0000000000000000000A1", Email: "ana@example.com", Role: "ops", SubmittedAt: at}

	require.NoError(t, s.Save(l))
	got, err := s.Get(l.ID)
	require.NoError(t, err)
	require.Equal(t, l, got)

	_, err = s.Get("missing")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = s.Get(" ")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStoreRejectsMissingID(t *testing.T) {
	s := openTestStore(t)
	require.Error(t, s.Save(Lead{Email: "a@b.co"}))
}

func TestStoreListNewestFirst(t *testing.T) {
	s := openTestStore(t)
	for _, id := range []string{"01A", "01B", "01C"} {
		require.NoError(t, s.Save(Lead{ID: id, Email: "a@b.co"}))
	}

	all, err := s.List(0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "01C", all[0].ID)
	require.Equal(t, "01A", all[2].ID)

	two, err := s.List(2)
	require.NoError(t, err)
	require.Len(t, two, 2)
	require.Equal(t, "01B", two[1].ID)
}

func TestStoreCountByEmail(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Save(Lead{ID: "01A", Email: "ana@example.com"}))
	require.NoError(t, s.Save(Lead{ID: "01B", Email: "ana@example.com"}))
	require.NoError(t, s.Save(Lead{ID: "01C", Email: "ana@example.com.au"}))

	n, err := s.CountByEmail(" ANA@example.com ")
	require.NoError(t, err)
	require.Equal(t, 2, n)

	ids, err := s.IDsByEmail("ana@example.com")
	require.NoError(t, err)
	require.Equal(t, []string{"01A", "01B"}, ids)

	n, err = s.CountByEmail("nobody@example.com")
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(OpenOptions{})
	require.Error(t, err)
}
