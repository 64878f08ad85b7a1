package evidence

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPutOpenDelete(t *testing.T) {
	st, err := NewStore(t.TempDir())
	require.NoError(t, err)

	payload := []byte("evidence bytes")
	n, err := st.Put("01ABC.pdf", bytes.NewReader(payload))
	require.NoError(t, err)
	require.Equal(t, int64(len(payload)), n)

	r, err := st.Open("01ABC.pdf")
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	require.Equal(t, payload, got)

	// Replacing an object is atomic from the reader's point of view.
	_, err = st.Put("01ABC.pdf", strings.NewReader("replacement"))
	require.NoError(t, err)
	r, err = st.Open("01ABC.pdf")
	require.NoError(t, err)
	got, err = io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	require.Equal(t, "replacement", string(got))

	require.NoError(t, st.Delete("01ABC.pdf"))
	_, err = st.Open("01ABC.pdf")
	require.ErrorIs(t, err, ErrNotFound)

	// Deleting what is already gone is fine.
	require.NoError(t, st.Delete("01ABC.pdf"))
}

func TestKeyValidation(t *testing.T) {
	st, err := NewStore(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{
		"",
		"../escape",
		"dir/file.pdf",
		`dir\file.pdf`,
		".hidden",
		"..",
	} {
		_, err := st.Put(key, strings.NewReader("x"))
		require.ErrorIs(t, err, ErrInvalidKey, "key %q", key)

		_, err = st.Open(key)
		require.ErrorIs(t, err, ErrInvalidKey, "key %q", key)
	}
}

func TestSizeCap(t *testing.T) {
	st, err := NewStore(t.TempDir())
	require.NoError(t, err)

	// One byte over the cap is refused and leaves nothing behind.
	_, err = st.Put("big.pdf", io.LimitReader(zeroReader{}, MaxObjectSize+1))
	require.Error(t, err)

	_, err = st.Open("big.pdf")
	require.ErrorIs(t, err, ErrNotFound)

	// Exactly at the cap is accepted.
	n, err := st.Put("exact.pdf", io.LimitReader(zeroReader{}, MaxObjectSize))
	require.NoError(t, err)
	require.Equal(t, int64(MaxObjectSize), n)
}

type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}
