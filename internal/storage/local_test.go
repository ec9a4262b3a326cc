package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutDeleteRoundTrip(t *testing.T) {
	s, err := NewLocalStore(t.TempDir(), "/media/")
	require.NoError(t, err)
	ctx := context.Background()

	url, err := s.Put(ctx, "products/p1/123-a.jpg", []byte("jpeg"))
	require.NoError(t, err)
	assert.Equal(t, "/media/products/p1/123-a.jpg", url)

	b, err := os.ReadFile(filepath.Join(s.Root, "products", "p1", "123-a.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", string(b))

	require.NoError(t, s.Delete(ctx, url))
	_, err = os.Stat(filepath.Join(s.Root, "products", "p1", "123-a.jpg"))
	assert.True(t, os.IsNotExist(err))

	// second delete is a no-op
	assert.NoError(t, s.Delete(ctx, url))
}

func TestResolveBlocksTraversal(t *testing.T) {
	s, err := NewLocalStore(t.TempDir(), "/media")
	require.NoError(t, err)
	for _, k := range []string{"../etc/passwd", "a/../../b", "%2e%2e/x", "x\x00y", "", "/"} {
		_, err := s.Resolve(k)
		assert.True(t, errors.Is(err, ErrBadPath), k)
	}
	p, err := s.Resolve("blogs/b1/x.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(s.Root, "blogs", "b1", "x.png"), p)
}

func TestDeleteForeignURL(t *testing.T) {
	s, err := NewLocalStore(t.TempDir(), "/media")
	require.NoError(t, err)
	err = s.Delete(context.Background(), "https://cdn.example.com/a.jpg")
	assert.True(t, errors.Is(err, ErrBadPath))
}
