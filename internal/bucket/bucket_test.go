package bucket

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFSBucket(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	newBucket := func(t *testing.T) *FSBucket {
		t.Helper()
		b, err := NewFSBucket(t.TempDir())
		require.NoError(t, err)
		return b
	}

	source := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "source.png")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	t.Run("upload then exists then delete", func(t *testing.T) {
		b := newBucket(t)
		key := "companies/c1/logo.png"

		require.NoError(t, b.Upload(ctx, source(t, "logo-bytes"), key))

		ok, err := b.Exists(ctx, key)
		require.NoError(t, err)
		require.True(t, ok)

		removed, err := b.Delete(ctx, key)
		require.NoError(t, err)
		require.True(t, removed)

		ok, err = b.Exists(ctx, key)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("delete of a missing key reports false without error", func(t *testing.T) {
		b := newBucket(t)
		removed, err := b.Delete(ctx, "products/p1/image.png")
		require.NoError(t, err)
		require.False(t, removed)
	})

	t.Run("upload overwrites an existing object", func(t *testing.T) {
		b := newBucket(t)
		key := "products/p1/image.png"
		require.NoError(t, b.Upload(ctx, source(t, "first"), key))
		require.NoError(t, b.Upload(ctx, source(t, "second"), key))

		data, err := os.ReadFile(filepath.Join(b.root, "products", "p1", "image.png"))
		require.NoError(t, err)
		require.Equal(t, "second", string(data))
	})

	t.Run("keys cannot escape the root", func(t *testing.T) {
		b := newBucket(t)
		_, err := b.Exists(ctx, "../outside.txt")
		require.NoError(t, err) // cleaned to /outside.txt inside the root
		err = b.Upload(ctx, source(t, "x"), " ")
		require.Error(t, err)
	})
}
